package config

import (
	"log"
	"sort"
	"strings"
)

// Missing returns the sorted names of required settings that are blank.
func Missing(required map[string]string) []string {
	var out []string
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// MustHave stops the process when any required setting is blank, naming all
// of them at once.
func MustHave(required map[string]string) {
	if missing := Missing(required); len(missing) > 0 {
		log.Fatalf("missing required env: %s", strings.Join(missing, ", "))
	}
}
