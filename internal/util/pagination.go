package util

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ParseUintList parses a comma separated id list. Empty entries are ignored;
// any other entry that is not a positive integer is an error.
func ParseUintList(s string) ([]uint, error) {
	if s == "" {
		return nil, nil
	}
	var out []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		out = append(out, uint(v))
	}
	return out, nil
}

func ClampSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	limit = ClampSize(size)
	offset = (page - 1) * limit
	return offset, limit
}
