package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefIndex_Resolve(t *testing.T) {
	t.Parallel()

	x := NewRefIndex([]Category{
		{ID: "c1", Name: "Hex", Type: "fasteners"},
		{ID: "c2", Name: "Hex", Type: "electrical"},
		{ID: "c3", Name: "Cables", Type: "electrical"},
	})

	tests := []struct {
		name   string
		typ    string
		ref    string
		wantID string
		ok     bool
	}{
		{"by id", "electrical", "c1", "c1", true},
		{"by name in type", "electrical", "hex", "c2", true},
		{"by name any type", "fasteners", "Cables", "c3", true},
		{"unknown", "fasteners", "Rivets", "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, ok := x.Resolve(tt.typ, tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantID, c.ID)
		})
	}
}
