package fixtures

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryNames_Distinct(t *testing.T) {
	t.Parallel()

	got := CategoryNames([]Product{
		{Categories: []string{"Bolts", "Hex"}},
		{Categories: []string{"Hex", "Nuts"}},
	})
	assert.Equal(t, []string{"Bolts", "Hex", "Nuts"}, got)
}

func TestFixtures_AreWellFormed(t *testing.T) {
	t.Parallel()

	for _, list := range [][]Product{Fasteners, Electrical} {
		require.NotEmpty(t, list)
		for _, p := range list {
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.Categories, p.Name)
			if p.Price != "" {
				_, err := decimal.NewFromString(p.Price)
				assert.NoError(t, err, p.Name)
			}
		}
	}
}
