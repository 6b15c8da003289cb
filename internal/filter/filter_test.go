package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func prod(id uint, name, typ string, price int64, age int, cats ...uint) models.Product {
	p := models.Product{
		ID: id, Name: name, CategoryType: typ,
		CreatedAt:   t0.Add(time.Duration(age) * time.Hour),
		CategoryIDs: cats,
	}
	if price >= 0 {
		p.Price = decimal.NewNullDecimal(decimal.NewFromInt(price))
	}
	return p
}

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func catalog() []models.Product {
	return []models.Product{
		prod(1, "hex bolt", models.TypeFasteners, 5, 1, 1),
		prod(2, "Anchor", models.TypeFasteners, 9, 3, 2),
		prod(3, "Cable Tie", models.TypeElectrical, 2, 2, 3),
		prod(4, "washer", models.TypeFasteners, 1, 4, 1, 2),
	}
}

func TestApply_Predicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"all", State{CategoryType: AllTypes, SortBy: NameAsc}, []string{"Anchor", "Cable Tie", "hex bolt", "washer"}},
		{"type", State{CategoryType: models.TypeElectrical}, []string{"Cable Tie"}},
		{"ids any-of", State{CategoryIDs: []uint{2, 3}, SortBy: NameAsc}, []string{"Anchor", "Cable Tie", "washer"}},
		{"search case-insensitive", State{SearchTerm: "BOLT"}, []string{"hex bolt"}},
		{"type and ids", State{CategoryType: models.TypeFasteners, CategoryIDs: []uint{1}, SortBy: NameAsc}, []string{"hex bolt", "washer"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, names(Apply(catalog(), tt.state)))
		})
	}
}

func TestApply_SearchMatchesCategoryNames(t *testing.T) {
	t.Parallel()

	ps := catalog()
	ps[2].Categories = []string{"Zip Ties"}
	ps[2].Description = ""

	assert.Equal(t, []string{"Cable Tie"}, names(Apply(ps, State{SearchTerm: "zip"})))
}

func TestApply_SearchOverThreeItems(t *testing.T) {
	t.Parallel()

	ps := []models.Product{
		prod(1, "Hex Bolt", models.TypeFasteners, 1, 0),
		prod(2, "Wing Nut", models.TypeFasteners, 1, 0),
		prod(3, "Wire", models.TypeElectrical, 1, 0),
	}
	assert.Len(t, Apply(ps, State{SearchTerm: "bolt"}), 1)
}

func TestApply_SortOrders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"washer", "Anchor", "Cable Tie", "hex bolt"}, names(Apply(catalog(), State{SortBy: Newest})))
	assert.Equal(t, []string{"washer", "hex bolt", "Cable Tie", "Anchor"}, names(Apply(catalog(), State{SortBy: NameDesc})))
	assert.Equal(t, []string{"washer", "Cable Tie", "hex bolt", "Anchor"}, names(Apply(catalog(), State{SortBy: PriceAsc})))
	assert.Equal(t, []string{"Anchor", "hex bolt", "Cable Tie", "washer"}, names(Apply(catalog(), State{SortBy: PriceDesc})))
}

func TestApply_StableForEqualKeys(t *testing.T) {
	t.Parallel()

	ps := []models.Product{
		prod(1, "a", models.TypeFasteners, 5, 0),
		prod(2, "b", models.TypeFasteners, 5, 0),
		prod(3, "c", models.TypeFasteners, 5, 0),
	}
	for _, by := range []SortBy{PriceAsc, PriceDesc, Newest} {
		got := Apply(ps, State{SortBy: by})
		assert.Equal(t, []string{"a", "b", "c"}, names(got), string(by))
	}
}

func TestApply_IdempotentAndPure(t *testing.T) {
	t.Parallel()

	in := catalog()
	s := State{CategoryType: models.TypeFasteners, SearchTerm: "e", SortBy: NameAsc}

	once := Apply(in, s)
	twice := Apply(once, s)
	assert.Equal(t, once, twice)

	assert.Equal(t, "hex bolt", in[0].Name)
	require.Len(t, in, 4)
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	s, ok := ParseSort("")
	assert.True(t, ok)
	assert.Equal(t, Newest, s)

	s, ok = ParseSort("price_desc")
	assert.True(t, ok)
	assert.Equal(t, PriceDesc, s)

	_, ok = ParseSort("random")
	assert.False(t, ok)
}
