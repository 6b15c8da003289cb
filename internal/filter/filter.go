// Package filter is the in-memory browse model: a filter state, a predicate
// over products and the comparators used to order a result set.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

type SortBy string

const (
	Newest    SortBy = "newest"
	NameAsc   SortBy = "name_asc"
	NameDesc  SortBy = "name_desc"
	PriceAsc  SortBy = "price_asc"
	PriceDesc SortBy = "price_desc"
)

const AllTypes = "all"

func ParseSort(s string) (SortBy, bool) {
	switch SortBy(s) {
	case Newest, NameAsc, NameDesc, PriceAsc, PriceDesc:
		return SortBy(s), true
	case "":
		return Newest, true
	}
	return "", false
}

type State struct {
	SearchTerm   string
	CategoryType string
	CategoryIDs  []uint
	SortBy       SortBy
}

func Default() State {
	return State{CategoryType: AllTypes, SortBy: Newest}
}

// Matcher evaluates the predicate of one State. It is not safe for concurrent use.
type Matcher struct {
	state  State
	ids    map[uint]struct{}
	needle string
	fold   cases.Caser
}

func NewMatcher(s State) *Matcher {
	m := &Matcher{state: s, fold: cases.Fold()}
	if len(s.CategoryIDs) > 0 {
		m.ids = make(map[uint]struct{}, len(s.CategoryIDs))
		for _, id := range s.CategoryIDs {
			m.ids[id] = struct{}{}
		}
	}
	m.needle = m.fold.String(strings.TrimSpace(s.SearchTerm))
	return m
}

func (m *Matcher) Match(p *models.Product) bool {
	if t := m.state.CategoryType; t != "" && t != AllTypes && p.CategoryType != t {
		return false
	}
	if m.ids != nil && !m.hasAnyID(p.CategoryIDs) {
		return false
	}
	return m.MatchText(p)
}

// MatchText is the search part of the predicate alone: the term is a
// case-insensitive substring of the name, the description or a category name.
func (m *Matcher) MatchText(p *models.Product) bool {
	if m.needle == "" {
		return true
	}
	if m.contains(p.Name) || m.contains(p.Description) {
		return true
	}
	for _, c := range p.Categories {
		if m.contains(c) {
			return true
		}
	}
	return false
}

func (m *Matcher) hasAnyID(ids []uint) bool {
	for _, id := range ids {
		if _, ok := m.ids[id]; ok {
			return true
		}
	}
	return false
}

func (m *Matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.needle)
}

// Apply returns the products matching s in the order s.SortBy asks for.
// The input slice is left untouched and equal elements keep their input order.
func Apply(products []models.Product, s State) []models.Product {
	m := NewMatcher(s)
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if m.Match(&products[i]) {
			out = append(out, products[i])
		}
	}
	Sort(out, s.SortBy)
	return out
}

// Sort orders products in place with a stable sort.
func Sort(products []models.Product, by SortBy) {
	switch by {
	case NameAsc, NameDesc:
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			c := col.CompareString(products[i].Name, products[j].Name)
			if by == NameDesc {
				return c > 0
			}
			return c < 0
		})
	case PriceAsc, PriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			a, b := products[i].Price.Decimal, products[j].Price.Decimal
			if by == PriceDesc {
				return a.GreaterThan(b)
			}
			return a.LessThan(b)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
