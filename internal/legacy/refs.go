package legacy

import "strings"

// RefIndex normalizes the legacy "id or name" category references.
type RefIndex struct {
	byID     map[string]Category
	byName   map[string]Category
	anyTypes map[string]Category
}

func NewRefIndex(categories []Category) *RefIndex {
	x := &RefIndex{
		byID:     make(map[string]Category, len(categories)),
		byName:   make(map[string]Category, len(categories)),
		anyTypes: make(map[string]Category, len(categories)),
	}
	for _, c := range categories {
		x.byID[c.ID] = c
		x.byName[nameKey(c.Type, c.Name)] = c
		if _, ok := x.anyTypes[strings.ToLower(c.Name)]; !ok {
			x.anyTypes[strings.ToLower(c.Name)] = c
		}
	}
	return x
}

func nameKey(typ, name string) string {
	return typ + "\x00" + strings.ToLower(strings.TrimSpace(name))
}

// Resolve maps one reference to a category. An id match wins, then a name
// within the product's type, then a name of any type.
func (x *RefIndex) Resolve(productType, ref string) (Category, bool) {
	if c, ok := x.byID[ref]; ok {
		return c, true
	}
	if c, ok := x.byName[nameKey(productType, ref)]; ok {
		return c, true
	}
	c, ok := x.anyTypes[strings.ToLower(strings.TrimSpace(ref))]
	return c, ok
}
