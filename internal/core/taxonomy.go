package core

import "fmt"

// Taxonomy maps each budget category to its known subcategories. It is built
// once per run from the categories reference block and never mutated.
type Taxonomy struct {
	order []string
	subs  map[string]map[string]struct{}
}

// NewTaxonomy builds a taxonomy from a rectangular block where the first row
// names the categories and every later row carries subcategory values
// aligned under their category's column. Blank cells are ignored.
func NewTaxonomy(rows [][]string) Taxonomy {
	t := Taxonomy{subs: make(map[string]map[string]struct{})}
	if len(rows) == 0 {
		return t
	}
	headers := rows[0]
	for i := range headers {
		name := cell(headers, i)
		if name == "" {
			continue
		}
		if _, ok := t.subs[name]; !ok {
			t.order = append(t.order, name)
			t.subs[name] = make(map[string]struct{})
		}
	}
	for _, row := range rows[1:] {
		for i := range headers {
			name := cell(headers, i)
			if name == "" {
				continue
			}
			if v := cell(row, i); v != "" {
				t.subs[name][v] = struct{}{}
			}
		}
	}
	return t
}

// Categories returns the category names in header column order.
func (t Taxonomy) Categories() []string {
	return append([]string(nil), t.order...)
}

// Resolve returns the category owning the given subcategory. When a
// subcategory appears under more than one category, the first match in
// header column order wins; the taxonomy sheet is expected to keep them
// disjoint. A miss is an ErrUnknownSubcategory - the caller treats it as a
// fatal inconsistency between the budget sheet and the taxonomy.
func (t Taxonomy) Resolve(subcategory string) (string, error) {
	for _, name := range t.order {
		if _, ok := t.subs[name][subcategory]; ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubcategory, subcategory)
}
