package page

import "sort"

// Pages is a slice of Page.
type Pages []*Page

// SortByDefault sorts pages for display: date descending, then slug
// ascending. This only affects navigation and index order, never the
// content of individual pages.
func (ps Pages) SortByDefault() {
	sort.SliceStable(ps, func(i, j int) bool {
		pi, pj := ps[i], ps[j]
		if !pi.Date().Equal(pj.Date()) {
			return pi.Date().After(pj.Date())
		}
		return pi.Slug() < pj.Slug()
	})
}

// BySection groups pages by their content section, keeping the slice order.
func (ps Pages) BySection() map[string]Pages {
	m := make(map[string]Pages)
	for _, p := range ps {
		m[p.Section()] = append(m[p.Section()], p)
	}
	return m
}
