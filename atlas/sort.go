package atlas

import "sort"

// sortSourcesDescending orders sources by decreasing area, breaking ties with
// a composite h*16384+w priority so equal-area rectangles still fall into a
// stable, deterministic order regardless of input order.
func sortSourcesDescending(sources []SourceImage) {
	sort.SliceStable(sources, func(i, j int) bool {
		return sourceLess(sources[i], sources[j])
	})
}

// sortOrder returns the permutation of indices into sources that would put
// them in the same descending order as sortSourcesDescending, without
// mutating sources. order[i] is the index into sources of the element that
// belongs at sorted position i.
func sortOrder(sources []SourceImage) []int {
	order := make([]int, len(sources))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sourceLess(sources[order[i]], sources[order[j]])
	})
	return order
}

func sourceLess(a, b SourceImage) bool {
	aa, ab := a.Rect.Area(), b.Rect.Area()
	if aa != ab {
		return aa > ab
	}
	pa := int64(a.Rect.Height)*16384 + int64(a.Rect.Width)
	pb := int64(b.Rect.Height)*16384 + int64(b.Rect.Width)
	return pa > pb
}
