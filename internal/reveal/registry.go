package reveal

import "sort"

// Build returns the reveal precedence order for the given elements.
//
// Immediately-available elements (sequence group 1) come first in document
// order. The remaining elements follow, ordered by sequence group ascending
// and by document order within equal groups. Build does not mutate its input
// and is idempotent: rebuilding an unchanged element set yields an identical
// order.
func Build(elements []Element) []Element {
	order := make([]Element, len(elements))
	copy(order, elements)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := buildKey(order[i]), buildKey(order[j])
		if a != b {
			return a < b
		}
		return order[i].Index < order[j].Index
	})
	return order
}

// buildKey hoists group 1 ahead of every other group; other groups keep
// their relative ascending order.
func buildKey(e Element) int {
	if e.SequenceGroup == 1 {
		return -1
	}
	return e.SequenceGroup
}
