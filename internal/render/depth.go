package render

import (
	"cmp"
	"slices"
)

// depthSort appends the entities not carrying skipTag to dst and sorts them
// back to front by ascending y. Entities on the same row keep their
// collection order.
func depthSort(dst, entities []Entity, skipTag string) []Entity {
	for _, e := range entities {
		if skipTag != "" && e.HasTag(skipTag) {
			continue
		}
		dst = append(dst, e)
	}
	slices.SortStableFunc(dst, func(a, b Entity) int {
		return cmp.Compare(a.Position().Y, b.Position().Y)
	})
	return dst
}
