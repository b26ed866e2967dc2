package spatial

import "github.com/RoaringBitmap/roaring/v2"

// groupIndex maps each group label to the set of points carrying it.
// Iterating a member bitmap yields ascending point indices, which preserves
// the scan order of a full pass that skips other groups.
type groupIndex map[int32]*roaring.Bitmap

func newGroupIndex(groups []int32) groupIndex {
	idx := make(groupIndex)
	for i, g := range groups {
		bm, ok := idx[g]
		if !ok {
			bm = roaring.New()
			idx[g] = bm
		}
		bm.Add(uint32(i))
	}
	for _, bm := range idx {
		bm.RunOptimize()
	}
	return idx
}

// members returns the points in group g. The bitmap is shared and read-only.
func (idx groupIndex) members(g int32) *roaring.Bitmap {
	return idx[g]
}

// sizes returns the member count per label.
func (idx groupIndex) sizes() map[int32]uint64 {
	out := make(map[int32]uint64, len(idx))
	for g, bm := range idx {
		out[g] = bm.GetCardinality()
	}
	return out
}
