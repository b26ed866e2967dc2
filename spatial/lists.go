package spatial

import (
	"fmt"
	"slices"
)

// Lists holds one neighbor list per point in a flattened layout: the
// neighbors of point i are index[offsets[i]:offsets[i+1]].
//
// Indices are 0-based and ascending within each list. Lists are immutable
// once built; At returns views that callers must not modify.
type Lists struct {
	index   []int32
	offsets []int
}

// NewLists flattens nested per-point lists.
func NewLists(lists [][]int32) *Lists {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := &Lists{
		index:   make([]int32, 0, total),
		offsets: make([]int, len(lists)+1),
	}
	for i, l := range lists {
		out.index = append(out.index, l...)
		out.offsets[i+1] = len(out.index)
	}
	return out
}

// Len returns the number of points.
func (l *Lists) Len() int { return len(l.offsets) - 1 }

// Total returns the number of (point, neighbor) pairs across all lists.
func (l *Lists) Total() int { return len(l.index) }

// Count returns the length of point i's list.
func (l *Lists) Count(i int) int { return l.offsets[i+1] - l.offsets[i] }

// At returns point i's neighbor indices as a read-only view.
func (l *Lists) At(i int) []int32 { return l.index[l.offsets[i]:l.offsets[i+1]:l.offsets[i+1]] }

// OneBased returns a copy of point i's list with 1-based indices, the form
// expected by hosts with 1-based arrays.
func (l *Lists) OneBased(i int) []int32 {
	src := l.At(i)
	out := make([]int32, len(src))
	for k, v := range src {
		out[k] = v + 1
	}
	return out
}

// Nested returns a deep copy as one slice per point.
func (l *Lists) Nested() [][]int32 {
	out := make([][]int32, l.Len())
	for i := range out {
		out[i] = slices.Clone(l.At(i))
	}
	return out
}

// MaxIndex returns the largest neighbor index, or -1 when there are none.
func (l *Lists) MaxIndex() int32 {
	if len(l.index) == 0 {
		return -1
	}
	return slices.Max(l.index)
}

// checkRange verifies every index lies in [0, n).
func (l *Lists) checkRange(n int) error {
	for i := 0; i < l.Len(); i++ {
		for _, ii := range l.At(i) {
			if ii < 0 || int(ii) >= n {
				return fmt.Errorf("%w: point %d lists neighbor %d of %d", ErrIndexOutOfRange, i, ii, n)
			}
		}
	}
	return nil
}

// Validate checks that the lists cover n points and every index lies in [0, n).
func (l *Lists) Validate(n int) error {
	if l.Len() != n {
		return fmt.Errorf("%w: %d lists for %d points", ErrShapeMismatch, l.Len(), n)
	}
	return l.checkRange(n)
}

// CheckGroups returns ErrStaleLists when a list links points with different
// group labels. groups must have one label per list.
func (l *Lists) CheckGroups(groups []int32) error {
	if len(groups) != l.Len() {
		return fmt.Errorf("%w: %d groups for %d lists", ErrShapeMismatch, len(groups), l.Len())
	}
	for i := range l.Len() {
		g := groups[i]
		for _, ii := range l.At(i) {
			if groups[ii] != g {
				return fmt.Errorf("%w: point %d (group %d) lists %d (group %d)", ErrStaleLists, i, g, ii, groups[ii])
			}
		}
	}
	return nil
}
