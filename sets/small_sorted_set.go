package sets

import (
	"cmp"
	"slices"

	"github.com/go-sparta/sparta/absval"
)

// SmallSortedSet is a flat sorted-slice set specialized for small
// cardinalities: insert/remove/contains are O(log n) probes plus an
// O(n) slice edit, which beats a map or trie for the handful of
// elements these sets typically hold in practice. It collapses to top
// once it would exceed its fixed element cap (spec.md 4.E), so every
// SmallSortedSet-based PowersetDomain has finite height by
// construction.
type SmallSortedSet[K cmp.Ordered] struct {
	cap   int
	top   bool
	elems []K // sorted, de-duplicated; nil when top
}

// NewSmallSortedSet builds a SmallSortedSet with the given element cap,
// containing the given elements (collapsing to top immediately if they
// exceed the cap).
func NewSmallSortedSet[K cmp.Ordered](elementCap int, elements ...K) SmallSortedSet[K] {
	s := SmallSortedSet[K]{cap: elementCap}
	for _, e := range elements {
		s = s.Insert(e)
	}
	return s
}

func (s SmallSortedSet[K]) Len() int { return len(s.elems) }

func (s SmallSortedSet[K]) Contains(k K) bool {
	if s.top {
		return true
	}
	_, ok := slices.BinarySearch(s.elems, k)
	return ok
}

func (s SmallSortedSet[K]) collapsed() SmallSortedSet[K] {
	return SmallSortedSet[K]{cap: s.cap, top: true}
}

// Empty returns a fresh empty SmallSortedSet with the same element cap as
// s. The zero SmallSortedSet[K] value has cap == 0, which would collapse
// to top on the very first Insert, so this is not the same as var empty
// SmallSortedSet[K] — it's the shape-preserving reset OverUnderSet.Widen
// needs.
func (s SmallSortedSet[K]) Empty() SmallSortedSet[K] { return SmallSortedSet[K]{cap: s.cap} }

func (s SmallSortedSet[K]) Insert(k K) SmallSortedSet[K] {
	if s.top {
		return s
	}
	i, found := slices.BinarySearch(s.elems, k)
	if found {
		return s
	}
	elems := slices.Insert(slices.Clone(s.elems), i, k)
	if len(elems) > s.cap {
		return s.collapsed()
	}
	return SmallSortedSet[K]{cap: s.cap, elems: elems}
}

func (s SmallSortedSet[K]) Remove(k K) SmallSortedSet[K] {
	if s.top {
		// Top has no explicit elements left to remove one from; it
		// stays top, matching the environment/partition convention that
		// once collapsed, a domain doesn't un-collapse from a single op.
		return s
	}
	i, found := slices.BinarySearch(s.elems, k)
	if !found {
		return s
	}
	return SmallSortedSet[K]{cap: s.cap, elems: slices.Delete(slices.Clone(s.elems), i, i+1)}
}

// The methods below satisfy absval.Value[SmallSortedSet[K]].

func (s SmallSortedSet[K]) IsTop() bool { return s.top }

func (s SmallSortedSet[K]) Leq(other SmallSortedSet[K]) bool {
	if other.top {
		return true
	}
	if s.top {
		return false
	}
	for _, e := range s.elems {
		if _, ok := slices.BinarySearch(other.elems, e); !ok {
			return false
		}
	}
	return true
}

func (s SmallSortedSet[K]) Equal(other SmallSortedSet[K]) bool {
	if s.top != other.top {
		return false
	}
	if s.top {
		return true
	}
	return slices.Equal(s.elems, other.elems)
}

func (s SmallSortedSet[K]) Kind() absval.Kind {
	switch {
	case s.top:
		return absval.Top
	case len(s.elems) == 0:
		return absval.Bottom
	default:
		return absval.ValueKind
	}
}

// mergeSorted performs the single linear scan both Join and Meet need
// over two sorted, de-duplicated slices, appending an element present
// only in a when keepLeft is set, only in b when keepRight is set, and in
// both when keepBoth is set.
func mergeSorted[K cmp.Ordered](a, b []K, keepLeft, keepRight, keepBoth bool) []K {
	var result []K
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			if keepLeft {
				result = append(result, a[i])
			}
			i++
		case a[i] > b[j]:
			if keepRight {
				result = append(result, b[j])
			}
			j++
		default:
			if keepBoth {
				result = append(result, a[i])
			}
			i++
			j++
		}
	}
	if keepLeft {
		result = append(result, a[i:]...)
	}
	if keepRight {
		result = append(result, b[j:]...)
	}
	return result
}

func (s SmallSortedSet[K]) Join(other SmallSortedSet[K]) (SmallSortedSet[K], error) {
	if s.top || other.top {
		return s.collapsed(), nil
	}
	elems := mergeSorted(s.elems, other.elems, true, true, true)
	if len(elems) > s.cap {
		return s.collapsed(), nil
	}
	return SmallSortedSet[K]{cap: s.cap, elems: elems}, nil
}

func (s SmallSortedSet[K]) Meet(other SmallSortedSet[K]) (SmallSortedSet[K], error) {
	if other.top {
		return s, nil
	}
	if s.top {
		return other, nil
	}
	elems := mergeSorted(s.elems, other.elems, false, false, true)
	return SmallSortedSet[K]{cap: s.cap, elems: elems}, nil
}

func (s SmallSortedSet[K]) Widen(other SmallSortedSet[K]) (SmallSortedSet[K], error) {
	return s.Join(other)
}

func (s SmallSortedSet[K]) Narrow(other SmallSortedSet[K]) (SmallSortedSet[K], error) {
	return s.Meet(other)
}
