package sets

import (
	"iter"

	"github.com/go-sparta/sparta/absval"
)

// HashSet is a set backed by a Go map. Unlike TrieSet, Insert and Remove
// mutate the receiver's backing map in place (spec.md 4.E: "hash set...
// mutate in place") rather than returning a structurally-shared copy —
// two HashSet values that share a backing map alias each other's
// mutations. Join, Meet, Widen and Narrow never mutate either operand:
// they always build a fresh backing map, so a HashSet pulled out of a
// PowersetDomain via domain.Scaffold.Unwrap is safe to Join/Meet but
// should be Clone'd before a direct Insert/Remove if the caller also
// still holds the Scaffold it came from.
type HashSet[K comparable] struct {
	m map[K]struct{}
}

// NewHashSet builds a HashSet containing the given elements.
func NewHashSet[K comparable](elements ...K) HashSet[K] {
	m := make(map[K]struct{}, len(elements))
	for _, e := range elements {
		m[e] = struct{}{}
	}
	return HashSet[K]{m: m}
}

func (h HashSet[K]) Len() int { return len(h.m) }

func (h HashSet[K]) Contains(k K) bool {
	_, ok := h.m[k]
	return ok
}

// Insert adds k to h's backing map and returns h (the map is shared, not
// copied). A zero-value HashSet has no map yet; Insert then allocates one
// that only the returned value holds.
func (h HashSet[K]) Insert(k K) HashSet[K] {
	if h.m == nil {
		h.m = make(map[K]struct{}, 1)
	}
	h.m[k] = struct{}{}
	return h
}

// Remove deletes k from h's backing map and returns h unchanged.
func (h HashSet[K]) Remove(k K) HashSet[K] {
	delete(h.m, k)
	return h
}

// Empty returns an empty HashSet with a fresh, independent backing map.
func (h HashSet[K]) Empty() HashSet[K] { return NewHashSet[K]() }

// Clone returns a HashSet with an independent backing map holding the
// same elements.
func (h HashSet[K]) Clone() HashSet[K] {
	m := make(map[K]struct{}, len(h.m))
	for k := range h.m {
		m[k] = struct{}{}
	}
	return HashSet[K]{m: m}
}

// Singleton returns the sole element of a one-element set.
func (h HashSet[K]) Singleton() (K, bool) {
	if len(h.m) != 1 {
		var zero K
		return zero, false
	}
	for k := range h.m {
		return k, true
	}
	var zero K
	return zero, false
}

// All iterates elements in map order (unspecified, unlike TrieSet).
func (h HashSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range h.m {
			if !yield(k) {
				return
			}
		}
	}
}

// The methods below satisfy absval.Value[HashSet[K]].

func (h HashSet[K]) IsTop() bool { return false }

func (h HashSet[K]) Leq(other HashSet[K]) bool {
	for k := range h.m {
		if _, ok := other.m[k]; !ok {
			return false
		}
	}
	return true
}

func (h HashSet[K]) Equal(other HashSet[K]) bool {
	if len(h.m) != len(other.m) {
		return false
	}
	return h.Leq(other)
}

func (h HashSet[K]) Kind() absval.Kind {
	if len(h.m) == 0 {
		return absval.Bottom
	}
	return absval.ValueKind
}

// Join iterates the smaller map into a clone of the larger (spec.md
// 4.E: "iterate smaller into larger"), producing a fresh HashSet.
func (h HashSet[K]) Join(other HashSet[K]) (HashSet[K], error) {
	small, large := h, other
	if len(small.m) > len(large.m) {
		small, large = large, small
	}
	result := large.Clone()
	for k := range small.m {
		result.m[k] = struct{}{}
	}
	return result, nil
}

func (h HashSet[K]) Meet(other HashSet[K]) (HashSet[K], error) {
	small, large := h, other
	if len(small.m) > len(large.m) {
		small, large = large, small
	}
	result := make(map[K]struct{}, len(small.m))
	for k := range small.m {
		if _, ok := large.m[k]; ok {
			result[k] = struct{}{}
		}
	}
	return HashSet[K]{m: result}, nil
}

func (h HashSet[K]) Widen(other HashSet[K]) (HashSet[K], error) { return h.Join(other) }

func (h HashSet[K]) Narrow(other HashSet[K]) (HashSet[K], error) { return h.Meet(other) }
