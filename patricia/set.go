package patricia

import (
	"iter"

	"github.com/go-sparta/sparta/codec"
)

// unit occupies no extra space in a leaf beyond the key, matching the
// original's EmptyValue specialization for set leaves.
type unit = struct{}

// Set is a persistent set of U, implemented as Tree[U, unit].
type Set[U codec.Unsigned] struct {
	t Tree[U, unit]
}

// NewSet builds a set containing the given elements.
func NewSet[U codec.Unsigned](elements ...U) Set[U] {
	var s Set[U]
	for _, e := range elements {
		s = s.Insert(e)
	}
	return s
}

func (s Set[U]) Len() int               { return s.t.Len() }
func (s Set[U]) Contains(e U) bool      { return s.t.Contains(e) }
func (s Set[U]) Insert(e U) Set[U]      { return Set[U]{t: s.t.Upsert(e, unit{})} }
func (s Set[U]) Remove(e U) Set[U]      { return Set[U]{t: s.t.Remove(e)} }
func (s Set[U]) ReferenceEqual(o Set[U]) bool {
	return s.t.ReferenceEqual(o.t)
}
func (s Set[U]) Equal(o Set[U]) bool {
	return s.t.Equal(o.t, func(unit, unit) bool { return true })
}
func (s Set[U]) IsSubsetOf(o Set[U]) bool { return s.t.IsSubsetOf(o.t) }
func (s Set[U]) Hash() uint64             { return s.t.Hash() }

// Singleton returns the sole element of a one-element set.
func (s Set[U]) Singleton() (U, bool) {
	k, _, ok := s.t.Singleton()
	return k, ok
}

// All iterates elements in ascending order.
func (s Set[U]) All() iter.Seq[U] {
	return func(yield func(U) bool) {
		s.t.VisitAll(func(k U, _ unit) bool { return yield(k) })
	}
}

func keepUnit[U codec.Unsigned](U, unit, unit) (unit, bool) { return unit{}, true }
func dropUnit[U codec.Unsigned](U, unit, unit) (unit, bool) { return unit{}, false }

// Union returns s ∪ o.
func (s Set[U]) Union(o Set[U]) Set[U] {
	return Set[U]{t: s.t.Merge(o.t, keepUnit[U])}
}

// Intersection returns s ∩ o.
func (s Set[U]) Intersection(o Set[U]) Set[U] {
	return Set[U]{t: s.t.Intersect(o.t, keepUnit[U])}
}

// Difference returns s \ o.
func (s Set[U]) Difference(o Set[U]) Set[U] {
	return Set[U]{t: s.t.Diff(o.t, dropUnit[U])}
}

// Filter returns the subset of elements satisfying predicate.
func (s Set[U]) Filter(predicate func(U) bool) Set[U] {
	return Set[U]{t: s.t.Filter(func(k U, _ unit) bool { return predicate(k) })}
}
