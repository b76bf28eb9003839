package sets

import (
	"iter"

	"github.com/go-sparta/sparta/absval"
	"github.com/go-sparta/sparta/codec"
	"github.com/go-sparta/sparta/patricia"
)

// TrieSet is a persistent set backed by patricia.Set, appropriate for
// analyses that create large numbers of identical or near-identical sets
// (spec.md 4.E: "trie set... share unaffected subtries").
type TrieSet[U codec.Unsigned] struct {
	s patricia.Set[U]
}

// NewTrieSet builds a TrieSet containing the given elements.
func NewTrieSet[U codec.Unsigned](elements ...U) TrieSet[U] {
	return TrieSet[U]{s: patricia.NewSet[U](elements...)}
}

func (t TrieSet[U]) Len() int          { return t.s.Len() }
func (t TrieSet[U]) Contains(k U) bool { return t.s.Contains(k) }
func (t TrieSet[U]) Insert(k U) TrieSet[U] {
	return TrieSet[U]{s: t.s.Insert(k)}
}
func (t TrieSet[U]) Remove(k U) TrieSet[U] {
	return TrieSet[U]{s: t.s.Remove(k)}
}

// Empty returns the empty TrieSet. The zero TrieSet[U] value is already
// an empty set (patricia.Set's zero value is the empty trie), so this is
// equivalent to TrieSet[U]{} — spelled out so TrieSet satisfies the
// Empty() requirement every OverUnderSet component needs.
func (t TrieSet[U]) Empty() TrieSet[U] { return NewTrieSet[U]() }

// Singleton returns the sole element of a one-element set.
func (t TrieSet[U]) Singleton() (U, bool) { return t.s.Singleton() }

// All iterates elements in ascending order.
func (t TrieSet[U]) All() iter.Seq[U] { return t.s.All() }

// ReferenceEqual reports whether t and other share the identical
// underlying trie, the fast path PowersetDomain fixed-point loops use to
// detect convergence without a full structural comparison.
func (t TrieSet[U]) ReferenceEqual(other TrieSet[U]) bool {
	return t.s.ReferenceEqual(other.s)
}

// The methods below satisfy absval.Value[TrieSet[U]], letting TrieSet be
// lifted directly by PowersetDomain.

func (t TrieSet[U]) IsTop() bool { return false }

func (t TrieSet[U]) Leq(other TrieSet[U]) bool { return t.s.IsSubsetOf(other.s) }

func (t TrieSet[U]) Equal(other TrieSet[U]) bool { return t.s.Equal(other.s) }

func (t TrieSet[U]) Kind() absval.Kind {
	if t.s.Len() == 0 {
		return absval.Bottom
	}
	return absval.ValueKind
}

func (t TrieSet[U]) Join(other TrieSet[U]) (TrieSet[U], error) {
	if t.s.ReferenceEqual(other.s) {
		return t, nil
	}
	return TrieSet[U]{s: t.s.Union(other.s)}, nil
}

func (t TrieSet[U]) Meet(other TrieSet[U]) (TrieSet[U], error) {
	return TrieSet[U]{s: t.s.Intersection(other.s)}, nil
}

// Widen is join: the trie-set lattice only has finite height when U's
// value space does, so callers bound the number of widening steps
// themselves (spec.md 4.E).
func (t TrieSet[U]) Widen(other TrieSet[U]) (TrieSet[U], error) { return t.Join(other) }

func (t TrieSet[U]) Narrow(other TrieSet[U]) (TrieSet[U], error) { return t.Meet(other) }
