package sets

import (
	"github.com/go-sparta/sparta/absval"
)

// SparseSet is a powerset over a bounded universe [0, universe), implemented
// with the classic sparse-set trick: a dense array holding the elements
// actually present, packed at the front, and a sparse array (one slot per
// possible element of the universe) recording where each present element
// lives in dense. Contains is O(1): it checks dense[sparse[e]] == e instead
// of walking or masking a universe-sized bit-vector. Insert and Remove
// copy both arrays before editing them, so each costs O(universe) and
// leaves the receiver untouched; Remove swaps the removed element with
// the last dense entry instead of shifting a tail.
//
// Resolving spec.md 9's open question on how to bound a sparse set's
// cardinality: the bound is a constructor parameter, not a fixed constant,
// and inserting outside [0, universe) collapses the set to top rather than
// panicking or silently growing — the same collapse-on-overflow behavior
// SmallSortedSet has for its element cap, just triggered by range instead
// of count. Querying or removing an out-of-range element does not
// collapse: Contains reports false (on a non-top set) and Remove is a
// no-op.
type SparseSet struct {
	universe int
	top      bool
	dense    []int // dense[0:n]: the present elements, in no particular order
	sparse   []int // len == universe; sparse[e] indexes into dense when valid
	n        int
}

// NewSparseSet builds an empty SparseSet over [0, universe).
func NewSparseSet(universe int) SparseSet {
	if universe <= 0 {
		return SparseSet{universe: universe, top: true}
	}
	return SparseSet{universe: universe, sparse: make([]int, universe)}
}

func (s SparseSet) inRange(e int) bool { return e >= 0 && e < s.universe }

// valid is the trick's standard validity check: sparse[e] only means
// something if it both falls within the live prefix of dense and that
// dense slot actually points back at e. Go zero-initializes sparse, so
// this also guards against an untouched slot that happens to read 0
// before dense[0] has ever been assigned.
func (s SparseSet) valid(e int) bool {
	i := s.sparse[e]
	return i >= 0 && i < s.n && s.dense[i] == e
}

func (s SparseSet) Len() int {
	if s.top {
		return 0
	}
	return s.n
}

func (s SparseSet) Contains(e int) bool {
	if s.top {
		return true
	}
	if !s.inRange(e) {
		return false
	}
	return s.valid(e)
}

func (s SparseSet) collapsed() SparseSet {
	return SparseSet{universe: s.universe, top: true}
}

// Empty returns a fresh empty SparseSet over the same universe as s. Unlike
// the zero Go value of SparseSet (which has universe == 0 and therefore
// collapses every query to out-of-range), this preserves s's configured
// bound — the shape-preserving reset OverUnderSet.Widen needs.
func (s SparseSet) Empty() SparseSet { return NewSparseSet(s.universe) }

func (s SparseSet) cloneArrays() ([]int, []int) {
	dense := append([]int(nil), s.dense[:s.n]...)
	sparse := append([]int(nil), s.sparse...)
	return dense, sparse
}

// Insert adds e. An out-of-range e collapses the set to top: the
// abstract element is no longer expressible in this universe, so the
// safe (sound) over-approximation is "could be anything."
func (s SparseSet) Insert(e int) SparseSet {
	if s.top {
		return s
	}
	if !s.inRange(e) {
		return s.collapsed()
	}
	if s.valid(e) {
		return s
	}
	dense, sparse := s.cloneArrays()
	sparse[e] = len(dense)
	dense = append(dense, e)
	return SparseSet{universe: s.universe, dense: dense, sparse: sparse, n: len(dense)}
}

// Remove deletes e, if present. An out-of-range e is a no-op rather
// than a collapse: removing something outside the universe can never
// make the over-approximation unsound.
func (s SparseSet) Remove(e int) SparseSet {
	if s.top || !s.inRange(e) || !s.valid(e) {
		return s
	}
	dense, sparse := s.cloneArrays()
	i := sparse[e]
	last := s.n - 1
	moved := dense[last]
	dense[i] = moved
	sparse[moved] = i
	dense = dense[:last]
	return SparseSet{universe: s.universe, dense: dense, sparse: sparse, n: last}
}

// The methods below satisfy absval.Value[SparseSet].

func (s SparseSet) IsTop() bool { return s.top }

func (s SparseSet) Leq(other SparseSet) bool {
	if other.top {
		return true
	}
	if s.top {
		return false
	}
	for i := 0; i < s.n; i++ {
		if !other.valid(s.dense[i]) {
			return false
		}
	}
	return true
}

func (s SparseSet) Equal(other SparseSet) bool {
	if s.top != other.top {
		return false
	}
	if s.top {
		return true
	}
	if s.universe != other.universe || s.n != other.n {
		return false
	}
	return s.Leq(other)
}

func (s SparseSet) Kind() absval.Kind {
	switch {
	case s.top:
		return absval.Top
	case s.n == 0:
		return absval.Bottom
	default:
		return absval.ValueKind
	}
}

func (s SparseSet) Join(other SparseSet) (SparseSet, error) {
	if s.top || other.top {
		return s.collapsed(), nil
	}
	result := s
	for i := 0; i < other.n; i++ {
		result = result.Insert(other.dense[i])
	}
	return result, nil
}

func (s SparseSet) Meet(other SparseSet) (SparseSet, error) {
	if other.top {
		return s, nil
	}
	if s.top {
		return other, nil
	}
	small, large := s, other
	if small.n > large.n {
		small, large = large, small
	}
	result := NewSparseSet(s.universe)
	for i := 0; i < small.n; i++ {
		e := small.dense[i]
		if large.valid(e) {
			result = result.Insert(e)
		}
	}
	return result, nil
}

func (s SparseSet) Widen(other SparseSet) (SparseSet, error) { return s.Join(other) }

func (s SparseSet) Narrow(other SparseSet) (SparseSet, error) { return s.Meet(other) }
