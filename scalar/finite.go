package scalar

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/pkg/errors"

	"github.com/go-sparta/sparta/absval"
)

// FiniteLattice is a finite partial order over a fixed set of elements,
// built from a set of covering edges (original_source's BitVectorLattice,
// exercised by FiniteAbstractDomainTest.cpp). Construction validates that
// the edges actually describe a lattice — a unique minimum, a unique
// maximum, and a unique join and meet for every pair of elements — and
// rejects anything else outright rather than letting an ill-formed order
// surface as a silent wrong answer later.
//
// Ancestor and descendant closures are kept as roaring bitmaps indexed by
// element position: cheap set intersection is exactly what finding a
// unique common bound needs.
type FiniteLattice[E comparable] struct {
	elements    []E
	index       map[E]int
	descendants []*roaring.Bitmap // descendants[i]: positions j with elements[i] <= elements[j], reflexive
	ancestors   []*roaring.Bitmap // ancestors[i]: positions j with elements[j] <= elements[i], reflexive
	joinTable   [][]int
	meetTable   [][]int
	bottom      int
	top         int
}

// NewFiniteLattice builds a lattice from its elements and covering edges
// (lower, upper), each edge asserting elements[lower] is directly beneath
// elements[upper]. It returns an error if the edges don't describe a
// genuine lattice.
func NewFiniteLattice[E comparable](elements []E, edges [][2]E) (*FiniteLattice[E], error) {
	n := len(elements)
	index := make(map[E]int, n)
	for i, e := range elements {
		if _, dup := index[e]; dup {
			return nil, errors.Errorf("finite lattice: duplicate element %v", e)
		}
		index[e] = i
	}

	upAdj := make([]*roaring.Bitmap, n)
	downAdj := make([]*roaring.Bitmap, n)
	for i := range upAdj {
		upAdj[i] = roaring.New()
		downAdj[i] = roaring.New()
	}
	for _, e := range edges {
		lo, ok := index[e[0]]
		if !ok {
			return nil, errors.Errorf("finite lattice: edge references unknown element %v", e[0])
		}
		hi, ok := index[e[1]]
		if !ok {
			return nil, errors.Errorf("finite lattice: edge references unknown element %v", e[1])
		}
		upAdj[lo].Add(uint32(hi))
		downAdj[hi].Add(uint32(lo))
	}

	descendants := closure(n, upAdj)
	ancestors := closure(n, downAdj)

	bottom, err := uniqueExtreme(n, descendants, "minimum")
	if err != nil {
		return nil, err
	}
	top, err := uniqueExtreme(n, ancestors, "maximum")
	if err != nil {
		return nil, err
	}

	joinTable := make([][]int, n)
	meetTable := make([][]int, n)
	for i := 0; i < n; i++ {
		joinTable[i] = make([]int, n)
		meetTable[i] = make([]int, n)
		for j := 0; j < n; j++ {
			upperBound := roaring.And(descendants[i], descendants[j])
			join, err := uniqueBound(upperBound, ancestors)
			if err != nil {
				return nil, errors.Wrapf(err, "finite lattice: join of %v and %v", elements[i], elements[j])
			}
			joinTable[i][j] = join

			lowerBound := roaring.And(ancestors[i], ancestors[j])
			meet, err := uniqueBound(lowerBound, descendants)
			if err != nil {
				return nil, errors.Wrapf(err, "finite lattice: meet of %v and %v", elements[i], elements[j])
			}
			meetTable[i][j] = meet
		}
	}

	return &FiniteLattice[E]{
		elements:    elements,
		index:       index,
		descendants: descendants,
		ancestors:   ancestors,
		joinTable:   joinTable,
		meetTable:   meetTable,
		bottom:      bottom,
		top:         top,
	}, nil
}

// closure computes, for every element, the reflexive transitive closure
// of adj by repeated bitmap union until a fixed point is reached.
func closure(n int, adj []*roaring.Bitmap) []*roaring.Bitmap {
	reach := make([]*roaring.Bitmap, n)
	for i := 0; i < n; i++ {
		reach[i] = roaring.New()
		reach[i].Add(uint32(i))
		reach[i].Or(adj[i])
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			before := reach[i].GetCardinality()
			it := reach[i].Iterator()
			merged := roaring.New()
			merged.Or(reach[i])
			for it.HasNext() {
				merged.Or(reach[it.Next()])
			}
			if merged.GetCardinality() != before {
				reach[i] = merged
				changed = true
			}
		}
	}
	return reach
}

// uniqueExtreme finds the single position i whose closure set covers
// every element (the lattice's bottom when closure is descendants, its
// top when closure is ancestors), erroring if there isn't exactly one.
func uniqueExtreme(n int, closureSets []*roaring.Bitmap, name string) (int, error) {
	found := -1
	for i := 0; i < n; i++ {
		if int(closureSets[i].GetCardinality()) == n {
			if found != -1 {
				return 0, errors.Errorf("finite lattice: no unique %s", name)
			}
			found = i
		}
	}
	if found == -1 {
		return 0, errors.Errorf("finite lattice: no unique %s", name)
	}
	return found, nil
}

// uniqueBound finds the single member k of candidates whose own
// closure[k], restricted to candidates, is just {k} — i.e. no other
// candidate is reachable from k in that closure's direction. Passing
// ancestors finds the least upper bound among a set of common upper
// bounds (join); passing descendants finds the greatest lower bound
// among a set of common lower bounds (meet).
func uniqueBound(candidates *roaring.Bitmap, closure []*roaring.Bitmap) (int, error) {
	if candidates.IsEmpty() {
		return 0, errors.New("no common bound")
	}
	found := -1
	it := candidates.Iterator()
	for it.HasNext() {
		k := it.Next()
		restricted := roaring.And(closure[k], candidates)
		if restricted.GetCardinality() == 1 {
			if found != -1 {
				return 0, errors.New("not unique")
			}
			found = int(k)
		}
	}
	if found == -1 {
		return 0, errors.New("no unique bound")
	}
	return found, nil
}

// Finite is an abstract value drawn from a FiniteLattice: the element
// itself doubles as bottom, top, or an ordinary value depending on its
// position.
type Finite[E comparable] struct {
	lattice *FiniteLattice[E]
	idx     int
}

// FiniteOf wraps a concrete element of lattice.
func FiniteOf[E comparable](lattice *FiniteLattice[E], e E) (Finite[E], error) {
	idx, ok := lattice.index[e]
	if !ok {
		return Finite[E]{}, fmt.Errorf("finite lattice: unknown element %v", e)
	}
	return Finite[E]{lattice: lattice, idx: idx}, nil
}

// FiniteBottom returns lattice's unique minimum.
func FiniteBottom[E comparable](lattice *FiniteLattice[E]) Finite[E] {
	return Finite[E]{lattice: lattice, idx: lattice.bottom}
}

// FiniteTop returns lattice's unique maximum.
func FiniteTop[E comparable](lattice *FiniteLattice[E]) Finite[E] {
	return Finite[E]{lattice: lattice, idx: lattice.top}
}

// Element returns the concrete value f wraps.
func (f Finite[E]) Element() E { return f.lattice.elements[f.idx] }

func (f Finite[E]) IsTop() bool { return f.idx == f.lattice.top }

func (f Finite[E]) Kind() absval.Kind {
	switch f.idx {
	case f.lattice.bottom:
		return absval.Bottom
	case f.lattice.top:
		return absval.Top
	default:
		return absval.ValueKind
	}
}

func (f Finite[E]) Leq(other Finite[E]) bool {
	return f.lattice.descendants[f.idx].Contains(uint32(other.idx))
}

func (f Finite[E]) Equal(other Finite[E]) bool { return f.idx == other.idx }

func (f Finite[E]) Join(other Finite[E]) (Finite[E], error) {
	return Finite[E]{lattice: f.lattice, idx: f.lattice.joinTable[f.idx][other.idx]}, nil
}

func (f Finite[E]) Meet(other Finite[E]) (Finite[E], error) {
	return Finite[E]{lattice: f.lattice, idx: f.lattice.meetTable[f.idx][other.idx]}, nil
}

// Widen and Narrow are Join and Meet: the lattice is finite, so no
// further approximation is needed to guarantee termination.
func (f Finite[E]) Widen(other Finite[E]) (Finite[E], error)  { return f.Join(other) }
func (f Finite[E]) Narrow(other Finite[E]) (Finite[E], error) { return f.Meet(other) }
