package sets

import "github.com/go-sparta/sparta/absval"

// UnderlyingSet is implemented by every concrete set type usable as one
// half of an OverUnderSet. Besides the absval.Value combinators, it can
// produce a fresh Empty value that preserves its own shape — the element
// cap of a SmallSortedSet, the universe bound of a SparseSet — rather
// than the type parameter's plain zero value, whose zero-value shape may
// not be a valid empty set at all (a zero-value SparseSet has universe
// == 0, which collapses every query to out-of-range).
type UnderlyingSet[S any] interface {
	absval.Value[S]
	Empty() S
}

// OverUnderSet pairs an over-approximation ("may contain") and an
// under-approximation ("must contain") of the same unknown set, with
// the invariant under ⊑ over. NewOverUnderSet checks it at construction,
// Join and Widen preserve it, and Meet and Narrow return the empty pair
// when their grown under-set no longer fits inside their shrunk
// over-set. An empty over-set therefore always comes with an empty
// under-set; an empty under-set does not force the over-set empty (Join
// and Widen routinely produce one).
type OverUnderSet[S UnderlyingSet[S]] struct {
	over, under S
}

// NewOverUnderSet pairs over and under. Panics if under does not
// actually underapproximate over (under.Leq(over) fails) — a caller
// bug, not a runtime condition this library can recover from.
func NewOverUnderSet[S UnderlyingSet[S]](over, under S) OverUnderSet[S] {
	if !under.Leq(over) {
		panic("sets: under-approximation is not <= over-approximation")
	}
	return OverUnderSet[S]{over: over, under: under}
}

// Over returns the may-contain approximation.
func (o OverUnderSet[S]) Over() S { return o.over }

// Under returns the must-contain approximation.
func (o OverUnderSet[S]) Under() S { return o.under }

// The methods below satisfy absval.Value[OverUnderSet[S]].

func (o OverUnderSet[S]) IsTop() bool { return o.over.IsTop() }

func (o OverUnderSet[S]) Leq(other OverUnderSet[S]) bool {
	return o.over.Leq(other.over) && o.under.Leq(other.under)
}

func (o OverUnderSet[S]) Equal(other OverUnderSet[S]) bool {
	return o.over.Equal(other.over) && o.under.Equal(other.under)
}

func (o OverUnderSet[S]) Kind() absval.Kind {
	switch {
	case o.over.IsTop():
		return absval.Top
	case o.over.Kind() == absval.Bottom:
		return absval.Bottom
	default:
		return absval.ValueKind
	}
}

// Join grows the may-set (union, sound: either path could have added an
// element) and shrinks the must-set (intersection: only elements
// present on every path are still guaranteed present).
func (o OverUnderSet[S]) Join(other OverUnderSet[S]) (OverUnderSet[S], error) {
	over, err := o.over.Join(other.over)
	if err != nil {
		return OverUnderSet[S]{}, err
	}
	under, err := o.under.Meet(other.under)
	if err != nil {
		return OverUnderSet[S]{}, err
	}
	return OverUnderSet[S]{over: over, under: under}, nil
}

// Meet shrinks the may-set (intersection) and grows the must-set
// (union): dual of Join. A result whose must-set is not ⊑ its may-set
// describes no concrete set and is returned as the empty pair.
func (o OverUnderSet[S]) Meet(other OverUnderSet[S]) (OverUnderSet[S], error) {
	over, err := o.over.Meet(other.over)
	if err != nil {
		return OverUnderSet[S]{}, err
	}
	under, err := o.under.Join(other.under)
	if err != nil {
		return OverUnderSet[S]{}, err
	}
	if !under.Leq(over) {
		return OverUnderSet[S]{over: over.Empty(), under: under.Empty()}, nil
	}
	return OverUnderSet[S]{over: over, under: under}, nil
}

// Widen widens the may-set and drops the must-set to empty: only the
// over-approximation is guaranteed monotonic across widening steps, so
// keeping an under-set computed the same way Join does risks never
// reaching a fixed point (spec.md 4.E). The drop uses o.under.Empty()
// rather than S's plain zero value: for a configured set like SparseSet
// or SmallSortedSet, the zero value discards the configuration (universe
// bound, element cap) along with the contents, which would silently
// truncate any later Join/Meet against the widened under-set.
func (o OverUnderSet[S]) Widen(other OverUnderSet[S]) (OverUnderSet[S], error) {
	over, err := o.over.Widen(other.over)
	if err != nil {
		return OverUnderSet[S]{}, err
	}
	return OverUnderSet[S]{over: over, under: o.under.Empty()}, nil
}

// Narrow narrows the may-set and grows the must-set, dual to Meet; like
// Meet, it returns the empty pair when the must-set no longer fits.
func (o OverUnderSet[S]) Narrow(other OverUnderSet[S]) (OverUnderSet[S], error) {
	over, err := o.over.Narrow(other.over)
	if err != nil {
		return OverUnderSet[S]{}, err
	}
	under, err := o.under.Join(other.under)
	if err != nil {
		return OverUnderSet[S]{}, err
	}
	if !under.Leq(over) {
		return OverUnderSet[S]{over: over.Empty(), under: under.Empty()}, nil
	}
	return OverUnderSet[S]{over: over, under: under}, nil
}
