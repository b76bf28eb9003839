package scalar

import "github.com/go-sparta/sparta/absval"

// Lifted adds a new bottom element strictly below an underlying domain
// U's own bottom (original_source/.../LiftedDomain.h). It is how the
// analysis distinguishes "U's own bottom" (a value U itself computed,
// e.g. the empty set) from "we have no information at all yet" when U's
// bottom is already a meaningful, reachable value in its own right.
//
// Lifted has no static way to manufacture "U's top" on demand (the same
// gap env.Environment works around), so every constructor that needs one
// takes a sample top U explicitly.
type Lifted[U absval.Value[U]] struct {
	isBottom bool
	u        U
}

// LiftedBottom returns the new bottom strictly below every lifted U.
func LiftedBottom[U absval.Value[U]]() Lifted[U] {
	return Lifted[U]{isBottom: true}
}

// LiftedOf lifts a concrete U value, including U's own bottom or top.
func LiftedOf[U absval.Value[U]](u U) Lifted[U] {
	return Lifted[U]{u: u}
}

// LiftedTop returns the lift of top, the top of the lifted lattice.
func LiftedTop[U absval.Value[U]](top U) Lifted[U] {
	return Lifted[U]{u: top}
}

// Lower returns l's wrapped U value and ok=true, or the zero U and
// ok=false if l is the new bottom (original_source's lowered(), which
// panics on bottom — this module reports failure instead).
func (l Lifted[U]) Lower() (u U, ok bool) {
	if l.isBottom {
		return u, false
	}
	return l.u, true
}

func (l Lifted[U]) IsTop() bool {
	return !l.isBottom && l.u.IsTop()
}

func (l Lifted[U]) Kind() absval.Kind {
	switch {
	case l.isBottom:
		return absval.Bottom
	case l.u.IsTop():
		return absval.Top
	default:
		return absval.ValueKind
	}
}

func (l Lifted[U]) Leq(other Lifted[U]) bool {
	if l.isBottom {
		return true
	}
	if other.isBottom {
		return false
	}
	return l.u.Leq(other.u)
}

func (l Lifted[U]) Equal(other Lifted[U]) bool {
	if l.isBottom != other.isBottom {
		return false
	}
	if l.isBottom {
		return true
	}
	return l.u.Equal(other.u)
}

func (l Lifted[U]) Join(other Lifted[U]) (Lifted[U], error) {
	if l.isBottom {
		return other, nil
	}
	if other.isBottom {
		return l, nil
	}
	joined, err := l.u.Join(other.u)
	if err != nil {
		return Lifted[U]{}, err
	}
	return Lifted[U]{u: joined}, nil
}

func (l Lifted[U]) Meet(other Lifted[U]) (Lifted[U], error) {
	if l.isBottom || other.isBottom {
		return LiftedBottom[U](), nil
	}
	met, err := l.u.Meet(other.u)
	if err != nil {
		return Lifted[U]{}, err
	}
	return Lifted[U]{u: met}, nil
}

func (l Lifted[U]) Widen(other Lifted[U]) (Lifted[U], error) {
	if l.isBottom {
		return other, nil
	}
	if other.isBottom {
		return l, nil
	}
	widened, err := l.u.Widen(other.u)
	if err != nil {
		return Lifted[U]{}, err
	}
	return Lifted[U]{u: widened}, nil
}

func (l Lifted[U]) Narrow(other Lifted[U]) (Lifted[U], error) {
	if l.isBottom || other.isBottom {
		return LiftedBottom[U](), nil
	}
	narrowed, err := l.u.Narrow(other.u)
	if err != nil {
		return Lifted[U]{}, err
	}
	return Lifted[U]{u: narrowed}, nil
}
