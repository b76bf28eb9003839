// Package domain provides the tri-state lattice scaffolding every
// compound abstract domain in this module is built on (spec.md 4.D).
package domain

import (
	"github.com/go-sparta/sparta/absval"
)

type tag uint8

const (
	tagBottom tag = iota
	tagTop
	tagValue
)

// Scaffold wraps an absval.Value[V] with an explicit BOTTOM|TOP|VALUE
// tag, giving V a uniform abstract-domain surface: bottom()/top()
// constructors, the four lattice combinators, and is_bottom/is_top
// predicates. It normalizes after every mutation — if V's own Kind()
// ever reports bottom or top, the explicit tag takes over and the
// stored value is dropped — so the tag is always authoritative and V's
// combinators are only ever invoked when both operands are genuine
// values; every other combination is resolved directly from the lattice
// absorption laws bottom ⊑ x ⊑ top.
type Scaffold[V absval.Value[V]] struct {
	t tag
	v V
}

// Bottom returns the bottom element.
func Bottom[V absval.Value[V]]() Scaffold[V] {
	return Scaffold[V]{t: tagBottom}
}

// Top returns the top element.
func Top[V absval.Value[V]]() Scaffold[V] {
	return Scaffold[V]{t: tagTop}
}

// Wrap lifts a genuine value into the scaffold, normalizing immediately
// in case v already reports Kind() == Bottom or Kind() == Top.
func Wrap[V absval.Value[V]](v V) Scaffold[V] {
	s := Scaffold[V]{t: tagValue, v: v}
	s.normalize()
	return s
}

func (s *Scaffold[V]) normalize() {
	if s.t != tagValue {
		return
	}
	switch s.v.Kind() {
	case absval.Bottom:
		var zero V
		s.t, s.v = tagBottom, zero
	case absval.Top:
		var zero V
		s.t, s.v = tagTop, zero
	}
}

// IsBottom reports whether s is the bottom element.
func (s Scaffold[V]) IsBottom() bool { return s.t == tagBottom }

// IsTop reports whether s is the top element.
func (s Scaffold[V]) IsTop() bool { return s.t == tagTop }

// Kind reports which of the three lattice states s occupies.
func (s Scaffold[V]) Kind() absval.Kind {
	switch s.t {
	case tagBottom:
		return absval.Bottom
	case tagTop:
		return absval.Top
	default:
		return absval.ValueKind
	}
}

// Unwrap returns the underlying value and true, or the zero value and
// false if s is bottom or top and therefore has no underlying value.
func (s Scaffold[V]) Unwrap() (V, bool) {
	if s.t != tagValue {
		var zero V
		return zero, false
	}
	return s.v, true
}

// Leq reports whether s is less than or equal to other.
func (s Scaffold[V]) Leq(other Scaffold[V]) bool {
	switch {
	case s.t == tagBottom:
		return true
	case other.t == tagBottom:
		return false
	case other.t == tagTop:
		return true
	case s.t == tagTop:
		return false
	default:
		return s.v.Leq(other.v)
	}
}

// Equal reports whether s and other are the same lattice element.
func (s Scaffold[V]) Equal(other Scaffold[V]) bool {
	if s.t != other.t {
		return false
	}
	if s.t == tagValue {
		return s.v.Equal(other.v)
	}
	return true
}

// combine implements the shared shape of Join/Meet/Widen/Narrow: bottom
// and top are absorbed directly per absorbBottom/absorbTop, and V's own combinator is
// invoked only when both sides are genuine values.
func combine[V absval.Value[V]](
	s, other Scaffold[V],
	absorbBottom, absorbTop bool,
	op func(a, b V) (V, error),
) (Scaffold[V], error) {
	switch {
	case s.t == tagBottom:
		if absorbBottom {
			return Bottom[V](), nil
		}
		return other, nil
	case other.t == tagBottom:
		if absorbBottom {
			return Bottom[V](), nil
		}
		return s, nil
	case s.t == tagTop:
		if absorbTop {
			return Top[V](), nil
		}
		return other, nil
	case other.t == tagTop:
		if absorbTop {
			return Top[V](), nil
		}
		return s, nil
	default:
		v, err := op(s.v, other.v)
		if err != nil {
			return Scaffold[V]{}, err
		}
		return Wrap(v), nil
	}
}

// Join returns the least upper bound of s and other. Bottom is the
// identity; top is absorbing.
func (s Scaffold[V]) Join(other Scaffold[V]) (Scaffold[V], error) {
	return combine(s, other, false, true, func(a, b V) (V, error) { return a.Join(b) })
}

// Meet returns the greatest lower bound of s and other. Top is the
// identity; bottom is absorbing.
func (s Scaffold[V]) Meet(other Scaffold[V]) (Scaffold[V], error) {
	return combine(s, other, true, false, func(a, b V) (V, error) { return a.Meet(b) })
}

// Widening returns an over-approximation of Join guaranteed to converge
// in finitely many applications. Bottom is the identity; top is
// absorbing, matching Join's absorption laws.
func (s Scaffold[V]) Widening(other Scaffold[V]) (Scaffold[V], error) {
	return combine(s, other, false, true, func(a, b V) (V, error) { return a.Widen(b) })
}

// Narrowing returns an under-approximation of Meet that only ever
// refines a prior widened value. Top is the identity; bottom is
// absorbing, matching Meet's absorption laws.
func (s Scaffold[V]) Narrowing(other Scaffold[V]) (Scaffold[V], error) {
	return combine(s, other, true, false, func(a, b V) (V, error) { return a.Narrow(b) })
}
