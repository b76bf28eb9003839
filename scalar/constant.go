package scalar

import "github.com/go-sparta/sparta/absval"

// Constant is the four-point "is this variable always the same T"
// lattice: bottom, top, or a single constant value in between. Two
// distinct constants are incomparable; joining them or meeting them
// immediately produces top or bottom, with no partial order among the
// values themselves (spec.md 4.G). T only needs to be comparable — unlike
// the other scalar domains it wraps a bare value rather than another
// absval.Value, since there is nothing beneath it to compose.
type Constant[T comparable] struct {
	kind absval.Kind
	val  T
}

// ConstantBottom returns the bottom constant.
func ConstantBottom[T comparable]() Constant[T] {
	return Constant[T]{kind: absval.Bottom}
}

// ConstantTop returns the top constant.
func ConstantTop[T comparable]() Constant[T] {
	return Constant[T]{kind: absval.Top}
}

// ConstantOf wraps a single value.
func ConstantOf[T comparable](v T) Constant[T] {
	return Constant[T]{kind: absval.ValueKind, val: v}
}

// Value returns c's wrapped value, or ok=false if c is bottom or top.
func (c Constant[T]) Value() (v T, ok bool) {
	if c.kind != absval.ValueKind {
		return v, false
	}
	return c.val, true
}

func (c Constant[T]) IsTop() bool       { return c.kind == absval.Top }
func (c Constant[T]) Kind() absval.Kind { return c.kind }

func (c Constant[T]) Leq(other Constant[T]) bool {
	switch {
	case c.kind == absval.Bottom:
		return true
	case other.kind == absval.Bottom:
		return false
	case other.kind == absval.Top:
		return true
	case c.kind == absval.Top:
		return false
	default:
		return c.val == other.val
	}
}

func (c Constant[T]) Equal(other Constant[T]) bool {
	if c.kind != other.kind {
		return false
	}
	return c.kind != absval.ValueKind || c.val == other.val
}

func (c Constant[T]) Join(other Constant[T]) (Constant[T], error) {
	switch {
	case c.kind == absval.Bottom:
		return other, nil
	case other.kind == absval.Bottom:
		return c, nil
	case c.kind == absval.Top || other.kind == absval.Top:
		return ConstantTop[T](), nil
	case c.val == other.val:
		return c, nil
	default:
		return ConstantTop[T](), nil
	}
}

func (c Constant[T]) Meet(other Constant[T]) (Constant[T], error) {
	switch {
	case c.kind == absval.Top:
		return other, nil
	case other.kind == absval.Top:
		return c, nil
	case c.kind == absval.Bottom || other.kind == absval.Bottom:
		return ConstantBottom[T](), nil
	case c.val == other.val:
		return c, nil
	default:
		return ConstantBottom[T](), nil
	}
}

// Widen and Narrow have no approximation to perform: the lattice has
// finite height 3, so join and meet themselves already terminate.
func (c Constant[T]) Widen(other Constant[T]) (Constant[T], error)  { return c.Join(other) }
func (c Constant[T]) Narrow(other Constant[T]) (Constant[T], error) { return c.Meet(other) }
