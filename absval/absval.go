// Package absval defines the interfaces every concrete abstract value in
// this module implements, plus a small enum naming the two default-value
// conventions by which a map-based compound domain (env.Environment,
// env.Partition) treats an unbound key as implicit top or implicit bottom
// without storing it.
package absval

// Kind classifies where a value sits on its three-point lattice
// projection: every abstract value is either the bottom element, the top
// element, or a genuine value strictly between them.
type Kind int

const (
	Bottom Kind = iota
	ValueKind
	Top
)

func (k Kind) String() string {
	switch k {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case ValueKind:
		return "value"
	default:
		return "unknown"
	}
}

// Value is implemented by every concrete abstract value. D is the
// concrete type itself, used as its own type parameter so methods can
// take and return other values of the exact same concrete type (the
// usual Go substitute for C++ CRTP).
//
// The original sparta library mutates the receiver in place
// (join_with/meet_with/widen_with/narrow_with) and relies on C++ copy
// construction to keep that safe for callers. Every value in this
// module is instead a plain, persistent value (matching the immutable
// style patricia.Tree and patricia.Set already establish), so the
// combinators return a new D rather than mutating the receiver: it
// sidesteps needing a Clone/copy-constructor concept in Go entirely,
// and domain.Scaffold can freely hand out the D it stores without
// defensive copying. A value-level clear()/reset-to-bottom is dropped
// for the same reason: domain.Scaffold tracks the bottom/top tag
// externally and simply never stores a V while in either state.
type Value[D any] interface {
	// IsTop reports whether the receiver is the top element.
	IsTop() bool
	// Leq reports whether the receiver is less than or equal to other
	// in the lattice order.
	Leq(other D) bool
	// Equal reports structural equality, not merely Leq in both
	// directions (concrete values may have cheaper equality checks).
	Equal(other D) bool
	// Kind reports whether the receiver is bottom, top, or a genuine
	// value strictly between them.
	Kind() Kind
	// Join returns the least upper bound of the receiver and other.
	Join(other D) (D, error)
	// Meet returns the greatest lower bound of the receiver and other.
	Meet(other D) (D, error)
	// Widen returns an over-approximation of Join guaranteed to reach a
	// fixed point in finitely many applications, even over a lattice of
	// infinite height.
	Widen(other D) (D, error)
	// Narrow returns an under-approximation of Meet, refining a widened
	// value without risking unsoundness.
	Narrow(other D) (D, error)
}

// DefaultPolicy names the two ways a compound, map-based domain can treat
// a key that has no explicit binding: DefaultIsTop (an unbound variable
// stands for "no information yet, could be anything", the convention
// env.Environment follows) and DefaultIsBottom (an unbound label stands
// for "unreachable so far", the convention env.Partition follows) —
// spec.md 4.F. Neither env type takes a DefaultPolicy value; each
// hard-codes its own convention.
type DefaultPolicy int

const (
	DefaultIsTop DefaultPolicy = iota
	DefaultIsBottom
)
