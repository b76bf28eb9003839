package env

import (
	"github.com/go-sparta/sparta/absval"
	"github.com/go-sparta/sparta/codec"
	"github.com/go-sparta/sparta/patricia"
)

// TrieEnvironment is Environment's trie-backed twin, grounded on
// PatriciaTreeMapAbstractEnvironment.h: "an abstract environment based
// on Patricia trees that is cheap to copy." It is the right choice when
// Var is naturally an unsigned integer (a register number, a variable
// index assigned during SSA construction) and cheap structural sharing
// across many successive environments in a fixpoint computation matters
// more than hashing cost.
type TrieEnvironment[U codec.Unsigned, D absval.Value[D]] struct {
	isBottom bool
	top, bot D
	bindings patricia.Tree[U, D]
}

// NewTrieEnvironment builds a non-bottom trie environment from bindings.
func NewTrieEnvironment[U codec.Unsigned, D absval.Value[D]](top, bottom D, bindings map[U]D) TrieEnvironment[U, D] {
	e := TrieEnvironment[U, D]{top: top, bot: bottom}
	for k, d := range bindings {
		e = e.Set(k, d)
	}
	return e
}

// BottomTrieEnvironment returns the bottom trie environment.
func BottomTrieEnvironment[U codec.Unsigned, D absval.Value[D]](top, bottom D) TrieEnvironment[U, D] {
	return TrieEnvironment[U, D]{isBottom: true, top: top, bot: bottom}
}

// TopTrieEnvironment returns the top trie environment.
func TopTrieEnvironment[U codec.Unsigned, D absval.Value[D]](top, bottom D) TrieEnvironment[U, D] {
	return TrieEnvironment[U, D]{top: top, bot: bottom}
}

func (e TrieEnvironment[U, D]) Size() int { return e.bindings.Len() }

func (e TrieEnvironment[U, D]) Get(k U) D {
	if e.isBottom {
		return e.bot
	}
	if d, ok := e.bindings.Lookup(k); ok {
		return d
	}
	return e.top
}

func (e TrieEnvironment[U, D]) Set(k U, d D) TrieEnvironment[U, D] {
	if e.isBottom {
		return e
	}
	if d.Kind() == absval.Bottom {
		return TrieEnvironment[U, D]{isBottom: true, top: e.top, bot: e.bot}
	}
	if d.Kind() == absval.Top {
		return TrieEnvironment[U, D]{top: e.top, bot: e.bot, bindings: e.bindings.Remove(k)}
	}
	return TrieEnvironment[U, D]{top: e.top, bot: e.bot, bindings: e.bindings.Upsert(k, d)}
}

func (e TrieEnvironment[U, D]) Update(k U, f func(D) (D, error)) (TrieEnvironment[U, D], error) {
	if e.isBottom {
		return e, nil
	}
	result, err := f(e.Get(k))
	if err != nil {
		var zero TrieEnvironment[U, D]
		return zero, err
	}
	return e.Set(k, result), nil
}

// The methods below satisfy absval.Value[TrieEnvironment[U, D]].

func (e TrieEnvironment[U, D]) IsTop() bool { return !e.isBottom && e.bindings.Len() == 0 }

// IsBottom reports whether the whole environment has collapsed to bottom.
func (e TrieEnvironment[U, D]) IsBottom() bool { return e.isBottom }

func (e TrieEnvironment[U, D]) Kind() absval.Kind {
	switch {
	case e.isBottom:
		return absval.Bottom
	case e.bindings.Len() == 0:
		return absval.Top
	default:
		return absval.ValueKind
	}
}

func (e TrieEnvironment[U, D]) Leq(other TrieEnvironment[U, D]) bool {
	if e.isBottom {
		return true
	}
	if other.isBottom {
		return false
	}
	ok := true
	other.bindings.VisitAll(func(k U, od D) bool {
		if !e.Get(k).Leq(od) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func (e TrieEnvironment[U, D]) Equal(other TrieEnvironment[U, D]) bool {
	if e.isBottom != other.isBottom {
		return false
	}
	if e.isBottom {
		return true
	}
	return e.bindings.Equal(other.bindings, func(a, b D) bool { return a.Equal(b) })
}

// Join reuses the trie's Intersect walk: a key bound on only one side
// reads as top on the other, and join-with-top is top i.e. absent, so
// only keys bound on both sides can possibly survive.
func (e TrieEnvironment[U, D]) Join(other TrieEnvironment[U, D]) (TrieEnvironment[U, D], error) {
	if e.isBottom {
		return other, nil
	}
	if other.isBottom {
		return e, nil
	}
	if e.bindings.ReferenceEqual(other.bindings) {
		return e, nil
	}
	var combineErr error
	merged := e.bindings.Intersect(other.bindings, func(_ U, a, b D) (D, bool) {
		joined, err := a.Join(b)
		if err != nil {
			combineErr = err
			return a, false
		}
		return joined, joined.Kind() != absval.Top
	})
	if combineErr != nil {
		var zero TrieEnvironment[U, D]
		return zero, combineErr
	}
	return TrieEnvironment[U, D]{top: e.top, bot: e.bot, bindings: merged}, nil
}

// Meet reuses the trie's Merge walk, keeping a key bound on only one
// side unchanged (meet-with-the-implicit-top is the identity). If any
// pointwise meet yields bottom, the whole environment collapses —
// merged is computed regardless and simply discarded in that case.
func (e TrieEnvironment[U, D]) Meet(other TrieEnvironment[U, D]) (TrieEnvironment[U, D], error) {
	if e.isBottom {
		return e, nil
	}
	if other.isBottom {
		return other, nil
	}
	becameBottom := false
	var combineErr error
	merged := e.bindings.Merge(other.bindings, func(_ U, a, b D) (D, bool) {
		m, err := a.Meet(b)
		if err != nil {
			combineErr = err
			return a, true
		}
		if m.Kind() == absval.Bottom {
			becameBottom = true
		}
		return m, true
	})
	if combineErr != nil {
		var zero TrieEnvironment[U, D]
		return zero, combineErr
	}
	if becameBottom {
		return TrieEnvironment[U, D]{isBottom: true, top: e.top, bot: e.bot}, nil
	}
	return TrieEnvironment[U, D]{top: e.top, bot: e.bot, bindings: merged}, nil
}

func (e TrieEnvironment[U, D]) Widen(other TrieEnvironment[U, D]) (TrieEnvironment[U, D], error) {
	if e.isBottom {
		return other, nil
	}
	if other.isBottom {
		return e, nil
	}
	var combineErr error
	merged := e.bindings.Intersect(other.bindings, func(_ U, a, b D) (D, bool) {
		widened, err := a.Widen(b)
		if err != nil {
			combineErr = err
			return a, false
		}
		return widened, widened.Kind() != absval.Top
	})
	if combineErr != nil {
		var zero TrieEnvironment[U, D]
		return zero, combineErr
	}
	return TrieEnvironment[U, D]{top: e.top, bot: e.bot, bindings: merged}, nil
}

func (e TrieEnvironment[U, D]) Narrow(other TrieEnvironment[U, D]) (TrieEnvironment[U, D], error) {
	if e.isBottom {
		return e, nil
	}
	if other.isBottom {
		return other, nil
	}
	becameBottom := false
	var combineErr error
	merged := e.bindings.Merge(other.bindings, func(_ U, a, b D) (D, bool) {
		n, err := a.Narrow(b)
		if err != nil {
			combineErr = err
			return a, true
		}
		if n.Kind() == absval.Bottom {
			becameBottom = true
		}
		return n, true
	})
	if combineErr != nil {
		var zero TrieEnvironment[U, D]
		return zero, combineErr
	}
	if becameBottom {
		return TrieEnvironment[U, D]{isBottom: true, top: e.top, bot: e.bot}, nil
	}
	return TrieEnvironment[U, D]{top: e.top, bot: e.bot, bindings: merged}, nil
}
