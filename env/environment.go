// Package env provides the two compound maps every intraprocedural
// analysis is built from: Environment, a map from variables to abstract
// values defaulting absent bindings to top, and Partition, a map from
// labels to abstract values defaulting absent bindings to bottom
// (spec.md 4.F). Both compose absval.Value and, for the hash-backed
// variants, are themselves abstract values — an Environment of
// Environments type-checks and behaves correctly.
package env

import (
	"reflect"

	"github.com/go-sparta/sparta/absval"
)

// Environment maps Var to D, reading a missing binding back as top. It
// is grounded on HashedAbstractEnvironment.h's
// AbstractEnvironment<HashMap<Variable, Domain, TopValueInterface<Domain>>>:
// "in order to minimize the size of the hashtable, we do not explicitly
// represent bindings to Top." The whole environment collapses to bottom
// the moment any single binding is driven to bottom, mirroring an
// environment's role as a conjunction of per-variable facts: once one
// fact is unsatisfiable, the whole state is unreachable.
//
// The original's TopValueInterface<Domain> trait supplies Domain's top
// element via a static method; Go generics have no equivalent static
// dispatch on a type parameter, so every constructor here takes a
// sample top (and bottom, for reading back a Bottom environment) value
// explicitly instead.
type Environment[Var comparable, D absval.Value[D]] struct {
	isBottom bool
	top, bot D
	bindings map[Var]D
}

// NewEnvironment builds a non-bottom environment by Set-ing each of the
// given bindings in turn, so a binding already equal to top is dropped
// and a binding equal to bottom collapses the whole result to bottom.
func NewEnvironment[Var comparable, D absval.Value[D]](top, bottom D, bindings map[Var]D) Environment[Var, D] {
	e := Environment[Var, D]{top: top, bot: bottom, bindings: map[Var]D{}}
	for v, d := range bindings {
		e = e.Set(v, d)
	}
	return e
}

// BottomEnvironment returns the bottom environment.
func BottomEnvironment[Var comparable, D absval.Value[D]](top, bottom D) Environment[Var, D] {
	return Environment[Var, D]{isBottom: true, top: top, bot: bottom}
}

// TopEnvironment returns the top environment: no bindings, every
// variable reads back as top.
func TopEnvironment[Var comparable, D absval.Value[D]](top, bottom D) Environment[Var, D] {
	return Environment[Var, D]{top: top, bot: bottom, bindings: map[Var]D{}}
}

// Size returns the number of explicit (non-top) bindings.
func (e Environment[Var, D]) Size() int { return len(e.bindings) }

// Get returns v's binding, or top if v is unbound, or bottom if the
// whole environment is bottom.
func (e Environment[Var, D]) Get(v Var) D {
	if e.isBottom {
		return e.bot
	}
	if d, ok := e.bindings[v]; ok {
		return d
	}
	return e.top
}

// Set binds v to d: a bottom d collapses the whole environment, a top d
// erases the binding (since absent already reads back as top), anything
// else is stored.
func (e Environment[Var, D]) Set(v Var, d D) Environment[Var, D] {
	if e.isBottom {
		return e
	}
	if d.Kind() == absval.Bottom {
		return Environment[Var, D]{isBottom: true, top: e.top, bot: e.bot}
	}
	bindings := cloneBindings(e.bindings)
	if d.Kind() == absval.Top {
		delete(bindings, v)
	} else {
		bindings[v] = d
	}
	return Environment[Var, D]{top: e.top, bot: e.bot, bindings: bindings}
}

// Update applies f to a copy of v's current binding and stores the
// result via Set.
func (e Environment[Var, D]) Update(v Var, f func(D) (D, error)) (Environment[Var, D], error) {
	if e.isBottom {
		return e, nil
	}
	result, err := f(e.Get(v))
	if err != nil {
		var zero Environment[Var, D]
		return zero, err
	}
	return e.Set(v, result), nil
}

// The methods below satisfy absval.Value[Environment[Var, D]].

func (e Environment[Var, D]) IsTop() bool { return !e.isBottom && len(e.bindings) == 0 }

// IsBottom reports whether the whole environment has collapsed to bottom.
func (e Environment[Var, D]) IsBottom() bool { return e.isBottom }

func (e Environment[Var, D]) Kind() absval.Kind {
	switch {
	case e.isBottom:
		return absval.Bottom
	case len(e.bindings) == 0:
		return absval.Top
	default:
		return absval.ValueKind
	}
}

// Leq checks, for every binding in other, that e's corresponding binding
// (top if absent) is leq it. Labels absent from other need no check:
// other.Get of them is top, and anything is leq top.
func (e Environment[Var, D]) Leq(other Environment[Var, D]) bool {
	if e.isBottom {
		return true
	}
	if other.isBottom {
		return false
	}
	for v, od := range other.bindings {
		if !e.Get(v).Leq(od) {
			return false
		}
	}
	return true
}

func (e Environment[Var, D]) Equal(other Environment[Var, D]) bool {
	if e.isBottom != other.isBottom {
		return false
	}
	if e.isBottom {
		return true
	}
	if len(e.bindings) != len(other.bindings) {
		return false
	}
	for v, d := range e.bindings {
		od, ok := other.bindings[v]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}

// Join is pointwise join over the bindings present on both sides: a
// variable bound on only one side reads as top there, and join with top
// is top, i.e. absent, on the other — so only the intersection of bound
// variables can possibly survive.
func (e Environment[Var, D]) Join(other Environment[Var, D]) (Environment[Var, D], error) {
	if e.isBottom {
		return other, nil
	}
	if other.isBottom {
		return e, nil
	}
	if e.sameBindings(other) {
		return e, nil
	}
	bindings := make(map[Var]D, min(len(e.bindings), len(other.bindings)))
	for v, d := range e.bindings {
		od, ok := other.bindings[v]
		if !ok {
			continue
		}
		joined, err := d.Join(od)
		if err != nil {
			var zero Environment[Var, D]
			return zero, err
		}
		if joined.Kind() != absval.Top {
			bindings[v] = joined
		}
	}
	return Environment[Var, D]{top: e.top, bot: e.bot, bindings: bindings}, nil
}

// Meet is pointwise meet; a variable bound on only one side passes
// through unchanged (meet with the implicit top is the identity). If any
// pointwise meet yields bottom, the whole environment collapses.
func (e Environment[Var, D]) Meet(other Environment[Var, D]) (Environment[Var, D], error) {
	if e.isBottom {
		return e, nil
	}
	if other.isBottom {
		return other, nil
	}
	bindings := cloneBindings(e.bindings)
	for v, od := range other.bindings {
		if d, ok := bindings[v]; ok {
			m, err := d.Meet(od)
			if err != nil {
				var zero Environment[Var, D]
				return zero, err
			}
			if m.Kind() == absval.Bottom {
				return Environment[Var, D]{isBottom: true, top: e.top, bot: e.bot}, nil
			}
			bindings[v] = m
		} else {
			bindings[v] = od
		}
	}
	return Environment[Var, D]{top: e.top, bot: e.bot, bindings: bindings}, nil
}

// Widen has Join's shape with each pointwise combination computed via
// Widen instead, so the widening chain on the per-variable domain still
// drives termination when an Environment is itself nested as a D.
func (e Environment[Var, D]) Widen(other Environment[Var, D]) (Environment[Var, D], error) {
	if e.isBottom {
		return other, nil
	}
	if other.isBottom {
		return e, nil
	}
	bindings := make(map[Var]D, min(len(e.bindings), len(other.bindings)))
	for v, d := range e.bindings {
		od, ok := other.bindings[v]
		if !ok {
			continue
		}
		widened, err := d.Widen(od)
		if err != nil {
			var zero Environment[Var, D]
			return zero, err
		}
		if widened.Kind() != absval.Top {
			bindings[v] = widened
		}
	}
	return Environment[Var, D]{top: e.top, bot: e.bot, bindings: bindings}, nil
}

// Narrow mirrors Meet, using Narrow on the per-variable domain.
func (e Environment[Var, D]) Narrow(other Environment[Var, D]) (Environment[Var, D], error) {
	if e.isBottom {
		return e, nil
	}
	if other.isBottom {
		return other, nil
	}
	bindings := cloneBindings(e.bindings)
	for v, od := range other.bindings {
		if d, ok := bindings[v]; ok {
			n, err := d.Narrow(od)
			if err != nil {
				var zero Environment[Var, D]
				return zero, err
			}
			if n.Kind() == absval.Bottom {
				return Environment[Var, D]{isBottom: true, top: e.top, bot: e.bot}, nil
			}
			bindings[v] = n
		} else {
			bindings[v] = od
		}
	}
	return Environment[Var, D]{top: e.top, bot: e.bot, bindings: bindings}, nil
}

// sameBindings reports whether e and other share the identical backing
// map, the hash-map analogue of the trie's ReferenceEqual fast path
// (spec.md 4.F: "no-op if reference_equals").
func (e Environment[Var, D]) sameBindings(other Environment[Var, D]) bool {
	return e.bindings != nil && reflect.ValueOf(e.bindings).Pointer() == reflect.ValueOf(other.bindings).Pointer()
}

func cloneBindings[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
