// Package sets provides the set implementations spec.md 4.E lists —
// trie-backed, hash-backed, a capped small-sorted-vector, and a
// bounded-universe sparse set — plus the generic PowersetDomain lift
// that turns any of them into a full join/meet/widening abstract
// domain by designating the empty set as bottom.
package sets

import (
	"github.com/go-sparta/sparta/absval"
	"github.com/go-sparta/sparta/domain"
)

// PowersetDomain lifts a set implementation S into an abstract domain:
// bottom is the empty set, join is union, meet is intersection, and
// widening is join — the set lattice only has finite height when S's
// element universe does, so callers choosing SmallSortedSet or
// SparseSet (both of which collapse to top past a bound) get
// termination for free, while TrieSet/HashSet-backed domains rely on
// the caller to bound iteration some other way (spec.md 4.E).
type PowersetDomain[S absval.Value[S]] = domain.Scaffold[S]

// EmptyPowerset returns the bottom element: the empty set.
func EmptyPowerset[S absval.Value[S]]() PowersetDomain[S] {
	return domain.Bottom[S]()
}

// TopPowerset returns the top element (universe of all possible sets).
// Not every S can organically reach this state through Join/Meet alone
// — TrieSet and HashSet never do, since union/intersection of finite
// sets is always finite — but callers may still start or force a
// computation at top.
func TopPowerset[S absval.Value[S]]() PowersetDomain[S] {
	return domain.Top[S]()
}

// WrapPowerset lifts a concrete set value into the domain, normalizing
// immediately in case s already reports itself as bottom or top (e.g. a
// SmallSortedSet that has collapsed past its cap).
func WrapPowerset[S absval.Value[S]](s S) PowersetDomain[S] {
	return domain.Wrap[S](s)
}
