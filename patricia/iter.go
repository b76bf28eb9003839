package patricia

import (
	"iter"

	"github.com/go-sparta/sparta/codec"
)

// All returns an iterator over bindings in ascending key order. Because
// the trie is immutable, iteration is never invalidated by a concurrent
// mutation: a mutation simply produces a different Tree value.
func (t Tree[U, V]) All() iter.Seq2[U, V] {
	return func(yield func(U, V) bool) {
		visitInOrder(t.root, func(k U, v V) bool {
			return yield(k, v)
		})
	}
}

// visitInOrder walks the trie in ascending key order. At every branch,
// the two children's prefixes agree on every bit above branchingBit and
// disagree only at branchingBit itself (left is 0 there, right is 1), so
// every key under left is less than every key under right; visiting left
// then right is therefore a correct in-order (ascending) traversal.
func visitInOrder[U codec.Unsigned, V any](n *node[U, V], f func(U, V) bool) bool {
	if n == nil {
		return true
	}
	if n.k == kindLeaf {
		return f(n.key, n.value)
	}
	if !visitInOrder(n.left, f) {
		return false
	}
	return visitInOrder(n.right, f)
}

// VisitAll calls visit for every binding in ascending key order, stopping
// early if visit returns false.
func (t Tree[U, V]) VisitAll(visit func(key U, value V) bool) {
	visitInOrder(t.root, visit)
}

// Filter returns the subtree of bindings for which predicate holds.
func (t Tree[U, V]) Filter(predicate func(key U, value V) bool) Tree[U, V] {
	return Tree[U, V]{root: filterNode(t.root, predicate)}
}

func filterNode[U codec.Unsigned, V any](n *node[U, V], predicate func(U, V) bool) *node[U, V] {
	if n == nil {
		return nil
	}
	if n.k == kindLeaf {
		if predicate(n.key, n.value) {
			return n
		}
		return nil
	}
	left := filterNode(n.left, predicate)
	right := filterNode(n.right, predicate)
	if left == n.left && right == n.right {
		return n
	}
	return joinChildren(n.prefix, n.branchingBit, left, right)
}

// EraseAllMatching removes every key for which matches returns true. It
// is the complement of Filter, kept as a separate operation because
// callers typically express erasure in terms of a bit mask over the key
// rather than a predicate over bindings (spec.md 4.B).
func (t Tree[U, V]) EraseAllMatching(matches func(key U) bool) Tree[U, V] {
	return t.Filter(func(k U, _ V) bool { return !matches(k) })
}
