package patricia

import (
	"reflect"

	"github.com/go-sparta/sparta/codec"
)

// Tree is a persistent, immutable map from U to V. The zero value is the
// empty trie. Every mutating method returns a new Tree; subtrees untouched
// by the operation are shared by reference with the receiver, per
// invariant 5.
type Tree[U codec.Unsigned, V any] struct {
	root *node[U, V]
}

// Len returns the number of bindings, O(1) thanks to the cached size.
func (t Tree[U, V]) Len() int {
	return t.root.sizeOrZero()
}

// Lookup returns the value bound to key, if any.
func (t Tree[U, V]) Lookup(key U) (V, bool) {
	n := t.root
	for n != nil {
		if n.k == kindLeaf {
			if n.key == key {
				return n.value, true
			}
			var zero V
			return zero, false
		}
		if isZeroBit(key, n.branchingBit) {
			n = n.left
		} else {
			n = n.right
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether key is bound.
func (t Tree[U, V]) Contains(key U) bool {
	_, ok := t.Lookup(key)
	return ok
}

// Upsert binds key to value, inserting or overwriting as needed.
func (t Tree[U, V]) Upsert(key U, value V) Tree[U, V] {
	return Tree[U, V]{root: insert(t.root, key, value)}
}

// Insert is an alias of Upsert, matching spec.md's "insert(k,v) /
// upsert(k,v)" naming.
func (t Tree[U, V]) Insert(key U, value V) Tree[U, V] {
	return t.Upsert(key, value)
}

func insert[U codec.Unsigned, V any](n *node[U, V], key U, value V) *node[U, V] {
	if n == nil {
		return newLeaf(key, value)
	}
	if n.k == kindLeaf {
		if n.key == key {
			// Re-binding a key to an equal (comparable) value keeps the
			// existing leaf, so a no-op upsert leaves the root
			// reference-equal.
			old, nv := reflect.ValueOf(&n.value).Elem(), reflect.ValueOf(&value).Elem()
			if old.Comparable() && old.Equal(nv) {
				return n
			}
			return newLeaf(key, value)
		}
		return join[U, V](key, newLeaf(key, value), n.key, n)
	}
	if !matchPrefix(key, n.prefix, n.branchingBit) {
		return join[U, V](key, newLeaf(key, value), n.prefix, n)
	}
	if isZeroBit(key, n.branchingBit) {
		left := insert(n.left, key, value)
		if left == n.left {
			return n
		}
		return newBranch(n.prefix, n.branchingBit, left, n.right)
	}
	right := insert(n.right, key, value)
	if right == n.right {
		return n
	}
	return newBranch(n.prefix, n.branchingBit, n.left, right)
}

// Update applies f to (the current value of key, or V's zero value plus
// ok=false) and stores the result: a Lookup followed by an Upsert.
func (t Tree[U, V]) Update(key U, f func(value V, ok bool) V) Tree[U, V] {
	cur, ok := t.Lookup(key)
	return t.Upsert(key, f(cur, ok))
}

// Remove unbinds key, if bound. No-op (returns the receiver's own root,
// so ReferenceEqual holds) if key was not bound.
func (t Tree[U, V]) Remove(key U) Tree[U, V] {
	newRoot, _ := remove(t.root, key)
	return Tree[U, V]{root: newRoot}
}

func remove[U codec.Unsigned, V any](n *node[U, V], key U) (_ *node[U, V], removed bool) {
	if n == nil {
		return nil, false
	}
	if n.k == kindLeaf {
		if n.key == key {
			return nil, true
		}
		return n, false
	}
	if !matchPrefix(key, n.prefix, n.branchingBit) {
		return n, false
	}
	if isZeroBit(key, n.branchingBit) {
		newLeft, removed := remove(n.left, key)
		if !removed {
			return n, false
		}
		if newLeft == nil {
			return n.right, true
		}
		return newBranch(n.prefix, n.branchingBit, newLeft, n.right), true
	}
	newRight, removed := remove(n.right, key)
	if !removed {
		return n, false
	}
	if newRight == nil {
		return n.left, true
	}
	return newBranch(n.prefix, n.branchingBit, n.left, newRight), true
}

// Singleton returns the sole binding of a one-element trie.
func (t Tree[U, V]) Singleton() (key U, value V, ok bool) {
	if t.root == nil || t.root.k != kindLeaf {
		return key, value, false
	}
	return t.root.key, t.root.value, true
}

// ReferenceEqual reports whether t and other share the identical root
// node. It returns true only when the trie has demonstrably not changed
// and is strictly stronger than Equal — the fast path fixed-point
// iteration uses to detect convergence.
func (t Tree[U, V]) ReferenceEqual(other Tree[U, V]) bool {
	return t.root == other.root
}

// Equal reports whether t and other bind the same keys to equal values,
// per valueEqual.
func (t Tree[U, V]) Equal(other Tree[U, V], valueEqual func(a, b V) bool) bool {
	if t.ReferenceEqual(other) {
		return true
	}
	if t.Len() != other.Len() {
		return false
	}
	return equalNodes(t.root, other.root, valueEqual)
}

func equalNodes[U codec.Unsigned, V any](a, b *node[U, V], valueEqual func(a, b V) bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.k != b.k {
		return false
	}
	if a.k == kindLeaf {
		return a.key == b.key && valueEqual(a.value, b.value)
	}
	if a.branchingBit != b.branchingBit || a.prefix != b.prefix {
		return false
	}
	return equalNodes(a.left, b.left, valueEqual) && equalNodes(a.right, b.right, valueEqual)
}

// Hash returns a structural hash over the set of bound keys, cached at
// every branch node so computing it is O(1). Values do not contribute to
// the hash: this matches the Set specialization exactly (V is empty
// there) and means Hash is appropriate for detecting "no-op" fixed-point
// iterations on key sets, but two maps differing only in bound values
// hash equal — use Equal for value-sensitive comparison.
func (t Tree[U, V]) Hash() uint64 {
	return t.root.hashOrZero()
}

// IsSubsetOf reports whether every key bound in t is also bound in other,
// short-circuiting on reference equality of shared subtries.
func (t Tree[U, V]) IsSubsetOf(other Tree[U, V]) bool {
	return isSubsetOf(t.root, other.root)
}

func isSubsetOf[U codec.Unsigned, V any](a, b *node[U, V]) bool {
	if a == b {
		return true
	}
	if a == nil {
		return true
	}
	if b == nil {
		return false
	}
	if a.k == kindLeaf {
		return containsKey(b, a.key)
	}
	if b.k == kindLeaf {
		// a is a branch, so it binds at least 2 keys (invariant 4); b
		// binds exactly 1. a cannot be a subset of b.
		return false
	}
	switch {
	case a.branchingBit == b.branchingBit && a.prefix == b.prefix:
		return isSubsetOf(a.left, b.left) && isSubsetOf(a.right, b.right)
	case a.branchingBit < b.branchingBit:
		// a is deeper (narrower) than b: a may sit entirely under one of
		// b's children.
		if !matchPrefix(a.prefix, b.prefix, b.branchingBit) {
			return false
		}
		if isZeroBit(a.prefix, b.branchingBit) {
			return isSubsetOf(a, b.left)
		}
		return isSubsetOf(a, b.right)
	default:
		// a is shallower than (or diverges from) b: a spans keys that
		// disagree on a bit b's entire subtree has already fixed.
		return false
	}
}

func containsKey[U codec.Unsigned, V any](n *node[U, V], key U) bool {
	for n != nil {
		if n.k == kindLeaf {
			return n.key == key
		}
		if isZeroBit(key, n.branchingBit) {
			n = n.left
		} else {
			n = n.right
		}
	}
	return false
}
