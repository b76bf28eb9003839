package patricia

import "github.com/go-sparta/sparta/codec"

// mergePolicy configures the single structural two-trie walk shared by
// Merge, Intersect and Diff (spec.md 4.B: "intersect and diff share the
// same structural walk with a different per-leaf function and a
// different one-side-missing policy").
type mergePolicy[U codec.Unsigned, V any] struct {
	// both decides the outcome when the same key is bound on both sides.
	both func(key U, a, b V) (V, bool)
	// keepLeftOnly/keepRightOnly decide whether a whole subtree bound
	// only on one side survives unchanged or is dropped.
	keepLeftOnly, keepRightOnly bool
}

func keepOrDrop[U codec.Unsigned, V any](n *node[U, V], keep bool) *node[U, V] {
	if keep {
		return n
	}
	return nil
}

func joinTrees[U codec.Unsigned, V any](prefix0 U, t0 *node[U, V], prefix1 U, t1 *node[U, V]) *node[U, V] {
	if t0 == nil {
		return t1
	}
	if t1 == nil {
		return t0
	}
	return join(prefix0, t0, prefix1, t1)
}

func joinChildren[U codec.Unsigned, V any](prefix, branchingBit U, left, right *node[U, V]) *node[U, V] {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return newBranch(prefix, branchingBit, left, right)
}

// merge2 is the shared structural walk. Reaching the same node on both
// sides short-circuits to that node (the "identity merge" of spec.md
// 4.B), which assumes both is reflexive on equal inputs — true of every
// join/meet used by the domains built on this trie.
func merge2[U codec.Unsigned, V any](a, b *node[U, V], p mergePolicy[U, V]) *node[U, V] {
	if a == b {
		return a
	}
	if a == nil {
		return keepOrDrop(b, p.keepRightOnly)
	}
	if b == nil {
		return keepOrDrop(a, p.keepLeftOnly)
	}
	if a.k == kindLeaf {
		return mergeLeafWithNode(a.key, a.value, true, b, p)
	}
	if b.k == kindLeaf {
		return mergeLeafWithNode(b.key, b.value, false, a, p)
	}
	switch {
	case a.branchingBit == b.branchingBit && a.prefix == b.prefix:
		left := merge2(a.left, b.left, p)
		right := merge2(a.right, b.right, p)
		return joinChildren(a.prefix, a.branchingBit, left, right)
	case a.branchingBit > b.branchingBit && matchPrefix(b.prefix, a.prefix, a.branchingBit):
		// b is deeper: b sits entirely under one of a's children.
		if isZeroBit(b.prefix, a.branchingBit) {
			left := merge2(a.left, b, p)
			right := keepOrDrop(a.right, p.keepLeftOnly)
			return joinChildren(a.prefix, a.branchingBit, left, right)
		}
		left := keepOrDrop(a.left, p.keepLeftOnly)
		right := merge2(a.right, b, p)
		return joinChildren(a.prefix, a.branchingBit, left, right)
	case a.branchingBit < b.branchingBit && matchPrefix(a.prefix, b.prefix, b.branchingBit):
		// a is deeper: a sits entirely under one of b's children.
		if isZeroBit(a.prefix, b.branchingBit) {
			left := merge2(a, b.left, p)
			right := keepOrDrop(b.right, p.keepRightOnly)
			return joinChildren(b.prefix, b.branchingBit, left, right)
		}
		left := keepOrDrop(b.left, p.keepRightOnly)
		right := merge2(a, b.right, p)
		return joinChildren(b.prefix, b.branchingBit, left, right)
	default:
		// Prefixes diverge: neither side nests inside the other.
		left := keepOrDrop(a, p.keepLeftOnly)
		right := keepOrDrop(b, p.keepRightOnly)
		return joinTrees(a.prefix, left, b.prefix, right)
	}
}

// mergeLeafWithNode merges a single leaf (key, val), known to originate
// from the left trie when fromLeft is true, against an arbitrary subtree
// of the other trie.
func mergeLeafWithNode[U codec.Unsigned, V any](key U, val V, fromLeft bool, other *node[U, V], p mergePolicy[U, V]) *node[U, V] {
	if other == nil {
		if fromLeft {
			return keepOrDrop(newLeaf(key, val), p.keepLeftOnly)
		}
		return keepOrDrop(newLeaf(key, val), p.keepRightOnly)
	}
	if other.k == kindLeaf {
		if other.key == key {
			var v V
			var keep bool
			if fromLeft {
				v, keep = p.both(key, val, other.value)
			} else {
				v, keep = p.both(key, other.value, val)
			}
			if !keep {
				return nil
			}
			return newLeaf(key, v)
		}
		leafNode := newLeaf(key, val)
		if fromLeft {
			return joinTrees(key, keepOrDrop(leafNode, p.keepLeftOnly), other.key, keepOrDrop(other, p.keepRightOnly))
		}
		return joinTrees(other.key, keepOrDrop(other, p.keepLeftOnly), key, keepOrDrop(leafNode, p.keepRightOnly))
	}
	if !matchPrefix(key, other.prefix, other.branchingBit) {
		leafNode := newLeaf(key, val)
		if fromLeft {
			return joinTrees(key, keepOrDrop(leafNode, p.keepLeftOnly), other.prefix, keepOrDrop(other, p.keepRightOnly))
		}
		return joinTrees(other.prefix, keepOrDrop(other, p.keepLeftOnly), key, keepOrDrop(leafNode, p.keepRightOnly))
	}
	goLeft := isZeroBit(key, other.branchingBit)
	var matchChild, keptChild *node[U, V]
	if goLeft {
		matchChild, keptChild = other.left, other.right
	} else {
		matchChild, keptChild = other.right, other.left
	}
	merged := mergeLeafWithNode(key, val, fromLeft, matchChild, p)
	if fromLeft {
		keptChild = keepOrDrop(keptChild, p.keepRightOnly)
	} else {
		keptChild = keepOrDrop(keptChild, p.keepLeftOnly)
	}
	if goLeft {
		return joinChildren(other.prefix, other.branchingBit, merged, keptChild)
	}
	return joinChildren(other.prefix, other.branchingBit, keptChild, merged)
}

// Merge is a general union: keys bound on only one side pass through
// unchanged; keys bound on both sides are resolved by combine, which may
// also drop the binding (keep=false) even though both sides had a value.
func (t Tree[U, V]) Merge(other Tree[U, V], combine func(key U, a, b V) (V, bool)) Tree[U, V] {
	return Tree[U, V]{root: merge2(t.root, other.root, mergePolicy[U, V]{
		both:          combine,
		keepLeftOnly:  true,
		keepRightOnly: true,
	})}
}

// Intersect keeps only keys bound on both sides, combined via combine.
func (t Tree[U, V]) Intersect(other Tree[U, V], combine func(key U, a, b V) (V, bool)) Tree[U, V] {
	return Tree[U, V]{root: merge2(t.root, other.root, mergePolicy[U, V]{
		both:          combine,
		keepLeftOnly:  false,
		keepRightOnly: false,
	})}
}

// Diff keeps keys bound only in t unchanged, drops keys bound only in
// other, and resolves keys bound in both via combine.
func (t Tree[U, V]) Diff(other Tree[U, V], combine func(key U, a, b V) (V, bool)) Tree[U, V] {
	return Tree[U, V]{root: merge2(t.root, other.root, mergePolicy[U, V]{
		both:          combine,
		keepLeftOnly:  true,
		keepRightOnly: false,
	})}
}
