// Package patricia implements a persistent, structurally-shared Patricia
// trie over unsigned-integer keys — the backbone every compound domain in
// this module is built on.
//
// The design follows C. Okasaki and A. Gill, "Fast Mergeable Integer Maps"
// (ML Workshop, 1998), as does the original sparta::PatriciaTreeSet this
// module re-implements: branch nodes are never reconstructed during an
// operation that doesn't touch them, so two tries that share structure
// keep sharing it after the operation.
package patricia

import "github.com/go-sparta/sparta/codec"

type kind uint8

const (
	kindLeaf kind = iota
	kindBranch
)

// node is either a leaf or a branch. A nil *node represents the empty
// trie; there is no separate empty node allocated, matching invariant 4
// (no unary branches — an empty child would be exactly that).
type node[U codec.Unsigned, V any] struct {
	k kind

	// leaf fields
	key   U
	value V

	// branch fields
	prefix       U
	branchingBit U
	left, right  *node[U, V]

	// cached, maintained by every constructor below (invariant 6)
	hash uint64
	size int
}

func isZeroBit[U codec.Unsigned](k, m U) bool {
	return k&m == 0
}

// highestSetBit isolates the most significant set bit of x via the
// standard bit-smear trick. The extra shifts beyond U's width are no-ops
// (shifting a narrower unsigned type past its width yields 0 in Go), so
// this works unmodified for any of codec.Unsigned's instantiations.
func highestSetBit[U codec.Unsigned](x U) U {
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x - (x >> 1)
}

func branchingBitOf[U codec.Unsigned](prefix0, prefix1 U) U {
	return highestSetBit(prefix0 ^ prefix1)
}

func maskAbove[U codec.Unsigned](k, m U) U {
	// Keeps the bits of k strictly above m's single set bit: the prefix
	// shared by every key under a branch whose branching bit is m.
	// Branching bits strictly decrease going down the tree (the root
	// branches on the single highest bit at which any two of its keys
	// differ, each child then resolves the next-highest difference among
	// its own members), so every key in a subtree agrees with that
	// subtree's prefix on all bits above its branching bit — and that is
	// exactly what makes left (0 at branchingBit) uniformly less than
	// right (1 at branchingBit) for unsigned comparison, which is what
	// gives ascending-order iteration by a plain left-then-right walk.
	return k &^ (m | (m - 1))
}

func matchPrefix[U codec.Unsigned](k, prefix, branchingBit U) bool {
	return maskAbove(k, branchingBit) == prefix
}

func newLeaf[U codec.Unsigned, V any](key U, value V) *node[U, V] {
	return &node[U, V]{
		k:     kindLeaf,
		key:   key,
		value: value,
		hash:  hashLeaf(key),
		size:  1,
	}
}

// hashLeaf hashes the key only: values are not required to be hashable,
// and for the Set specialization (V = struct{}) the key is the entire
// payload, so a structural hash over keys alone is enough to satisfy the
// "hash determinism" law (spec.md 8): equal tries hash equal.
func hashLeaf[U codec.Unsigned](key U) uint64 {
	h := uint64(key)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}

func combineHash(a, b uint64) uint64 {
	// Order-dependent (combineHash(a, b) != combineHash(b, a) in
	// general). That is safe because left/right assignment is
	// determined solely by branchingBit, not insertion order, so two
	// tries over the same keys have the same shape and the same hash.
	return a ^ (b + 0x9e3779b97f4a7c15 + (a << 6) + (a >> 2))
}

// newBranch rebuilds a branch from (possibly new) children, recomputing
// the cached hash and size. It always allocates; insert, remove and
// filterNode return the existing branch instead of calling it when both
// children are unchanged, while the merge walk (merge2, via
// joinChildren) rebuilds the branch regardless.
func newBranch[U codec.Unsigned, V any](prefix, branchingBit U, left, right *node[U, V]) *node[U, V] {
	return &node[U, V]{
		k:            kindBranch,
		prefix:       prefix,
		branchingBit: branchingBit,
		left:         left,
		right:        right,
		hash:         combineHash(left.hashOrZero(), right.hashOrZero()),
		size:         left.sizeOrZero() + right.sizeOrZero(),
	}
}

func (n *node[U, V]) hashOrZero() uint64 {
	if n == nil {
		return 0
	}
	return n.hash
}

func (n *node[U, V]) sizeOrZero() int {
	if n == nil {
		return 0
	}
	return n.size
}

// join combines two non-empty, non-identical subtrees t0 (with known
// shared prefix prefix0) and t1 (prefix1) into a new branch, computing the
// branching bit between them and placing each subtree on the side its
// prefix bit selects. This is the single branch-constructor used by every
// mutating operation; it preserves invariants 1-4 by construction.
func join[U codec.Unsigned, V any](prefix0 U, t0 *node[U, V], prefix1 U, t1 *node[U, V]) *node[U, V] {
	bit := branchingBitOf(prefix0, prefix1)
	prefix := maskAbove(prefix0, bit)
	if isZeroBit(prefix0, bit) {
		return newBranch(prefix, bit, t0, t1)
	}
	return newBranch(prefix, bit, t1, t0)
}

// prefixOf returns the value used to determine branching-bit placement
// for n: a leaf's own key, or a branch's cached prefix.
func (n *node[U, V]) prefixOf() U {
	if n.k == kindLeaf {
		return n.key
	}
	return n.prefix
}
