// Package codec reinterprets trie keys as unsigned integers.
//
// A Patricia trie is indexed by the bits of an unsigned integer. Any key
// type whose in-memory representation is bitwise identical to an unsigned
// integer of the same size and alignment can be used transparently,
// matching the original library's pt_util::Codec, which reinterpret_casts
// a key to its IntegerType. Go has no bit-cast generics, so Encode/Decode
// use unsafe.Pointer and check size/alignment compatibility for every
// (K, U) instantiation — the closest analogue of the original's
// static_assert-based compile-time rejection.
package codec

import (
	"unsafe"

	"github.com/go-sparta/sparta/abserrors"
)

// Unsigned is the set of integer types a key may be reinterpreted as.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Encode reinterprets k's bits as U. Panics if K and U do not share size
// and alignment.
func Encode[U Unsigned, K any](k K) U {
	mustBeCompatible[K, U]()
	return *(*U)(unsafe.Pointer(&k))
}

// Decode reinterprets u's bits back as K. Panics if K and U do not share
// size and alignment.
func Decode[K any, U Unsigned](u U) K {
	mustBeCompatible[K, U]()
	return *(*K)(unsafe.Pointer(&u))
}

// PointerKey re-encodes a pointer as a pointer-sized unsigned integer key,
// the pointer specialization named in spec.md 4.A. The trie does not keep
// the pointee alive and does not track pointer movement: callers must
// ensure a pointer used as a key stays valid and at a fixed address for as
// long as it probes the trie.
func PointerKey[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}

func mustBeCompatible[K any, U Unsigned]() {
	var k K
	var u U
	if unsafe.Sizeof(k) != unsafe.Sizeof(u) {
		panic(abserrors.Internal("codec: key type and integer type must have identical size"))
	}
	if unsafe.Alignof(k) != unsafe.Alignof(u) {
		panic(abserrors.Internal("codec: key type and integer type must have identical alignment"))
	}
}
