package scalar

import "github.com/go-sparta/sparta/absval"

type disjointTag uint8

const (
	disjointBottom disjointTag = iota
	disjointTop
	disjointA
	disjointB
)

// DisjointUnion2 is a tagged union over two component domains sharing a
// single Top and a single Bottom (original_source's
// DisjointUnionAbstractDomain, exercised by
// DisjointUnionAbstractDomainTest.cpp's basicOperations). Joining or
// meeting two values active in the same component delegates to that
// component; crossing components has only one sound answer regardless
// of which components are involved — join is top, meet is bottom — since
// there's no shared order between an A and a B value to refine further.
//
// Go has no variadic type parameter list, so a union of more than two
// components is expressed by nesting: DisjointUnion2[A, DisjointUnion2[B, C]].
type DisjointUnion2[A absval.Value[A], B absval.Value[B]] struct {
	tag disjointTag
	a   A
	b   B
}

// DisjointUnionBottom2 returns the shared bottom.
func DisjointUnionBottom2[A absval.Value[A], B absval.Value[B]]() DisjointUnion2[A, B] {
	return DisjointUnion2[A, B]{tag: disjointBottom}
}

// DisjointUnionTop2 returns the shared top.
func DisjointUnionTop2[A absval.Value[A], B absval.Value[B]]() DisjointUnion2[A, B] {
	return DisjointUnion2[A, B]{tag: disjointTop}
}

// DisjointUnionFromA activates component A, normalizing to the shared
// bottom/top if a itself already is A's bottom/top.
func DisjointUnionFromA[A absval.Value[A], B absval.Value[B]](a A) DisjointUnion2[A, B] {
	switch a.Kind() {
	case absval.Bottom:
		return DisjointUnionBottom2[A, B]()
	case absval.Top:
		return DisjointUnionTop2[A, B]()
	default:
		return DisjointUnion2[A, B]{tag: disjointA, a: a}
	}
}

// DisjointUnionFromB activates component B, with the same normalization
// as DisjointUnionFromA.
func DisjointUnionFromB[A absval.Value[A], B absval.Value[B]](b B) DisjointUnion2[A, B] {
	switch b.Kind() {
	case absval.Bottom:
		return DisjointUnionBottom2[A, B]()
	case absval.Top:
		return DisjointUnionTop2[A, B]()
	default:
		return DisjointUnion2[A, B]{tag: disjointB, b: b}
	}
}

// A returns u's A component and ok=true if u is currently active in A.
func (u DisjointUnion2[A, B]) A() (a A, ok bool) {
	if u.tag != disjointA {
		return a, false
	}
	return u.a, true
}

// B returns u's B component and ok=true if u is currently active in B.
func (u DisjointUnion2[A, B]) B() (b B, ok bool) {
	if u.tag != disjointB {
		return b, false
	}
	return u.b, true
}

func (u DisjointUnion2[A, B]) IsTop() bool { return u.tag == disjointTop }

func (u DisjointUnion2[A, B]) Kind() absval.Kind {
	switch u.tag {
	case disjointBottom:
		return absval.Bottom
	case disjointTop:
		return absval.Top
	default:
		return absval.ValueKind
	}
}

func (u DisjointUnion2[A, B]) Leq(other DisjointUnion2[A, B]) bool {
	switch {
	case u.tag == disjointBottom:
		return true
	case other.tag == disjointBottom:
		return false
	case other.tag == disjointTop:
		return true
	case u.tag == disjointTop:
		return false
	case u.tag == disjointA && other.tag == disjointA:
		return u.a.Leq(other.a)
	case u.tag == disjointB && other.tag == disjointB:
		return u.b.Leq(other.b)
	default:
		return false
	}
}

func (u DisjointUnion2[A, B]) Equal(other DisjointUnion2[A, B]) bool {
	switch {
	case u.tag != other.tag:
		return false
	case u.tag == disjointA:
		return u.a.Equal(other.a)
	case u.tag == disjointB:
		return u.b.Equal(other.b)
	default:
		return true
	}
}

func (u DisjointUnion2[A, B]) Join(other DisjointUnion2[A, B]) (DisjointUnion2[A, B], error) {
	switch {
	case u.tag == disjointBottom:
		return other, nil
	case other.tag == disjointBottom:
		return u, nil
	case u.tag == disjointTop || other.tag == disjointTop:
		return DisjointUnionTop2[A, B](), nil
	case u.tag == disjointA && other.tag == disjointA:
		joined, err := u.a.Join(other.a)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromA[A, B](joined), nil
	case u.tag == disjointB && other.tag == disjointB:
		joined, err := u.b.Join(other.b)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromB[A, B](joined), nil
	default:
		return DisjointUnionTop2[A, B](), nil
	}
}

func (u DisjointUnion2[A, B]) Meet(other DisjointUnion2[A, B]) (DisjointUnion2[A, B], error) {
	switch {
	case u.tag == disjointTop:
		return other, nil
	case other.tag == disjointTop:
		return u, nil
	case u.tag == disjointBottom || other.tag == disjointBottom:
		return DisjointUnionBottom2[A, B](), nil
	case u.tag == disjointA && other.tag == disjointA:
		met, err := u.a.Meet(other.a)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromA[A, B](met), nil
	case u.tag == disjointB && other.tag == disjointB:
		met, err := u.b.Meet(other.b)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromB[A, B](met), nil
	default:
		return DisjointUnionBottom2[A, B](), nil
	}
}

func (u DisjointUnion2[A, B]) Widen(other DisjointUnion2[A, B]) (DisjointUnion2[A, B], error) {
	switch {
	case u.tag == disjointBottom:
		return other, nil
	case other.tag == disjointBottom:
		return u, nil
	case u.tag == disjointTop || other.tag == disjointTop:
		return DisjointUnionTop2[A, B](), nil
	case u.tag == disjointA && other.tag == disjointA:
		widened, err := u.a.Widen(other.a)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromA[A, B](widened), nil
	case u.tag == disjointB && other.tag == disjointB:
		widened, err := u.b.Widen(other.b)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromB[A, B](widened), nil
	default:
		return DisjointUnionTop2[A, B](), nil
	}
}

func (u DisjointUnion2[A, B]) Narrow(other DisjointUnion2[A, B]) (DisjointUnion2[A, B], error) {
	switch {
	case u.tag == disjointTop:
		return other, nil
	case other.tag == disjointTop:
		return u, nil
	case u.tag == disjointBottom || other.tag == disjointBottom:
		return DisjointUnionBottom2[A, B](), nil
	case u.tag == disjointA && other.tag == disjointA:
		narrowed, err := u.a.Narrow(other.a)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromA[A, B](narrowed), nil
	case u.tag == disjointB && other.tag == disjointB:
		narrowed, err := u.b.Narrow(other.b)
		if err != nil {
			return DisjointUnion2[A, B]{}, err
		}
		return DisjointUnionFromB[A, B](narrowed), nil
	default:
		return DisjointUnionBottom2[A, B](), nil
	}
}
