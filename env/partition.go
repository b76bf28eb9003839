package env

import "github.com/go-sparta/sparta/absval"

// Partition maps Label to D, reading a missing binding back as bottom —
// the dual of Environment, denoting a union (disjunction) of properties
// rather than a conjunction. Grounded on HashedAbstractPartition.h:
// "[to] minimize the size of the hashtable, we do not explicitly
// represent bindings to Bottom." A partition is bottom exactly when it
// has no explicit bindings at all, since every Set/Join/Meet below
// erases a binding the moment it becomes bottom — the invariant that
// keeps is_bottom a cheap len()==0 check rather than a scan.
//
// Top is a genuine absorbing state, not just "every binding is top":
// once promoted, a partition ignores further writes entirely
// (HashedAbstractPartition.h: "our Top partition cannot have its labels
// re-bound to anything other than Top... This makes for a much simpler
// implementation"), which is the one place spec.md 4.F calls out as an
// observable departure from the textbook definition.
type Partition[Label comparable, D absval.Value[D]] struct {
	isTop    bool
	top, bot D
	bindings map[Label]D
}

// NewPartition builds a non-top partition from bindings, Set one at a
// time, so a binding equal to bottom is simply omitted.
func NewPartition[Label comparable, D absval.Value[D]](top, bottom D, bindings map[Label]D) Partition[Label, D] {
	p := Partition[Label, D]{top: top, bot: bottom, bindings: map[Label]D{}}
	for l, d := range bindings {
		p = p.Set(l, d)
	}
	return p
}

// BottomPartition returns the bottom partition (no bindings).
func BottomPartition[Label comparable, D absval.Value[D]](top, bottom D) Partition[Label, D] {
	return Partition[Label, D]{top: top, bot: bottom, bindings: map[Label]D{}}
}

// TopPartition returns the top partition.
func TopPartition[Label comparable, D absval.Value[D]](top, bottom D) Partition[Label, D] {
	return Partition[Label, D]{isTop: true, top: top, bot: bottom}
}

func (p Partition[Label, D]) Size() int { return len(p.bindings) }

// Get returns l's binding, or top if the partition has been promoted to
// top, or bottom if l is simply unbound.
func (p Partition[Label, D]) Get(l Label) D {
	if p.isTop {
		return p.top
	}
	if d, ok := p.bindings[l]; ok {
		return d
	}
	return p.bot
}

// Set binds l to d. A no-op once the partition is top. A bottom d
// erases the binding (already the implicit default), matching how
// HashedAbstractPartitionTest's update-to-bottom leaves size and
// is_bottom unaffected rather than collapsing anything.
func (p Partition[Label, D]) Set(l Label, d D) Partition[Label, D] {
	if p.isTop {
		return p
	}
	bindings := cloneBindings(p.bindings)
	if d.Kind() == absval.Bottom {
		delete(bindings, l)
	} else {
		bindings[l] = d
	}
	return Partition[Label, D]{top: p.top, bot: p.bot, bindings: bindings}
}

// Update applies f to a copy of l's current binding and stores the
// result via Set.
func (p Partition[Label, D]) Update(l Label, f func(D) (D, error)) (Partition[Label, D], error) {
	if p.isTop {
		return p, nil
	}
	result, err := f(p.Get(l))
	if err != nil {
		var zero Partition[Label, D]
		return zero, err
	}
	return p.Set(l, result), nil
}

// The methods below satisfy absval.Value[Partition[Label, D]].

func (p Partition[Label, D]) IsTop() bool { return p.isTop }

// IsBottom reports whether p is the bottom partition, i.e. not top and
// with no explicit bindings.
func (p Partition[Label, D]) IsBottom() bool { return !p.isTop && len(p.bindings) == 0 }

func (p Partition[Label, D]) Kind() absval.Kind {
	switch {
	case p.isTop:
		return absval.Top
	case len(p.bindings) == 0:
		return absval.Bottom
	default:
		return absval.ValueKind
	}
}

// Leq needs only check p's own bindings against other: a label absent
// from p reads as bottom, which is leq anything regardless of what
// other binds it to.
func (p Partition[Label, D]) Leq(other Partition[Label, D]) bool {
	if other.isTop {
		return true
	}
	if p.isTop {
		return false
	}
	for l, d := range p.bindings {
		if !d.Leq(other.Get(l)) {
			return false
		}
	}
	return true
}

func (p Partition[Label, D]) Equal(other Partition[Label, D]) bool {
	if p.isTop != other.isTop {
		return false
	}
	if p.isTop {
		return true
	}
	if len(p.bindings) != len(other.bindings) {
		return false
	}
	for l, d := range p.bindings {
		od, ok := other.bindings[l]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}

// Join is pointwise join over the union of bound labels: a label bound
// on only one side passes through unchanged (join with the implicit
// bottom is the identity); top absorbs.
func (p Partition[Label, D]) Join(other Partition[Label, D]) (Partition[Label, D], error) {
	if p.isTop || other.isTop {
		return Partition[Label, D]{isTop: true, top: p.top, bot: p.bot}, nil
	}
	bindings := cloneBindings(p.bindings)
	for l, od := range other.bindings {
		if d, ok := bindings[l]; ok {
			j, err := d.Join(od)
			if err != nil {
				var zero Partition[Label, D]
				return zero, err
			}
			if j.Kind() == absval.Bottom {
				delete(bindings, l)
			} else {
				bindings[l] = j
			}
		} else {
			bindings[l] = od
		}
	}
	return Partition[Label, D]{top: p.top, bot: p.bot, bindings: bindings}, nil
}

// Meet keeps only labels bound on both sides: a label bound on only one
// side meets the implicit bottom on the other, and bottom is absorbing.
func (p Partition[Label, D]) Meet(other Partition[Label, D]) (Partition[Label, D], error) {
	if p.isTop {
		return other, nil
	}
	if other.isTop {
		return p, nil
	}
	bindings := make(map[Label]D, min(len(p.bindings), len(other.bindings)))
	for l, d := range p.bindings {
		od, ok := other.bindings[l]
		if !ok {
			continue
		}
		m, err := d.Meet(od)
		if err != nil {
			var zero Partition[Label, D]
			return zero, err
		}
		if m.Kind() != absval.Bottom {
			bindings[l] = m
		}
	}
	return Partition[Label, D]{top: p.top, bot: p.bot, bindings: bindings}, nil
}

// Widen has Join's shape with Widen substituted for the pointwise
// combinator.
func (p Partition[Label, D]) Widen(other Partition[Label, D]) (Partition[Label, D], error) {
	if p.isTop || other.isTop {
		return Partition[Label, D]{isTop: true, top: p.top, bot: p.bot}, nil
	}
	bindings := cloneBindings(p.bindings)
	for l, od := range other.bindings {
		if d, ok := bindings[l]; ok {
			w, err := d.Widen(od)
			if err != nil {
				var zero Partition[Label, D]
				return zero, err
			}
			if w.Kind() == absval.Bottom {
				delete(bindings, l)
			} else {
				bindings[l] = w
			}
		} else {
			bindings[l] = od
		}
	}
	return Partition[Label, D]{top: p.top, bot: p.bot, bindings: bindings}, nil
}

// Narrow has Meet's shape with Narrow substituted for the pointwise
// combinator.
func (p Partition[Label, D]) Narrow(other Partition[Label, D]) (Partition[Label, D], error) {
	if p.isTop {
		return other, nil
	}
	if other.isTop {
		return p, nil
	}
	bindings := make(map[Label]D, min(len(p.bindings), len(other.bindings)))
	for l, d := range p.bindings {
		od, ok := other.bindings[l]
		if !ok {
			continue
		}
		n, err := d.Narrow(od)
		if err != nil {
			var zero Partition[Label, D]
			return zero, err
		}
		if n.Kind() != absval.Bottom {
			bindings[l] = n
		}
	}
	return Partition[Label, D]{top: p.top, bot: p.bot, bindings: bindings}, nil
}
