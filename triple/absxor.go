package triple

import "math/bits"

// Abs returns {|x| : x ∈ c}: the negative members reflected, unioned with
// the nonnegative ones.
func (c Collection) Abs() Collection {
	var out []Triple
	for _, t := range c.triples {
		out = append(out, t.Abs()...)
	}
	return NewCollection(c.Basis(), out...)
}

// SignedParts splits the Collection into its members below zero and its
// members at or above zero. Rounding distinguishes the two because the
// engraving distances apply symmetrically about zero.
func (c Collection) SignedParts() (neg, nonneg Collection) {
	var negT, nonnegT []Triple
	for _, t := range c.triples {
		n, p := t.split()
		negT = append(negT, n)
		nonnegT = append(nonnegT, p)
	}
	return NewCollection(c.Basis(), negT...), NewCollection(c.Basis(), nonnegT...)
}

// Xor returns a Collection covering {x ⊻ y : x ∈ c, y ∈ other}. Small
// bounded operands are combined exactly; larger bounded nonnegative
// operands widen to the range expressible in the operands' common bit
// length; anything involving open or negative members widens fully.
func (c Collection) Xor(other Collection) Collection {
	a, b, basis := reconcile(c, other)
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	if av, ok := a.Enumerate(enumLimit); ok {
		if bv, ok := b.Enumerate(enumLimit); ok && len(av)*len(bv) <= enumLimit*enumLimit {
			vals := make([]int64, 0, len(av)*len(bv))
			for _, x := range av {
				for _, y := range bv {
					vals = append(vals, x^y)
				}
			}
			return FromValues(basis, vals...)
		}
	}
	aMin, aMinOK := a.Min()
	aMax, aMaxOK := a.Max()
	bMin, bMinOK := b.Min()
	bMax, bMaxOK := b.Max()
	if aMinOK && aMaxOK && bMinOK && bMaxOK && aMin >= 0 && bMin >= 0 {
		// xor cannot set bits above the operands' common width
		n := max(bits.Len64(uint64(aMax)), bits.Len64(uint64(bMax)))
		return NewCollection(basis, New(0, int64(1)<<n, 1))
	}
	return Any(basis)
}

// FloorDivConstant divides every member by the positive constant k,
// rounding toward negative infinity. Used by the rounding machinery, where
// grid positions are floors of scaled values.
func (c Collection) FloorDivConstant(k int64) Collection {
	if k <= 1 {
		return c
	}
	out := make([]Triple, 0, len(c.triples))
	for _, t := range c.triples {
		out = append(out, floorDivTriple(t, k))
	}
	return NewCollection(c.Basis(), out...)
}

func floorDiv(v, k int64) int64 {
	return (v - pmod(v, k)) / k
}

func floorDivTriple(t Triple, k int64) Triple {
	if t.IsEmpty() {
		return t
	}
	if t.skip%k == 0 && t.phase%k == 0 {
		switch {
		case t.openStart && t.openStop:
			return NewOpen(t.skip/k, t.phase/k)
		case t.openStart:
			return NewOpenStart(t.stop/k, t.skip/k)
		case t.openStop:
			return NewOpenStop(t.start/k, t.skip/k)
		}
		return New(t.start/k, t.stop/k, t.skip/k)
	}
	switch {
	case t.openStart && t.openStop:
		return NewOpen(1, 0)
	case t.openStart:
		last, _ := t.Last()
		return NewOpenStart(floorDiv(last, k)+1, 1)
	case t.openStop:
		return NewOpenStop(floorDiv(t.start, k), 1)
	}
	last, _ := t.Last()
	return New(floorDiv(t.start, k), floorDiv(last, k)+1, 1)
}
