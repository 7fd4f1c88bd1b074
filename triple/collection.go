package triple

import (
	"fmt"
	"sort"
	"strings"
)

// A Collection is a coalesced set of Triples together with a fixed-point
// basis: 1 for plain integers, 64 for 26.6 fixed-point values. Member
// values are stored raw, i.e. already scaled by the basis.
//
// Collections are immutable value types. Every operation returns a fresh
// Collection, so they may be copied and shared freely. Operations never
// fail; range checking and error policy live with the callers.
type Collection struct {
	triples []Triple
	basis   int64
}

// enumLimit bounds the element counts up to which operations without a
// closed-form progression result fall back to exact enumeration.
const enumLimit = 64

// NewCollection builds a Collection from the given Triples, merging
// overlapping and redundant members.
func NewCollection(basis int64, triples ...Triple) Collection {
	if basis <= 0 {
		basis = 1
	}
	return Collection{triples: canonical(triples), basis: basis}
}

// FromValues builds a Collection holding exactly the given raw values.
func FromValues(basis int64, values ...int64) Collection {
	ts := make([]Triple, len(values))
	for i, v := range values {
		ts[i] = Single(v)
	}
	return NewCollection(basis, ts...)
}

// FromValue builds a singleton Collection.
func FromValue(basis, value int64) Collection {
	return NewCollection(basis, Single(value))
}

// Any is the Collection of all integers, the fully unconstrained value.
func Any(basis int64) Collection {
	return NewCollection(basis, NewOpen(1, 0))
}

// Empty is the Collection with no members.
func Empty(basis int64) Collection {
	return NewCollection(basis)
}

// Basis returns the fixed-point denominator of the Collection's values.
func (c Collection) Basis() int64 {
	if c.basis == 0 {
		return 1
	}
	return c.basis
}

// Triples returns a copy of the member Triples in canonical order.
func (c Collection) Triples() []Triple {
	out := make([]Triple, len(c.triples))
	copy(out, c.triples)
	return out
}

// IsEmpty is true if the Collection has no members.
func (c Collection) IsEmpty() bool { return len(c.triples) == 0 }

// IsOpen is true if any member Triple is unbounded at either end. Bit-width
// checks skip Collections for which this holds, as an infinite set cannot
// be bound-checked.
func (c Collection) IsOpen() bool {
	for _, t := range c.triples {
		if !t.Bounded() {
			return true
		}
	}
	return false
}

// Contains tests raw-value membership.
func (c Collection) Contains(v int64) bool {
	for _, t := range c.triples {
		if t.Contains(v) {
			return true
		}
	}
	return false
}

// Len returns the number of members; ok is false for unbounded Collections.
func (c Collection) Len() (int64, bool) {
	var n int64
	for _, t := range c.triples {
		tn, bounded := t.Len()
		if !bounded {
			return 0, false
		}
		n += tn
	}
	return n, true
}

// ToNumber returns the single member of a singleton Collection. ok is false
// when the Collection holds zero or several values.
func (c Collection) ToNumber() (int64, bool) {
	if n, bounded := c.Len(); !bounded || n != 1 {
		return 0, false
	}
	v, _ := c.triples[0].First()
	return v, true
}

// Min returns the smallest member; ok is false if the Collection is empty
// or unbounded below.
func (c Collection) Min() (int64, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	var best int64
	for i, t := range c.triples {
		v, ok := t.First()
		if !ok {
			return 0, false
		}
		if i == 0 || v < best {
			best = v
		}
	}
	return best, true
}

// Max returns the largest member; ok is false if the Collection is empty
// or unbounded above.
func (c Collection) Max() (int64, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	var best int64
	for i, t := range c.triples {
		v, ok := t.Last()
		if !ok {
			return 0, false
		}
		if i == 0 || v > best {
			best = v
		}
	}
	return best, true
}

// EncompassedBooleans reports which truth values the Collection can take
// as a TrueType condition: false if 0 is a member, true if any nonzero
// value is. Handlers use this to branch on a value without forcing it.
func (c Collection) EncompassedBooleans() (hasFalse, hasTrue bool) {
	hasFalse = c.Contains(0)
	for _, t := range c.triples {
		if n, bounded := t.Len(); bounded && n == 1 {
			if v, ok := t.First(); ok && v == 0 {
				continue
			}
		}
		// a Triple with more than one member holds a nonzero one
		hasTrue = true
		break
	}
	return hasFalse, hasTrue
}

// Enumerate collects up to limit members. ok is false if the Collection is
// unbounded or larger than limit.
func (c Collection) Enumerate(limit int) ([]int64, bool) {
	if n, bounded := c.Len(); !bounded || n > int64(limit) {
		return nil, false
	}
	var vals []int64
	for _, t := range c.triples {
		vs, _ := t.Enumerate(limit)
		vals = append(vals, vs...)
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	return vals, true
}

// Equal is structural set equality: same basis, same canonical members.
func (c Collection) Equal(other Collection) bool {
	if c.Basis() != other.Basis() || len(c.triples) != len(other.triples) {
		return false
	}
	for i, t := range c.triples {
		if !t.Equal(other.triples[i]) {
			return false
		}
	}
	return true
}

// reconcile brings two Collections onto a common basis, scaling values up
// losslessly to the least common multiple of the two bases.
func reconcile(a, b Collection) (Collection, Collection, int64) {
	ba, bb := a.Basis(), b.Basis()
	if ba == bb {
		return a, b, ba
	}
	target := ba / gcf(ba, bb) * bb
	return a.ChangedBasis(target), b.ChangedBasis(target), target
}

// pairwise applies a Triple-level operation to every pair of member
// Triples and coalesces the results. An empty operand yields the empty
// set, as there are no pairs to operate on.
func (c Collection) pairwise(other Collection, op func(Triple, Triple) []Triple) Collection {
	a, b, basis := reconcile(c, other)
	if a.IsEmpty() || b.IsEmpty() {
		return NewCollection(basis)
	}
	var out []Triple
	for _, t1 := range a.triples {
		for _, t2 := range b.triples {
			out = append(out, op(t1, t2)...)
		}
	}
	return NewCollection(basis, out...)
}

// Union returns the set union of both collections, at the reconciled basis.
func (c Collection) Union(other Collection) Collection {
	a, b, basis := reconcile(c, other)
	return NewCollection(basis, append(a.Triples(), b.Triples()...)...)
}

// Add returns the pairwise sum set.
func (c Collection) Add(other Collection) Collection {
	return c.pairwise(other, Triple.Add)
}

// Sub returns the pairwise difference set.
func (c Collection) Sub(other Collection) Collection {
	return c.pairwise(other, Triple.Sub)
}

// Mul returns the pairwise product set, possibly widened for open operands.
func (c Collection) Mul(other Collection) Collection {
	return c.pairwise(other, Triple.Mul)
}

// AddConstant shifts every member by the raw value k.
func (c Collection) AddConstant(k int64) Collection {
	out := make([]Triple, len(c.triples))
	for i, t := range c.triples {
		out[i] = t.AddConstant(k)
	}
	return NewCollection(c.Basis(), out...)
}

// MulConstant scales every member by k.
func (c Collection) MulConstant(k int64) Collection {
	out := make([]Triple, len(c.triples))
	for i, t := range c.triples {
		out[i] = t.MulConstant(k)
	}
	return NewCollection(c.Basis(), out...)
}

// Neg reflects every member about zero.
func (c Collection) Neg() Collection { return c.MulConstant(-1) }

// Div returns a superset of the pairwise truncating-division quotients,
// taken over the nonzero members of the divisor only. Whether a zero
// divisor is an error is the caller's policy; test with Contains(0).
func (c Collection) Div(other Collection) Collection {
	a, b, basis := reconcile(c, other)
	b = b.withoutZero()
	if a.IsEmpty() || b.IsEmpty() {
		return NewCollection(basis)
	}
	if av, ok := a.Enumerate(enumLimit); ok {
		if bv, ok := b.Enumerate(enumLimit); ok && len(av)*len(bv) <= enumLimit*enumLimit {
			quot := make([]int64, 0, len(av)*len(bv))
			for _, x := range av {
				for _, y := range bv {
					quot = append(quot, x/y)
				}
			}
			return FromValues(basis, quot...)
		}
	}
	if k, ok := b.ToNumber(); ok {
		out := make([]Triple, 0, len(a.triples))
		neg := k < 0
		if neg {
			k = -k
		}
		for _, t := range a.triples {
			out = append(out, divTruncConstant(t, k))
		}
		res := NewCollection(basis, out...)
		if neg {
			res = res.Neg()
		}
		return res
	}
	return Any(basis)
}

// withoutZero removes the value zero from the member set.
func (c Collection) withoutZero() Collection {
	if !c.Contains(0) {
		return c
	}
	var out []Triple
	for _, t := range c.triples {
		neg, nonneg := t.split()
		out = append(out, neg, nonneg.clampBelow(1))
	}
	return NewCollection(c.Basis(), out...)
}

// divTruncConstant divides every member of t by the positive constant k,
// truncating toward zero. The result is exact when k divides both skip and
// phase, a tight range superset otherwise.
func divTruncConstant(t Triple, k int64) Triple {
	if k == 1 || t.IsEmpty() {
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
	// truncation toward zero is monotone, so bounds map to bounds
	switch {
	case t.openStart && t.openStop:
		return NewOpen(1, 0)
	case t.openStart:
		last, _ := t.Last()
		return NewOpenStart(last/k+1, 1)
	case t.openStop:
		return NewOpenStop(t.start/k, 1)
	}
	if vals, ok := t.Enumerate(enumLimit); ok {
		// small enough for the exact quotient set
		c := FromValues(1, mapDiv(vals, k)...)
		if n := len(c.triples); n == 1 {
			return c.triples[0]
		}
	}
	last, _ := t.Last()
	return New(t.start/k, last/k+1, 1)
}

func mapDiv(vals []int64, k int64) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = v / k
	}
	return out
}

// ChangedBasis rescales the Collection to a new fixed-point basis. Scaling
// up is lossless; scaling down truncates toward zero, consistent with the
// 26.6 fixed-point conventions of the hint language.
func (c Collection) ChangedBasis(newBasis int64) Collection {
	if newBasis <= 0 {
		newBasis = 1
	}
	old := c.Basis()
	if old == newBasis {
		return c
	}
	g := gcf(old, newBasis)
	num := newBasis / g
	den := old / g
	out := make([]Triple, 0, len(c.triples))
	for _, t := range c.triples {
		t = t.MulConstant(num)
		out = append(out, divTruncConstant(t, den))
	}
	return Collection{triples: canonical(out), basis: newBasis}
}

// Minimum returns the set {min(x,y) : x ∈ c, y ∈ other}: every member of
// either operand that some member of the other does not undercut.
func (c Collection) Minimum(other Collection) Collection {
	a, b, basis := reconcile(c, other)
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	var out []Triple
	if m, ok := b.Max(); ok {
		for _, t := range a.triples {
			out = append(out, t.clampAbove(m))
		}
	} else {
		out = append(out, a.triples...)
	}
	if m, ok := a.Max(); ok {
		for _, t := range b.triples {
			out = append(out, t.clampAbove(m))
		}
	} else {
		out = append(out, b.triples...)
	}
	return NewCollection(basis, out...)
}

// Maximum returns the set {max(x,y) : x ∈ c, y ∈ other}.
func (c Collection) Maximum(other Collection) Collection {
	a, b, basis := reconcile(c, other)
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	var out []Triple
	if m, ok := b.Min(); ok {
		for _, t := range a.triples {
			out = append(out, t.clampBelow(m))
		}
	} else {
		out = append(out, a.triples...)
	}
	if m, ok := a.Min(); ok {
		for _, t := range b.triples {
			out = append(out, t.clampBelow(m))
		}
	} else {
		out = append(out, b.triples...)
	}
	return NewCollection(basis, out...)
}

// relate reports which of the orderings x<y, x==y, x>y are realizable by
// some pair (x ∈ c, y ∈ other).
func (c Collection) relate(other Collection) (lt, eq, gt bool) {
	a, b, _ := reconcile(c, other)
	if a.IsEmpty() || b.IsEmpty() {
		return false, false, false
	}
	aMin, aMinOK := a.Min()
	aMax, aMaxOK := a.Max()
	bMin, bMinOK := b.Min()
	bMax, bMaxOK := b.Max()
	lt = !aMinOK || !bMaxOK || aMin < bMax
	gt = !aMaxOK || !bMinOK || aMax > bMin
	for _, t1 := range a.triples {
		for _, t2 := range b.triples {
			if t1.intersects(t2) {
				eq = true
				return
			}
		}
	}
	return
}

func boolColl(canTrue, canFalse bool) Collection {
	switch {
	case canTrue && canFalse:
		return FromValues(1, 0, 1)
	case canTrue:
		return FromValue(1, 1)
	case canFalse:
		return FromValue(1, 0)
	}
	return Empty(1)
}

// CompareEqual returns the boolean Collection of x == y outcomes.
func (c Collection) CompareEqual(other Collection) Collection {
	lt, eq, gt := c.relate(other)
	return boolColl(eq, lt || gt)
}

// CompareNotEqual returns the boolean Collection of x != y outcomes.
func (c Collection) CompareNotEqual(other Collection) Collection {
	lt, eq, gt := c.relate(other)
	return boolColl(lt || gt, eq)
}

// CompareLess returns the boolean Collection of x < y outcomes.
func (c Collection) CompareLess(other Collection) Collection {
	lt, eq, gt := c.relate(other)
	return boolColl(lt, eq || gt)
}

// CompareLessEqual returns the boolean Collection of x <= y outcomes.
func (c Collection) CompareLessEqual(other Collection) Collection {
	lt, eq, gt := c.relate(other)
	return boolColl(lt || eq, gt)
}

// CompareGreater returns the boolean Collection of x > y outcomes.
func (c Collection) CompareGreater(other Collection) Collection {
	lt, eq, gt := c.relate(other)
	return boolColl(gt, eq || lt)
}

// CompareGreaterEqual returns the boolean Collection of x >= y outcomes.
func (c Collection) CompareGreaterEqual(other Collection) Collection {
	lt, eq, gt := c.relate(other)
	return boolColl(gt || eq, lt)
}

// canonical drops empty Triples, removes redundant members and merges
// progressions with equal skip and phase whose ranges touch or overlap.
func canonical(ts []Triple) []Triple {
	work := make([]Triple, 0, len(ts))
	for _, t := range ts {
		if !t.IsEmpty() {
			work = append(work, t)
		}
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(work) && !changed; i++ {
			for j := 0; j < len(work); j++ {
				if i == j {
					continue
				}
				if work[i].containedIn(work[j]) {
					work = append(work[:i], work[i+1:]...)
					changed = true
					break
				}
				if merged, ok := mergeTriples(work[i], work[j]); ok {
					lo, hi := i, j
					if lo > hi {
						lo, hi = hi, lo
					}
					work = append(work[:hi], work[hi+1:]...)
					work[lo] = merged
					changed = true
					break
				}
			}
		}
	}
	sort.Slice(work, func(i, j int) bool { return tripleLess(work[i], work[j]) })
	return work
}

// mergeTriples unions two Triples with identical skip and phase when their
// ranges overlap or are adjacent.
func mergeTriples(t1, t2 Triple) (Triple, bool) {
	if t1.skip != t2.skip || t1.phase != t2.phase {
		return Triple{}, false
	}
	// treat open ends as infinite for the overlap test
	overlap := (t1.openStart || t2.openStop || t1.start <= t2.stop) &&
		(t2.openStart || t1.openStop || t2.start <= t1.stop)
	if !overlap {
		return Triple{}, false
	}
	merged := Triple{skip: t1.skip, phase: t1.phase}
	merged.openStart = t1.openStart || t2.openStart
	merged.openStop = t1.openStop || t2.openStop
	if !merged.openStart {
		merged.start = min(t1.start, t2.start)
	}
	if !merged.openStop {
		merged.stop = max(t1.stop, t2.stop)
	}
	return merged, true
}

func tripleLess(t1, t2 Triple) bool {
	if t1.openStart != t2.openStart {
		return t1.openStart
	}
	if !t1.openStart && t1.start != t2.start {
		return t1.start < t2.start
	}
	if t1.phase != t2.phase {
		return t1.phase < t2.phase
	}
	if t1.skip != t2.skip {
		return t1.skip < t2.skip
	}
	if t1.openStop != t2.openStop {
		return t2.openStop
	}
	return t1.stop < t2.stop
}

// String renders the member Triples in canonical order, annotated with the
// basis when it is not 1.
func (c Collection) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, t := range c.triples {
		if i > 0 {
			b.WriteString(", ")
		}
		if n, ok := t.Len(); ok && n == 1 {
			v, _ := t.First()
			fmt.Fprintf(&b, "%d", v)
		} else {
			b.WriteString(t.String())
		}
	}
	b.WriteByte('}')
	if c.Basis() != 1 {
		fmt.Fprintf(&b, "/%d", c.Basis())
	}
	return b.String()
}
