package triple

import (
	"fmt"
	"iter"
	"strings"
)

// Triple is an arithmetic progression of integers
//
//	{ start, start+skip, start+2·skip, … }
//
// optionally unbounded at either end. A bounded stop is exclusive and is
// always aligned to the progression, i.e. the largest member of a
// stop-bounded Triple is stop-skip. The skip is strictly positive. The
// phase is the common residue of all members modulo skip; for Triples with
// a bounded end it is derived from that end, for doubly-open Triples it is
// carried explicitly.
//
// Triples are immutable value objects. All operations return new Triples.
type Triple struct {
	start, stop         int64
	openStart, openStop bool
	skip                int64
	phase               int64
}

// pmod is the floored modulus: the result is in [0, m) for m > 0.
func pmod(x, m int64) int64 {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

func gcf(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ceilAlign returns the smallest x >= n with x ≡ phase (mod skip).
func ceilAlign(n, skip, phase int64) int64 {
	return n + pmod(phase-n, skip)
}

// floorAlign returns the largest x <= n with x ≡ phase (mod skip).
func floorAlign(n, skip, phase int64) int64 {
	return n - pmod(n-phase, skip)
}

// New creates a Triple bounded at both ends. The stop bound is exclusive
// and will be aligned upwards to the progression if necessary. A stop at or
// below start yields the canonical empty Triple.
func New(start, stop, skip int64) Triple {
	if skip <= 0 {
		skip = 1
	}
	if stop <= start {
		return Triple{skip: 1} // empty
	}
	stop = ceilAlign(stop, skip, pmod(start, skip))
	return Triple{start: start, stop: stop, skip: skip, phase: pmod(start, skip)}
}

// NewOpenStop creates a Triple unbounded above.
func NewOpenStop(start, skip int64) Triple {
	if skip <= 0 {
		skip = 1
	}
	return Triple{start: start, openStop: true, skip: skip, phase: pmod(start, skip)}
}

// NewOpenStart creates a Triple unbounded below. stop is exclusive and
// determines the phase.
func NewOpenStart(stop, skip int64) Triple {
	if skip <= 0 {
		skip = 1
	}
	return Triple{stop: stop, openStart: true, skip: skip, phase: pmod(stop, skip)}
}

// NewOpen creates a doubly-open Triple: all integers ≡ phase (mod skip).
func NewOpen(skip, phase int64) Triple {
	if skip <= 0 {
		skip = 1
	}
	return Triple{openStart: true, openStop: true, skip: skip, phase: pmod(phase, skip)}
}

// Single creates the one-element Triple {n}.
func Single(n int64) Triple {
	return Triple{start: n, stop: n + 1, skip: 1, phase: pmod(n, 1)}
}

// Start returns the lower bound. ok is false for an unbounded start.
func (t Triple) Start() (int64, bool) { return t.start, !t.openStart }

// Stop returns the exclusive upper bound. ok is false for an unbounded stop.
func (t Triple) Stop() (int64, bool) { return t.stop, !t.openStop }

// Skip returns the progression's stride.
func (t Triple) Skip() int64 { return t.skip }

// Phase returns the common residue of all members modulo Skip.
func (t Triple) Phase() int64 { return t.phase }

// IsEmpty is true for Triples without members.
func (t Triple) IsEmpty() bool {
	return !t.openStart && !t.openStop && t.stop <= t.start
}

// Bounded is true if the Triple has finitely many members.
func (t Triple) Bounded() bool { return !t.openStart && !t.openStop }

// Len returns the number of members. ok is false for unbounded Triples.
func (t Triple) Len() (int64, bool) {
	if !t.Bounded() {
		return 0, false
	}
	if t.stop <= t.start {
		return 0, true
	}
	return (t.stop - t.start) / t.skip, true
}

// Last returns the largest member. ok is false if the Triple is empty or
// unbounded above.
func (t Triple) Last() (int64, bool) {
	if t.openStop || t.IsEmpty() {
		return 0, false
	}
	return t.stop - t.skip, true
}

// First returns the smallest member. ok is false if the Triple is empty or
// unbounded below.
func (t Triple) First() (int64, bool) {
	if t.openStart || t.IsEmpty() {
		return 0, false
	}
	return t.start, true
}

// Contains tests membership of n.
func (t Triple) Contains(n int64) bool {
	if t.IsEmpty() {
		return false
	}
	if pmod(n, t.skip) != t.phase {
		return false
	}
	if !t.openStart && n < t.start {
		return false
	}
	if !t.openStop && n >= t.stop {
		return false
	}
	return true
}

// Equal compares two Triples field-wise. Canonical construction makes this
// equivalent to set equality for non-empty Triples.
func (t Triple) Equal(other Triple) bool {
	if t.IsEmpty() && other.IsEmpty() {
		return true
	}
	return t.openStart == other.openStart && t.openStop == other.openStop &&
		t.skip == other.skip && t.phase == other.phase &&
		(t.openStart || t.start == other.start) &&
		(t.openStop || t.stop == other.stop)
}

// Values iterates the members of a fully bounded Triple in ascending order.
// Unbounded Triples yield nothing.
func (t Triple) Values() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if !t.Bounded() {
			return
		}
		for n := t.start; n < t.stop; n += t.skip {
			if !yield(n) {
				return
			}
		}
	}
}

// Enumerate collects up to limit members of a bounded Triple. ok is false
// if the Triple is unbounded or has more than limit members.
func (t Triple) Enumerate(limit int) ([]int64, bool) {
	n, bounded := t.Len()
	if !bounded || n > int64(limit) {
		return nil, false
	}
	vals := make([]int64, 0, n)
	for v := range t.Values() {
		vals = append(vals, v)
	}
	return vals, true
}

// AddConstant shifts every member by k.
func (t Triple) AddConstant(k int64) Triple {
	if t.IsEmpty() {
		return t
	}
	switch {
	case t.openStart && t.openStop:
		return NewOpen(t.skip, t.phase+k)
	case t.openStart:
		return NewOpenStart(t.stop+k, t.skip)
	case t.openStop:
		return NewOpenStop(t.start+k, t.skip)
	}
	return Triple{start: t.start + k, stop: t.stop + k, skip: t.skip, phase: pmod(t.start+k, t.skip)}
}

// MulConstant scales every member by k. Multiplying by zero yields the
// one-element Triple {0}.
func (t Triple) MulConstant(k int64) Triple {
	if t.IsEmpty() {
		return t
	}
	if k > 0 {
		switch {
		case t.openStart && t.openStop:
			return NewOpen(t.skip*k, t.phase*k)
		case t.openStart:
			return NewOpenStart(t.stop*k, t.skip*k)
		case t.openStop:
			return NewOpenStop(t.start*k, t.skip*k)
		}
		return New(t.start*k, t.stop*k, t.skip*k)
	}
	if k < 0 {
		// reflection swaps the open ends
		newSkip := t.skip * -k
		switch {
		case t.openStart && t.openStop:
			return NewOpen(newSkip, k*(t.phase-t.skip))
		case t.openStart:
			return NewOpenStop((t.stop-t.skip)*k, newSkip)
		case t.openStop:
			return NewOpenStart(t.start*k+newSkip, newSkip)
		}
		return New((t.stop-t.skip)*k, t.start*k+newSkip, newSkip)
	}
	return Single(0)
}

// Neg reflects the Triple about zero.
func (t Triple) Neg() Triple { return t.MulConstant(-1) }

// split partitions t into its members below zero and its members at or
// above zero.
func (t Triple) split() (neg, nonneg Triple) {
	empty := Triple{skip: 1}
	if t.IsEmpty() {
		return empty, empty
	}
	firstNonneg := ceilAlign(0, t.skip, t.phase)
	switch {
	case t.openStart && t.openStop:
		return NewOpenStart(firstNonneg, t.skip), NewOpenStop(firstNonneg, t.skip)
	case t.openStart:
		if t.stop-t.skip < 0 {
			return t, empty
		}
		return NewOpenStart(firstNonneg, t.skip), New(firstNonneg, t.stop, t.skip)
	case t.openStop:
		if t.start >= 0 {
			return empty, t
		}
		return New(t.start, firstNonneg, t.skip), NewOpenStop(firstNonneg, t.skip)
	}
	if t.start >= 0 {
		return empty, t
	}
	if t.stop-t.skip < 0 {
		return t, empty
	}
	return New(t.start, firstNonneg, t.skip), New(firstNonneg, t.stop, t.skip)
}

// Abs returns the Triples covering {|x| : x ∈ t}.
func (t Triple) Abs() []Triple {
	neg, nonneg := t.split()
	var out []Triple
	if !neg.IsEmpty() {
		out = append(out, neg.Neg())
	}
	if !nonneg.IsEmpty() {
		out = append(out, nonneg)
	}
	if out == nil {
		out = []Triple{t} // empty in, empty out
	}
	return out
}

// clampAbove restricts t to members <= m.
func (t Triple) clampAbove(m int64) Triple {
	empty := Triple{skip: 1}
	if t.IsEmpty() {
		return t
	}
	if !t.openStart && t.start > m {
		return empty
	}
	last := floorAlign(m, t.skip, t.phase)
	if !t.openStop && t.stop-t.skip <= m {
		return t
	}
	if t.openStart {
		return NewOpenStart(last+t.skip, t.skip)
	}
	return New(t.start, last+t.skip, t.skip)
}

// clampBelow restricts t to members >= m.
func (t Triple) clampBelow(m int64) Triple {
	empty := Triple{skip: 1}
	if t.IsEmpty() {
		return t
	}
	if !t.openStop && t.stop-t.skip < m {
		return empty
	}
	first := ceilAlign(m, t.skip, t.phase)
	if !t.openStart && t.start >= m {
		return t
	}
	if t.openStop {
		return NewOpenStop(first, t.skip)
	}
	return New(first, t.stop, t.skip)
}

// containedIn reports whether every member of t is a member of other.
func (t Triple) containedIn(other Triple) bool {
	if t.IsEmpty() {
		return true
	}
	if n, ok := t.Len(); ok && n <= 3 {
		for v := range t.Values() {
			if !other.Contains(v) {
				return false
			}
		}
		return true
	}
	if t.skip%other.skip != 0 || pmod(t.phase-other.phase, other.skip) != 0 {
		return false
	}
	if t.openStart && !other.openStart {
		return false
	}
	if t.openStop && !other.openStop {
		return false
	}
	if !other.openStart && t.start < other.start {
		return false
	}
	if !other.openStop && t.stop > other.stop {
		return false
	}
	return true
}

// intersects reports whether t and other share at least one member.
func (t Triple) intersects(other Triple) bool {
	if t.IsEmpty() || other.IsEmpty() {
		return false
	}
	g := gcf(t.skip, other.skip)
	if pmod(t.phase-other.phase, g) != 0 {
		return false
	}
	// The congruences are compatible. With both ranges bounded a common
	// member must lie in the bounds' overlap; check a window of lcm width.
	lo := int64(minInt64)
	hi := int64(maxInt64)
	if !t.openStart && t.start > lo {
		lo = t.start
	}
	if !other.openStart && other.start > lo {
		lo = other.start
	}
	if !t.openStop && t.stop < hi {
		hi = t.stop
	}
	if !other.openStop && other.stop < hi {
		hi = other.stop
	}
	if lo == minInt64 || hi == maxInt64 {
		return true // at least one side stretches far enough for the CRT solution
	}
	lcm := t.skip / g * other.skip
	for v := ceilAlign(lo, t.skip, t.phase); v < hi && v < lo+lcm+t.skip; v += t.skip {
		if other.Contains(v) {
			return true
		}
	}
	return false
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)

// String renders the Triple in the conventional (start, stop, skip) form,
// with "*" marking open ends and an explicit phase for doubly-open Triples.
func (t Triple) String() string {
	if t.IsEmpty() {
		return "(empty)"
	}
	var b strings.Builder
	b.WriteByte('(')
	if t.openStart {
		b.WriteByte('*')
	} else {
		fmt.Fprintf(&b, "%d", t.start)
	}
	b.WriteString(", ")
	if t.openStop {
		b.WriteByte('*')
	} else {
		fmt.Fprintf(&b, "%d", t.stop)
	}
	fmt.Fprintf(&b, ", %d", t.skip)
	if t.openStart && t.openStop {
		fmt.Fprintf(&b, ", phase=%d", t.phase)
	}
	b.WriteByte(')')
	return b.String()
}
