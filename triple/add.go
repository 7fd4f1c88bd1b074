package triple

// Addition of two Triples. The sum of two arithmetic progressions is in
// general a union of progressions; Add returns that union un-coalesced.
// Collections take care of merging redundant members.
//
// The case analysis is driven by which ends of the two operands are open:
// CC means closed at both ends, CO closed start / open stop, and so on.

// Add returns Triples covering {x+y : x ∈ t, y ∈ other}.
func (t Triple) Add(other Triple) []Triple {
	k1 := kindOf(t)
	k2 := kindOf(other)
	g := gcf(t.skip, other.skip)
	switch {
	case k1 == kindCC && k2 == kindCC:
		return addCCCC(t, other)
	case k1 == kindCC && k2 == kindCO:
		return addCCCO(t, other, g)
	case k1 == kindCO && k2 == kindCC:
		return addCCCO(other, t, g)
	case k1 == kindCC && k2 == kindOC:
		return addCCOC(t, other, g)
	case k1 == kindOC && k2 == kindCC:
		return addCCOC(other, t, g)
	case k1 == kindCO && k2 == kindCO:
		return addCOCO(t, other, g)
	case k1 == kindCO && k2 == kindOC:
		return addCOOC(t, other, g)
	case k1 == kindOC && k2 == kindCO:
		return addCOOC(other, t, g)
	case k1 == kindOC && k2 == kindOC:
		return addOCOC(t, other, g)
	case k1 == kindOO && k2 == kindCC:
		return addOOCC(t, other, g)
	case k2 == kindOO && k1 == kindCC:
		return addOOCC(other, t, g)
	}
	// at least one operand doubly open, the other open at one end or both
	if k1 != kindOO {
		t, other = other, t
	}
	return addOOAny(t, other, g)
}

// Sub returns Triples covering {x-y : x ∈ t, y ∈ other}.
func (t Triple) Sub(other Triple) []Triple {
	return t.Add(other.Neg())
}

type boundKind int

const (
	kindCC boundKind = iota // closed, closed
	kindCO                  // closed start, open stop
	kindOC                  // open start, closed stop
	kindOO                  // open, open
)

func kindOf(t Triple) boundKind {
	switch {
	case t.openStart && t.openStop:
		return kindOO
	case t.openStart:
		return kindOC
	case t.openStop:
		return kindCO
	}
	return kindCC
}

func addCCCC(t1, t2 Triple) []Triple {
	len1, _ := t1.Len()
	len2, _ := t2.Len()
	if len1 == 0 {
		return []Triple{t2}
	}
	if len2 == 0 {
		return []Triple{t1}
	}
	if len1 > len2 {
		t1, t2 = t2, t1
		len1 = len2
	}
	out := make([]Triple, 0, len1)
	for n := range t1.Values() {
		out = append(out, New(t2.start+n, t2.stop+n, t2.skip))
	}
	return out
}

func addCCCO(t1, t2 Triple, g int64) []Triple {
	len1, _ := t1.Len()
	if len1 == 0 {
		return []Triple{t2}
	}
	if len1 == 1 {
		return []Triple{t2.AddConstant(t1.start)}
	}
	lowFull := min(t1.skip, t2.skip)
	if len1 >= lowFull/g {
		return addCOCO(t2, NewOpenStop(t1.start, t1.skip), g)
	}
	out := make([]Triple, 0, len1)
	for n := range t1.Values() {
		out = append(out, t2.AddConstant(n))
	}
	return out
}

func addCCOC(t1, t2 Triple, g int64) []Triple {
	len1, _ := t1.Len()
	if len1 == 0 {
		return []Triple{t2}
	}
	if len1 == 1 {
		return []Triple{t2.AddConstant(t1.start)}
	}
	lowFull := min(t1.skip, t2.skip)
	if len1 >= lowFull/g {
		return addOCOC(t2, NewOpenStart(t1.stop, t1.skip), g)
	}
	out := make([]Triple, 0, len1)
	for n := range t1.Values() {
		out = append(out, t2.AddConstant(n))
	}
	return out
}

// addCOCO yields one fully dense tail progression plus the bounded ramp-up
// progressions below it.
func addCOCO(t1, t2 Triple, g int64) []Triple {
	highFull := max(t1.skip, t2.skip)
	lowFull := min(t1.skip, t2.skip)
	low := lowFull / g
	fullStart := t1.start + t2.start + highFull*(low-1)
	out := []Triple{NewOpenStop(fullStart, g)}
	for i := int64(1); i < low; i++ {
		newStart := fullStart - i*highFull
		q := (fullStart - newStart) / lowFull
		r := (fullStart - newStart) % lowFull
		newStop := newStart + (1+q)*lowFull
		if r == 0 {
			newStop = newStart + q*lowFull
		}
		out = append(out, New(newStart, newStop, lowFull))
	}
	return out
}

func addCOOC(t1, t2 Triple, g int64) []Triple {
	return addOOAny(NewOpen(t1.skip, t1.phase), t2, g)
}

// addOCOC mirrors addCOCO at the top end.
func addOCOC(t1, t2 Triple, g int64) []Triple {
	highFull := max(t1.skip, t2.skip)
	lowFull := min(t1.skip, t2.skip)
	low := lowFull / g
	fullLast := (t1.stop - t1.skip) + (t2.stop - t2.skip) + highFull*(1-low)
	out := []Triple{NewOpenStart(fullLast+g, g)}
	for i := int64(1); i < low; i++ {
		thisLast := fullLast + i*highFull
		q := (thisLast - fullLast) / lowFull
		r := (thisLast - fullLast) % lowFull
		n := q
		if r == 0 {
			n = q - 1
		}
		thisFirst := thisLast - lowFull*n
		out = append(out, New(thisFirst, thisLast+lowFull, lowFull))
	}
	return out
}

func addOOCC(t1, t2 Triple, g int64) []Triple {
	len2, _ := t2.Len()
	if len2 >= t1.skip/g {
		return []Triple{NewOpen(g, t1.phase+t2.phase)}
	}
	out := make([]Triple, 0, len2)
	for n := range t2.Values() {
		out = append(out, NewOpen(t1.skip, t1.phase+n))
	}
	return out
}

func addOOAny(t1, t2 Triple, g int64) []Triple {
	return []Triple{NewOpen(g, t1.phase+t2.phase)}
}
