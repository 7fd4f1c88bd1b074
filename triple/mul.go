package triple

// Multiplication of two Triples. Several of the open-ended cases suffer
// from "prime fallout": the true product set would need progressions whose
// skips are themselves progressions. Those cases return a superset of the
// true answer, which is the sound direction for an abstract domain.

// Mul returns Triples covering {x·y : x ∈ t, y ∈ other}. The result may be
// a proper superset for open-ended operands.
func (t Triple) Mul(other Triple) []Triple {
	k1 := kindOf(t)
	k2 := kindOf(other)
	switch {
	case k1 == kindCC && k2 == kindCC:
		return mulCCCC(t, other)
	case k1 == kindCC && (k2 == kindCO || k2 == kindOC):
		return mulCCHalfOpen(t, other)
	case (k1 == kindCO || k1 == kindOC) && k2 == kindCC:
		return mulCCHalfOpen(other, t)
	case k1 == kindCO && k2 == kindCO:
		return mulCOCO(t, other)
	case k1 == kindCO && k2 == kindOC:
		return mulCOOC(t, other)
	case k1 == kindOC && k2 == kindCO:
		return mulCOOC(other, t)
	case k1 == kindOC && k2 == kindOC:
		return mulOCOC(t, other)
	case k1 == kindOO && k2 == kindCC:
		return mulOOCC(t, other)
	case k1 == kindCC && k2 == kindOO:
		return mulOOCC(other, t)
	case k1 == kindOO && k2 == kindCO:
		return mulOOCO(t, other)
	case k1 == kindCO && k2 == kindOO:
		return mulOOCO(other, t)
	case k1 == kindOO && k2 == kindOC:
		return mulOOOC(t, other)
	case k1 == kindOC && k2 == kindOO:
		return mulOOOC(other, t)
	}
	return mulOOOO(t, other)
}

// phaseGCF is gcf(skip, phase), or skip itself for phase zero.
func phaseGCF(t Triple) int64 {
	if t.phase == 0 {
		return t.skip
	}
	return gcf(t.skip, t.phase)
}

func mulCCCC(t1, t2 Triple) []Triple {
	len1, _ := t1.Len()
	len2, _ := t2.Len()
	if len1 > len2 {
		t1, t2 = t2, t1
		len1 = len2
	}
	out := make([]Triple, 0, len1)
	for n := range t1.Values() {
		out = append(out, t2.MulConstant(n))
	}
	return out
}

// mulCCHalfOpen multiplies a bounded Triple with a singly-open one,
// element by bounded element.
func mulCCHalfOpen(cc, other Triple) []Triple {
	len1, _ := cc.Len()
	out := make([]Triple, 0, len1)
	for n := range cc.Values() {
		out = append(out, other.MulConstant(n))
	}
	if out == nil {
		out = []Triple{{skip: 1}}
	}
	return out
}

func mulCOCO(t1, t2 Triple) []Triple {
	g1 := phaseGCF(t1)
	g2 := phaseGCF(t2)
	if t1.start < 0 || t2.start < 0 {
		return []Triple{NewOpen(g1*g2, 0)}
	}
	return []Triple{NewOpenStop(t1.start*t2.start, g1*g2)}
}

func mulCOOC(t1, t2 Triple) []Triple {
	g1 := phaseGCF(t1)
	g2 := phaseGCF(t2)
	newSkip := g1*g2
	if t1.start >= 0 && t2.stop-t2.skip < 0 {
		return []Triple{NewOpenStart(t1.start*(t2.stop-t2.skip)+newSkip, newSkip)}
	}
	return []Triple{NewOpen(newSkip, 0)}
}

func mulOCOC(t1, t2 Triple) []Triple {
	g1 := phaseGCF(t1)
	g2 := phaseGCF(t2)
	selfLast := t1.stop - t1.skip
	otherLast := t2.stop - t2.skip
	if selfLast > 0 || otherLast > 0 {
		return []Triple{NewOpen(g1*g2, 0)}
	}
	return []Triple{NewOpenStop(selfLast*otherLast, g1*g2)}
}

func mulOOCC(t1, t2 Triple) []Triple {
	len2, _ := t2.Len()
	out := make([]Triple, 0, len2)
	for n := range t2.Values() {
		out = append(out, t1.MulConstant(n))
	}
	if out == nil {
		out = []Triple{{skip: 1}}
	}
	return out
}

func mulOOCO(t1, t2 Triple) []Triple {
	a, b, c, d := t1.phase, t1.skip, t2.start, t2.skip
	if a == 0 {
		if c == 0 {
			return []Triple{NewOpen(b*d, 0)}
		}
		g := gcf(c, d)
		cNew := c / g
		dNew := d / g
		if (1-cNew)%dNew == 0 || (-1-cNew)%dNew == 0 {
			return []Triple{NewOpen(b*g, 0)}
		}
		return []Triple{NewOpen(b, 0)}
	}
	if c == 0 {
		return []Triple{NewOpen(d, 0)}
	}
	return []Triple{NewOpen(1, 0)}
}

func mulOOOC(t1, t2 Triple) []Triple {
	a, b, c, d := t1.phase, t1.skip, t2.stop-t2.skip, t2.skip
	if a == 0 {
		if c == 0 {
			return []Triple{NewOpen(b*d, 0)}
		}
		g := gcf(c, d)
		cNew := c / g
		dNew := d / g
		if (1-cNew)%dNew == 0 || (-1-cNew)%dNew == 0 {
			return []Triple{NewOpen(b*g, 0)}
		}
		return []Triple{NewOpen(b, 0)}
	}
	if c == 0 {
		return []Triple{NewOpen(d, 0)}
	}
	return []Triple{NewOpen(1, 0)}
}

func mulOOOO(t1, t2 Triple) []Triple {
	if t1.phase == 0 {
		if t2.phase == 0 {
			return []Triple{NewOpen(t1.skip*t2.skip, 0)}
		}
		b := t1.skip * t2.phase
		c := t1.skip * t2.skip
		newSkip := gcf(b, c)
		b /= newSkip
		c /= newSkip
		if (1-b)%c == 0 || (-1-b)%c == 0 {
			return []Triple{NewOpen(newSkip, 0)}
		}
		return []Triple{NewOpen(1, 0)}
	}
	if t2.phase == 0 {
		b := t2.skip * t1.phase
		c := t2.skip * t1.skip
		newSkip := gcf(b, c)
		b /= newSkip
		c /= newSkip
		if (1-b)%c == 0 || (-1-b)%c == 0 {
			return []Triple{NewOpen(newSkip, 0)}
		}
	}
	// (a+bi)(c+dj) = ac + f·(xi + yj + zij) for the factored-out f
	a, b, c, d := t1.phase, t1.skip, t2.phase, t2.skip
	x, y, z := b*c, a*d, b*d
	f := gcf(gcf(x, y), z)
	x /= f
	y /= f
	z /= f
	if x == 1 || x == -1 || y == 1 || y == -1 {
		return []Triple{NewOpen(f, a*c)}
	}
	if (1-y)%z == 0 || (-1-y)%z == 0 || (1-x)%z == 0 || (-1-x)%z == 0 {
		return []Triple{NewOpen(f, a*c)}
	}
	return []Triple{NewOpen(1, 0)}
}
