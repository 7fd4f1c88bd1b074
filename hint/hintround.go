package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/triple"
)

// round applies the current round state to a set of 26.6 values. Negative
// values are reflected, rounded and reflected back, matching the symmetric
// rounding of the rasterizer. A period of zero means rounding is off and
// the value passes through. The engraving compensation for all three
// distance colors is zero, so color does not alter the result.
func (in *interp) round(c triple.Collection, color Color) triple.Collection {
	rs := in.st.Graphics.Round()
	periods, ok1 := rs.Period.Enumerate(8)
	phases, ok2 := rs.Phase.Enumerate(8)
	thresholds, ok3 := rs.Threshold.Enumerate(8)
	if !ok1 || !ok2 || !ok3 {
		return triple.Any(c.Basis())
	}
	neg, nonneg := c.SignedParts()
	var result triple.Collection
	first := true
	for _, p := range periods {
		for _, phi := range phases {
			for _, th := range thresholds {
				var r triple.Collection
				if p == 0 {
					r = c
				} else {
					if th == thresholdMax {
						th = p - 1
					}
					r = roundPart(nonneg, p, phi, th).
						Union(roundPart(neg.Neg(), p, phi, th).Neg())
				}
				if first {
					result, first = r, false
				} else {
					result = result.Union(r)
				}
			}
		}
	}
	return result
}

// thresholdMax marks the "period minus one grain" threshold selector.
const thresholdMax = -1

func roundPart(c triple.Collection, period, phase, threshold int64) triple.Collection {
	if c.IsEmpty() {
		return c
	}
	// phase + floor((x - phase + threshold) / period) * period
	return c.AddConstant(threshold - phase).
		FloorDivConstant(period).
		MulConstant(period).
		AddConstant(phase)
}

// hintSetRoundMode covers the six fixed round-mode opcodes.
func (in *interp) hintSetRoundMode(op Opcode) {
	px := func(v int64) triple.Collection { return triple.FromValue(basisPixel, v) }
	var rs RoundState
	switch op {
	case OpRTG:
		rs = roundToGrid()
	case OpRTHG:
		rs = RoundState{px(64), px(32), px(32)}
	case OpRTDG:
		rs = RoundState{px(32), px(0), px(16)}
	case OpRDTG:
		rs = RoundState{px(64), px(0), px(0)}
	case OpRUTG:
		rs = RoundState{px(64), px(0), px(63)}
	case OpROFF:
		rs = RoundState{px(0), px(0), px(0)}
	}
	in.st.Graphics.SetRound(rs)
}

// hintSROUND covers SROUND and S45ROUND. The popped byte selects period,
// phase and threshold relative to the grid period: 64 grains, or 45 for
// the 45-degree variant.
func (in *interp) hintSROUND(op Opcode) {
	n, _, ok := in.pop()
	if !ok {
		return
	}
	gridPeriod := int64(64)
	if op == OpS45ROUND {
		gridPeriod = 45
	}
	selectors, ok := in.indexValues(n)
	if !ok {
		return
	}
	var periods, phases, thresholds []int64
	for _, sel := range selectors {
		period, valid := sroundPeriod(gridPeriod, sel)
		if !valid {
			in.fail(hinting.SeverityError, "E6060",
				"%s hint in %s (PC %d) uses the reserved period selector.",
				op, in.prog.Name, in.st.PC)
			continue
		}
		periods = append(periods, period)
		phases = append(phases, (sel>>4&3)*period/4)
		if t := sel & 0x0F; t == 0 {
			thresholds = append(thresholds, thresholdMax)
		} else {
			thresholds = append(thresholds, (t-4)*period/8)
		}
	}
	if len(periods) == 0 {
		return
	}
	in.st.Graphics.SetRound(RoundState{
		Period:    triple.FromValues(basisPixel, periods...),
		Phase:     triple.FromValues(basisPixel, phases...),
		Threshold: triple.FromValues(basisPixel, thresholds...),
	})
}

func sroundPeriod(gridPeriod, selector int64) (int64, bool) {
	switch selector >> 6 & 3 {
	case 0:
		return gridPeriod / 2, true
	case 1:
		return gridPeriod, true
	case 2:
		return gridPeriod * 2, true
	}
	return 0, false
}

// hintROUND covers the ROUND family, including the reserved color slot.
func (in *interp) hintROUND(op Opcode) {
	v, h, ok := in.pop()
	if !ok {
		return
	}
	color := op.roundColor()
	if color == ColorBad {
		in.fail(hinting.SeverityError, "E6060",
			"%s hint in %s (PC %d) uses the reserved distance color.",
			op, in.prog.Name, in.st.PC)
		color = ColorGray
	}
	if op >= OpNROUND {
		// NROUND only applies the engraving compensation, which is zero
		in.push(v, in.opHistory(op, h))
		return
	}
	in.push(in.round(v, color), in.opHistory(op, h))
}
