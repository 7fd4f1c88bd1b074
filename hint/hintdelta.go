package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/triple"
)

// hintDELTAP covers the three point-delta exception opcodes. The popped
// count is followed by that many (arg, point) pairs; the points are
// validated and marked as moved. The per-point shifts apply at single
// ppem sizes only, so they have no set-level effect on the analysis.
func (in *interp) hintDELTAP(op Opcode) {
	n, _, ok := in.popAs(ArgKindCount)
	if !ok {
		return
	}
	count, ok := in.toNumberMin(n, 0)
	if !ok {
		return
	}
	opString := op.String()
	if count == 0 {
		in.fail(hinting.SeverityWarning, "V0810",
			"%s hint in %s (PC %d) has a count of zero and thus has "+
				"no effect.", opString, in.prog.Name, in.st.PC)
		return
	}
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(0))
	args := argOrder{}
	for i := int64(0); i < count; i++ {
		p, hp, ok := in.popAs(ArgKindPoint)
		if !ok {
			return
		}
		arg, _, ok := in.pop()
		if !ok {
			return
		}
		in.check8Bit(opString, arg)
		args.observe(arg)
		if zoneOK {
			in.pointCheck(opString, zone, p, hp, true)
		}
	}
	in.checkDeltaOrder(opString, args)
}

// argOrder watches the exception arguments of one delta hint as they are
// popped. Tools emit the (arg, target) pairs sorted by argument, so the
// pop order, being the reverse, must be non-increasing.
type argOrder struct {
	prev     int64
	havePrev bool
	unsorted bool
}

func (o *argOrder) observe(arg triple.Collection) {
	a, single := arg.ToNumber()
	if !single {
		return
	}
	if o.havePrev && a > o.prev {
		o.unsorted = true
	}
	o.prev, o.havePrev = a, true
}

func (in *interp) checkDeltaOrder(opString string, args argOrder) {
	if !args.unsorted {
		return
	}
	in.fail(hinting.SeverityWarning, "V0809",
		"%s hint in %s (PC %d) has exception arguments that are not "+
			"sorted.", opString, in.prog.Name, in.st.PC)
}

// hintDELTAC is the CVT-delta analog of hintDELTAP. Exception arguments
// widen the targeted CVT entries, since the analysis covers every ppem
// size at once.
func (in *interp) hintDELTAC(op Opcode) {
	n, _, ok := in.popAs(ArgKindCount)
	if !ok {
		return
	}
	count, ok := in.toNumberMin(n, 0)
	if !ok {
		return
	}
	opString := op.String()
	if count == 0 {
		in.fail(hinting.SeverityWarning, "V0810",
			"%s hint in %s (PC %d) has a count of zero and thus has "+
				"no effect.", opString, in.prog.Name, in.st.PC)
		return
	}
	deltaShift, shiftSingle := in.st.Graphics.DeltaShift().ToNumber()
	args := argOrder{}
	for i := int64(0); i < count; i++ {
		c, hc, ok := in.popAs(ArgKindCVT)
		if !ok {
			return
		}
		arg, _, ok := in.pop()
		if !ok {
			return
		}
		in.check8Bit(opString, arg)
		args.observe(arg)
		indices, any := in.cvtCheck(opString, c, hc)
		if !any {
			continue
		}
		if !shiftSingle {
			in.fail(hinting.SeverityWarning, "V0511",
				"In %s (PC %d) a Collection value was used, but is not "+
					"supported here.", in.prog.Name, in.st.PC)
			deltaShift = 3
		}
		// the magnitude of a delta step is 1/2^deltaShift pixel, up to 8
		// steps in either direction
		step := int64(64) >> uint(deltaShift)
		deltas := triple.NewCollection(basisPixel,
			triple.New(-8*step, 8*step+step, step))
		for _, idx := range indices {
			in.st.CVT[idx] = in.st.CVT[idx].Add(deltas)
		}
	}
	in.checkDeltaOrder(opString, args)
}
