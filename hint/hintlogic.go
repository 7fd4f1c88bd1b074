package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/triple"
)

// hintCompare covers the six relational opcodes. The result is the set of
// booleans the comparison can take: {0}, {1}, or {0, 1} when the operand
// sets make it undetermined.
func (in *interp) hintCompare(op Opcode) {
	e2, h2, ok := in.pop()
	if !ok {
		return
	}
	e1, h1, ok := in.pop()
	if !ok {
		return
	}
	var result triple.Collection
	switch op {
	case OpLT:
		result = e1.CompareLess(e2)
	case OpLTEQ:
		result = e1.CompareLessEqual(e2)
	case OpGT:
		result = e1.CompareGreater(e2)
	case OpGTEQ:
		result = e1.CompareGreaterEqual(e2)
	case OpEQ:
		result = e1.CompareEqual(e2)
	case OpNEQ:
		result = e1.CompareNotEqual(e2)
	}
	in.push(result, in.opHistory(op, h1, h2))
}

// hintBoolean covers AND and OR over the encompassed booleans of both
// operands; any nonzero member counts as true.
func (in *interp) hintBoolean(op Opcode) {
	e2, h2, ok := in.pop()
	if !ok {
		return
	}
	e1, h1, ok := in.pop()
	if !ok {
		return
	}
	f1, t1 := e1.EncompassedBooleans()
	f2, t2 := e2.EncompassedBooleans()
	var canTrue, canFalse bool
	if op == OpAND {
		canTrue = t1 && t2
		canFalse = f1 || f2
	} else {
		canTrue = t1 || t2
		canFalse = f1 && f2
	}
	in.push(boolResult(canFalse, canTrue), in.opHistory(op, h1, h2))
}

func (in *interp) hintNOT() {
	v, h, ok := in.pop()
	if !ok {
		return
	}
	hasFalse, hasTrue := v.EncompassedBooleans()
	in.push(boolResult(hasTrue, hasFalse), in.opHistory(OpNOT, h))
}

func boolResult(canFalse, canTrue bool) triple.Collection {
	switch {
	case canTrue && canFalse:
		return triple.FromValues(basisInt, 0, 1)
	case canTrue:
		return triple.FromValue(basisInt, 1)
	default:
		return triple.FromValue(basisInt, 0)
	}
}

// hintParity covers ODD and EVEN: the operand is rounded with the current
// round state, then the parity of the resulting pixel count is tested.
func (in *interp) hintParity(op Opcode) {
	v, h, ok := in.pop()
	if !ok {
		return
	}
	rounded := in.round(v, ColorGray)
	pixels := rounded.FloorDivConstant(64)
	var hasOdd, hasEven bool
	if vals, enumerable := pixels.Enumerate(enumCap); enumerable {
		for _, p := range vals {
			if p&1 != 0 {
				hasOdd = true
			} else {
				hasEven = true
			}
		}
	} else {
		hasOdd, hasEven = true, true
	}
	if op == OpODD {
		in.push(boolResult(hasEven, hasOdd), in.opHistory(op, h))
	} else {
		in.push(boolResult(hasOdd, hasEven), in.opHistory(op, h))
	}
}

// hintGETINFO pops the selector and pushes an unconstrained nonnegative
// result: the engine version and rasterizer flags vary by renderer, and
// the analysis covers all of them.
func (in *interp) hintGETINFO() {
	_, h, ok := in.pop()
	if !ok {
		return
	}
	result := triple.NewCollection(basisInt, triple.NewOpenStop(0, 1))
	in.push(result, in.opHistory(OpGETINFO, h))
}

// hintMeasure covers MPPEM and MPS, pushing the symbolic rasterizer input.
func (in *interp) hintMeasure(op Opcode, value triple.Collection) {
	in.push(value, in.opHistory(op))
}

func (in *interp) hintDEBUG() {
	in.pop()
}

// hintDeprecatedPop covers SANGW and AA, which consume one value and have
// had no effect since the earliest rasterizers.
func (in *interp) hintDeprecatedPop(op Opcode) {
	if _, _, ok := in.pop(); !ok {
		return
	}
	in.fail(hinting.SeverityInfo, "V0806",
		"%s hint in %s (PC %d) is deprecated and has no effect.",
		op, in.prog.Name, in.st.PC)
}
