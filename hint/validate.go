package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

// interp drives one program body over one state. Handlers are methods on
// interp so they can reach the program, the state and the context without
// threading parameters.
type interp struct {
	prog  *Program
	st    *State
	ctx   *Context
	jumps int
}

func (in *interp) site() CallSite {
	return CallSite{Program: in.prog.Name, PC: in.st.PC}
}

// fail reports a diagnostic; ERROR or worse also fails the validation
// verdict of the state.
func (in *interp) fail(sev hinting.Severity, code, template string, args ...interface{}) {
	in.ctx.report(sev, code, template, args...)
	if sev >= hinting.SeverityError {
		in.st.FailValidation()
	}
}

// halt stops analysis of the current program body.
func (in *interp) halt() {
	in.st.PC = doNotProceedPC
}

// push appends a value and its provenance to the lock-step stacks.
func (in *interp) push(v triple.Collection, h history.Entry) {
	in.st.Push(v, h)
	if in.ctx.ArgTracer != nil {
		in.ctx.ArgTracer.NotePush(in.st.Depth())
	}
}

// pop removes the top stack slot, consuming it as a plain value.
func (in *interp) pop() (triple.Collection, history.Entry, bool) {
	return in.popAs(ArgKindValue)
}

// popAs removes the top stack slot and records the kind the handler
// consumes it as. On underflow it reports E6046, fails validation and
// halts the body; the caller must bail out when ok is false.
func (in *interp) popAs(kind string) (triple.Collection, history.Entry, bool) {
	v, h, ok := in.st.Pop()
	if !ok {
		in.fail(hinting.SeverityCritical, "E6046",
			"Stack underflow in %s (PC %d).", in.prog.Name, in.st.PC)
		in.halt()
		return triple.Collection{}, nil, false
	}
	if in.ctx.ArgTracer != nil {
		in.ctx.ArgTracer.NotePop(in.st.Depth(), kind, in.opString())
	}
	return v, h, true
}

// opString names the opcode currently being interpreted.
func (in *interp) opString() string {
	if in.st.PC >= 0 && in.st.PC < len(in.prog.Code) {
		return in.prog.Code[in.st.PC].Opcode.String()
	}
	return ""
}

// popN removes n slots, top first.
func (in *interp) popN(n int) ([]triple.Collection, []history.Entry, bool) {
	vs := make([]triple.Collection, n)
	hs := make([]history.Entry, n)
	for i := 0; i < n; i++ {
		v, h, ok := in.pop()
		if !ok {
			return nil, nil, false
		}
		vs[i], hs[i] = v, h
	}
	return vs, hs, true
}

// toNumber reduces a collection to its single member. Multi-valued or
// open operands report V0511 and fail.
func (in *interp) toNumber(c triple.Collection) (int64, bool) {
	n, ok := c.ToNumber()
	if !ok {
		in.fail(hinting.SeverityError, "V0511",
			"In %s (PC %d) a Collection value was used, but is not "+
				"supported here.", in.prog.Name, in.st.PC)
		return 0, false
	}
	return n, true
}

// toNumberMin is toNumber plus a lower-bound check, reporting V0513.
func (in *interp) toNumberMin(c triple.Collection, low int64) (int64, bool) {
	n, ok := in.toNumber(c)
	if !ok {
		return 0, false
	}
	if n < low {
		in.fail(hinting.SeverityError, "V0513",
			"In %s (PC %d) the value %d is too low.", in.prog.Name, in.st.PC, n)
		return 0, false
	}
	return n, true
}

// indexValues enumerates an index operand. Open or oversized sets report
// V0511 and fail.
func (in *interp) indexValues(c triple.Collection) ([]int64, bool) {
	vals, ok := c.Enumerate(enumCap)
	if !ok {
		in.fail(hinting.SeverityError, "V0511",
			"In %s (PC %d) a Collection value was used, but is not "+
				"supported here.", in.prog.Name, in.st.PC)
		return nil, false
	}
	return vals, true
}

// enumCap bounds how many members of an index operand the handlers will
// follow individually.
const enumCap = 64

// check16Bit reports E6053 for members that do not fit in 16 bits. Open
// collections pass unchecked.
func (in *interp) check16Bit(opString string, c triple.Collection) {
	if c.IsOpen() {
		return
	}
	lo, _ := c.Min()
	hi, _ := c.Max()
	if lo < -32768 || hi > 65535 {
		in.fail(hinting.SeverityError, "E6053",
			"%s hint in %s (PC %d) has value %s that does not fit in 16 bits.",
			opString, in.prog.Name, in.st.PC, c)
	}
}

// check8Bit reports E6054 for members that do not fit in 8 bits.
func (in *interp) check8Bit(opString string, c triple.Collection) {
	if c.IsOpen() {
		return
	}
	lo, _ := c.Min()
	hi, _ := c.Max()
	if lo < 0 || hi > 255 {
		in.fail(hinting.SeverityError, "E6054",
			"%s hint in %s (PC %d) has value %s that does not fit in 8 bits.",
			opString, in.prog.Name, in.st.PC, c)
	}
}

// zoneCheck validates a zone-pointer collection: every member must be 0 or
// 1 (E6031), and the pre-program may only use the twilight zone (E6040).
// The returned zone is 1 (glyph) when the pointer may reference it, else
// 0; ok is false when the check failed validation.
func (in *interp) zoneCheck(opString string, zp triple.Collection) (int, bool) {
	vals, enumerable := zp.Enumerate(4)
	hasGlyph, badValue := false, !enumerable || len(vals) == 0
	for _, v := range vals {
		switch v {
		case 1:
			hasGlyph = true
		case 0:
		default:
			badValue = true
		}
	}
	if badValue {
		in.fail(hinting.SeverityError, "E6031",
			"%s opcode in %s (PC %d) refers to a zone that is neither 0 nor 1.",
			opString, in.prog.Name, in.st.PC)
		return 1, false
	}
	if hasGlyph && in.ctx.InPrep {
		in.fail(hinting.SeverityError, "E6040",
			"%s opcode in the pre-program (PC %d) uses the glyph zone. "+
				"The pre-program may only use the twilight zone.",
			opString, in.st.PC)
		return 0, false
	}
	if hasGlyph {
		return 1, true
	}
	return 0, true
}

// pointCheck validates point indices against the zone's point count and
// records their usage. moving marks the points as moved rather than merely
// read. ok is false when a validation error occurred.
func (in *interp) pointCheck(opString string, zone int, points triple.Collection, h history.Entry, moving bool) bool {
	vals, enumerable := points.Enumerate(enumCap)
	if !enumerable {
		in.fail(hinting.SeverityError, "V0801",
			"%s opcode in %s (PC %d) uses an uninitialized or otherwise "+
				"bad point index.", opString, in.prog.Name, in.st.PC)
		return false
	}
	ok := true
	for _, point := range vals {
		if point < 0 {
			in.fail(hinting.SeverityError, "V0531",
				"%s opcode in %s (PC %d) refers to negative or non-integer "+
					"point index %d.", opString, in.prog.Name, in.st.PC, point)
			ok = false
			continue
		}
		if zone == 0 {
			if in.st.TwilightCount > 0 && point >= int64(in.st.TwilightCount) {
				in.fail(hinting.SeverityError, "E6039",
					"%s opcode in %s (PC %d) is hinting point %d in the "+
						"twilight zone, which does not exist.",
					opString, in.prog.Name, in.st.PC, point)
				ok = false
				continue
			}
			in.st.Statistics.NoteUsage(ResourceTwilightPoint, int(point), h)
			continue
		}
		count := int64(in.st.PointCount)
		switch {
		case !in.st.InGlyph || point < count:
			// in prep/fpgm isolation the glyph is unknown; only record
		case point == count || point == count+1:
			// the phantom origin and advance points
			if moving {
				if point == count {
					in.fail(hinting.SeverityInfo, "V0529",
						"%s opcode in %s (PC %d) hints the phantom origin "+
							"point.", opString, in.prog.Name, in.st.PC)
				}
				if !in.st.Graphics.FreedomVector().IsXAxis() {
					in.fail(hinting.SeverityWarning, "V0792",
						"%s opcode in %s (PC %d) moves a phantom point with "+
							"a freedom vector that is not the x-axis.",
						opString, in.prog.Name, in.st.PC)
				}
			}
		default:
			in.fail(hinting.SeverityWarning, "V0530",
				"%s opcode in %s (PC %d) is hinting point %d, which does "+
					"not exist for this glyph.",
				opString, in.prog.Name, in.st.PC, point)
		}
		in.st.Statistics.NoteUsage(ResourcePoint, int(point), h)
		if moving {
			in.st.Statistics.NotePointMoved(int(point))
		}
	}
	return ok
}

// cvtCheck validates CVT indices and records their usage. Invalid indices
// report E6058; the surviving indices are returned.
func (in *interp) cvtCheck(opString string, c triple.Collection, h history.Entry) ([]int64, bool) {
	vals, ok := in.indexValues(c)
	if !ok {
		return nil, false
	}
	var valid []int64
	for _, i := range vals {
		if i < 0 || i >= int64(len(in.st.CVT)) {
			in.fail(hinting.SeverityError, "E6058",
				"%s opcode in %s (PC %d) refers to CVT index %d, which "+
					"does not exist.", opString, in.prog.Name, in.st.PC, i)
			continue
		}
		in.st.Statistics.NoteUsage(ResourceCVT, int(i), h)
		valid = append(valid, i)
	}
	return valid, len(valid) > 0
}

// refPtHistoryOrSynth returns the provenance of a reference point,
// synthesizing an implicit-zero entry on first use.
func (in *interp) refPtHistoryOrSynth(which int) history.Entry {
	if h := in.st.RefPtHistory(which); h != nil {
		return h
	}
	h := history.NewRefPt(in.prog.Name, in.st.PC, which)
	in.st.SetRefPtHistory(which, h)
	return h
}

// storageHistoryOrSynth is the analog for storage slots.
func (in *interp) storageHistoryOrSynth(index int) history.Entry {
	if h := in.st.StorageHistory(index); h != nil {
		return h
	}
	h := history.NewStorage(in.prog.Name, in.st.PC, index)
	return h
}

// opHistory builds the provenance entry for the result of the current
// instruction.
func (in *interp) opHistory(op Opcode, inputs ...history.Entry) history.Entry {
	return history.NewOp(in.prog.Name, in.st.PC, byte(op), op.String(), inputs...)
}
