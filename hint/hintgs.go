package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/triple"
)

// asPixels and asRaw retag a collection between the raw integer basis of
// the operand stack and the 26.6 basis of the pixel registers. The stored
// numerators are 26.6 in both views, so only the tag changes; no scaling
// happens.
func asPixels(c triple.Collection) triple.Collection {
	return triple.NewCollection(basisPixel, c.Triples()...)
}

func asRaw(c triple.Collection) triple.Collection {
	return triple.NewCollection(basisInt, c.Triples()...)
}

func unknownVector() Vector {
	return Vector{triple.Any(basisF2D14), triple.Any(basisF2D14)}
}

// hintSetVectorToAxis covers SVTCA, SPVTCA and SFVTCA. Even opcodes select
// the y axis, odd ones the x axis.
func (in *interp) hintSetVectorToAxis(op Opcode) {
	axis := yAxis()
	if op&1 != 0 {
		axis = xAxis()
	}
	gs := in.st.Graphics
	switch op {
	case OpSVTCAy, OpSVTCAx:
		gs.SetProjectionVector(axis)
		gs.SetFreedomVector(axis)
	case OpSPVTCAy, OpSPVTCAx:
		gs.SetProjectionVector(axis)
	default:
		gs.SetFreedomVector(axis)
	}
}

// hintSetVectorToLine covers SPVTL, SFVTL and SDPVTL: two points are
// popped and the vector is set along (or perpendicular to) the line
// through them. The direction depends on outline coordinates the analysis
// does not track, so the vector becomes unconstrained.
func (in *interp) hintSetVectorToLine(op Opcode) {
	p2, h2, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	p1, h1, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	opString := op.String()
	zone2, ok2 := in.zoneCheck(opString, in.st.Graphics.ZonePointer(2))
	zone1, ok1 := in.zoneCheck(opString, in.st.Graphics.ZonePointer(1))
	if ok2 {
		in.pointCheck(opString, zone2, p1, h1, false)
	}
	if ok1 {
		in.pointCheck(opString, zone1, p2, h2, false)
	}
	gs := in.st.Graphics
	switch op {
	case OpSPVTLpar, OpSPVTLperp:
		gs.SetProjectionVector(unknownVector())
	case OpSFVTLpar, OpSFVTLperp:
		gs.SetFreedomVector(unknownVector())
	default:
		gs.SetDualVector(unknownVector())
		gs.SetProjectionVector(unknownVector())
	}
}

// hintSetVectorFromStack covers SPVFS and SFVFS; x and y are 2.14 values.
func (in *interp) hintSetVectorFromStack(op Opcode) {
	y, _, ok := in.pop()
	if !ok {
		return
	}
	x, _, ok := in.pop()
	if !ok {
		return
	}
	v := Vector{
		X: triple.NewCollection(basisF2D14, x.Triples()...),
		Y: triple.NewCollection(basisF2D14, y.Triples()...),
	}
	if op == OpSPVFS {
		in.st.Graphics.SetProjectionVector(v)
	} else {
		in.st.Graphics.SetFreedomVector(v)
	}
}

// hintGetVector covers GPV and GFV, pushing the x and then the y component
// as raw 2.14 values.
func (in *interp) hintGetVector(op Opcode) {
	v := in.st.Graphics.ProjectionVector()
	if op == OpGFV {
		v = in.st.Graphics.FreedomVector()
	}
	in.push(asRaw(v.X), in.opHistory(op))
	in.push(asRaw(v.Y), in.opHistory(op))
}

func (in *interp) hintSFVTPV() {
	in.st.Graphics.SetFreedomVector(in.st.Graphics.ProjectionVector())
}

func (in *interp) hintSetRefPt(which int) {
	p, h, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	in.st.Graphics.SetReferencePoint(which, p)
	in.st.SetRefPtHistory(which, h)
}

func (in *interp) hintSetZonePointer(op Opcode) {
	zp, _, ok := in.popAs(ArgKindZone)
	if !ok {
		return
	}
	in.zoneCheck(op.String(), zp)
	if op == OpSZPS {
		in.st.Graphics.SetAllZonePointers(zp)
	} else {
		in.st.Graphics.SetZonePointer(int(op-OpSZP0), zp)
	}
}

func (in *interp) hintSLOOP() {
	n, _, ok := in.popAs(ArgKindCount)
	if !ok {
		return
	}
	if hi, bounded := n.Max(); bounded && hi < 1 {
		in.fail(hinting.SeverityError, "V0513",
			"In %s (PC %d) the value %d is too low.", in.prog.Name, in.st.PC, hi)
		return
	}
	in.st.Graphics.SetLoop(n)
}

func (in *interp) hintSMD() {
	d, _, ok := in.pop()
	if !ok {
		return
	}
	in.st.Graphics.SetMinimumDistance(asPixels(d))
}

func (in *interp) hintSCVTCI() {
	d, _, ok := in.pop()
	if !ok {
		return
	}
	in.st.Graphics.SetCVTCutIn(asPixels(d))
}

func (in *interp) hintSSWCI() {
	d, _, ok := in.pop()
	if !ok {
		return
	}
	in.st.Graphics.SetSingleWidthCutIn(asPixels(d))
}

func (in *interp) hintSSW() {
	d, _, ok := in.pop()
	if !ok {
		return
	}
	in.st.Graphics.SetSingleWidthValue(asPixels(d))
}

func (in *interp) hintSDB() {
	n, _, ok := in.pop()
	if !ok {
		return
	}
	in.check8Bit("SDB", n)
	in.st.Graphics.SetDeltaBase(n)
}

func (in *interp) hintSDS() {
	n, _, ok := in.pop()
	if !ok {
		return
	}
	if hi, bounded := n.Max(); bounded && hi > 6 {
		in.fail(hinting.SeverityError, "V0513",
			"SDS hint in %s (PC %d) has a shift value above 6.",
			in.prog.Name, in.st.PC)
	}
	in.st.Graphics.SetDeltaShift(n)
}

func (in *interp) hintSCANCTRL() {
	n, _, ok := in.pop()
	if !ok {
		return
	}
	in.check16Bit("SCANCTRL", n)
	in.st.Graphics.SetScanControl(n)
}

func (in *interp) hintSCANTYPE() {
	n, _, ok := in.pop()
	if !ok {
		return
	}
	in.check16Bit("SCANTYPE", n)
	in.st.Graphics.SetScanType(n)
}

// hintINSTCTRL is only legal in the pre-program.
func (in *interp) hintINSTCTRL() {
	if _, _, ok := in.pop(); !ok { // selector
		return
	}
	value, _, ok := in.pop()
	if !ok {
		return
	}
	if !in.ctx.InPrep {
		in.fail(hinting.SeverityError, "E6059",
			"INSTCTRL hint in %s (PC %d) is only allowed in the pre-program.",
			in.prog.Name, in.st.PC)
		return
	}
	in.st.Graphics.SetInstructControl(value)
}
