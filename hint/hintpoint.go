package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

// loopCount resolves the loop register for the looping point opcodes. A
// multi-valued loop counter degrades to its smallest member, so that the
// analysis never pops more slots than the hint author provided for.
func (in *interp) loopCount(op Opcode) int {
	loop := in.st.Graphics.Loop()
	if n, single := loop.ToNumber(); single {
		return int(n)
	}
	in.fail(hinting.SeverityWarning, "V0511",
		"In %s (PC %d) a Collection value was used, but is not "+
			"supported here.", in.prog.Name, in.st.PC)
	if lo, bounded := loop.Min(); bounded && lo > 0 {
		return int(lo)
	}
	return 1
}

// loopPoints pops loop-many point operands from the stack, validates them
// against the zone selected by the given zone pointer, and resets the loop
// register.
func (in *interp) loopPoints(op Opcode, zonePointer int, moving bool) {
	count := in.loopCount(op)
	opString := op.String()
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(zonePointer))
	for i := 0; i < count; i++ {
		p, h, ok := in.popAs(ArgKindPoint)
		if !ok {
			return
		}
		if zoneOK {
			in.pointCheck(opString, zone, p, h, moving)
		}
	}
	in.st.Graphics.ResetLoop()
}

func (in *interp) hintMDAP(op Opcode) {
	p, h, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	opString := op.String()
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(0))
	if zoneOK {
		in.pointCheck(opString, zone, p, h, true)
	}
	gs := in.st.Graphics
	gs.SetReferencePoint(0, p)
	gs.SetReferencePoint(1, p)
	in.st.SetRefPtHistory(0, h)
	in.st.SetRefPtHistory(1, h)
}

func (in *interp) hintMIAP(op Opcode) {
	n, hn, ok := in.popAs(ArgKindCVT)
	if !ok {
		return
	}
	p, hp, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	opString := op.String()
	in.cvtCheck(opString, n, hn)
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(0))
	if zoneOK {
		in.pointCheck(opString, zone, p, hp, true)
	}
	gs := in.st.Graphics
	gs.SetReferencePoint(0, p)
	gs.SetReferencePoint(1, p)
	in.st.SetRefPtHistory(0, hp)
	in.st.SetRefPtHistory(1, hp)
}

// hintMDRP covers the 32 MDRP variants: move direct relative point.
func (in *interp) hintMDRP(op Opcode) {
	p, h, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	setRP0, _, _, color := op.moveFlags()
	if color == ColorBad {
		in.fail(hinting.SeverityError, "E6060",
			"%s hint in %s (PC %d) uses the reserved distance color.",
			op, in.prog.Name, in.st.PC)
	}
	opString := op.String()
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(1))
	if zoneOK {
		in.pointCheck(opString, zone, p, h, true)
	}
	in.moveRelative(p, h, setRP0)
}

// hintMIRP covers the 32 MIRP variants: move indirect relative point, with
// the distance taken from the CVT.
func (in *interp) hintMIRP(op Opcode) {
	n, hn, ok := in.popAs(ArgKindCVT)
	if !ok {
		return
	}
	p, hp, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	setRP0, _, _, color := op.moveFlags()
	if color == ColorBad {
		in.fail(hinting.SeverityError, "E6060",
			"%s hint in %s (PC %d) uses the reserved distance color.",
			op, in.prog.Name, in.st.PC)
	}
	opString := op.String()
	in.cvtCheck(opString, n, hn)
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(1))
	if zoneOK {
		in.pointCheck(opString, zone, p, hp, true)
	}
	in.moveRelative(p, hp, setRP0)
}

// moveRelative applies the reference point shuffle shared by MDRP, MIRP
// and MSIRP: RP1 takes RP0's old value, RP2 the moved point, and RP0 the
// moved point as well when the opcode requests it.
func (in *interp) moveRelative(p triple.Collection, h history.Entry, setRP0 bool) {
	gs := in.st.Graphics
	gs.SetReferencePoint(1, gs.ReferencePoint(0))
	in.st.SetRefPtHistory(1, in.st.RefPtHistory(0))
	gs.SetReferencePoint(2, p)
	in.st.SetRefPtHistory(2, h)
	if setRP0 {
		gs.SetReferencePoint(0, p)
		in.st.SetRefPtHistory(0, h)
	}
}

func (in *interp) hintMSIRP(op Opcode) {
	_, _, ok := in.pop() // distance
	if !ok {
		return
	}
	p, hp, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	opString := op.String()
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(1))
	if zoneOK {
		in.pointCheck(opString, zone, p, hp, true)
	}
	in.moveRelative(p, hp, op == 0x3B)
}

func (in *interp) hintALIGNRP() {
	in.loopPoints(OpALIGNRP, 1, true)
}

func (in *interp) hintIP() {
	in.loopPoints(OpIP, 2, true)
}

func (in *interp) hintSHP(op Opcode) {
	in.loopPoints(op, 2, true)
}

func (in *interp) hintSHPIX() {
	if _, _, ok := in.pop(); !ok { // shift amount
		return
	}
	in.loopPoints(OpSHPIX, 2, true)
}

func (in *interp) hintSHC(op Opcode) {
	c, h, ok := in.pop()
	if !ok {
		return
	}
	contours, ok := in.indexValues(c)
	if !ok {
		return
	}
	for _, ci := range contours {
		if ci < 0 || (in.st.InGlyph && ci >= int64(in.st.ContourCount)) {
			in.fail(hinting.SeverityError, "V0530",
				"%s opcode in %s (PC %d) refers to contour %d, which does "+
					"not exist for this glyph.", op, in.prog.Name, in.st.PC, ci)
			continue
		}
		in.st.Statistics.NoteUsage(ResourceContour, int(ci), h)
	}
}

func (in *interp) hintSHZ(op Opcode) {
	zp, _, ok := in.popAs(ArgKindZone)
	if !ok {
		return
	}
	in.zoneCheck(op.String(), zp)
}

func (in *interp) hintISECT() {
	vs, hs, ok := in.popN(5)
	if !ok {
		return
	}
	// popped top-down: b1, b0, a1, a0, p
	zoneB, okB := in.zoneCheck("ISECT", in.st.Graphics.ZonePointer(0))
	zoneA, okA := in.zoneCheck("ISECT", in.st.Graphics.ZonePointer(1))
	zoneP, okP := in.zoneCheck("ISECT", in.st.Graphics.ZonePointer(2))
	if okB {
		in.pointCheck("ISECT", zoneB, vs[0], hs[0], false)
		in.pointCheck("ISECT", zoneB, vs[1], hs[1], false)
	}
	if okA {
		in.pointCheck("ISECT", zoneA, vs[2], hs[2], false)
		in.pointCheck("ISECT", zoneA, vs[3], hs[3], false)
	}
	if okP {
		in.pointCheck("ISECT", zoneP, vs[4], hs[4], true)
	}
}

func (in *interp) hintALIGNPTS() {
	p2, h2, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	p1, h1, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	if zone, zoneOK := in.zoneCheck("ALIGNPTS", in.st.Graphics.ZonePointer(0)); zoneOK {
		in.pointCheck("ALIGNPTS", zone, p2, h2, true)
	}
	if zone, zoneOK := in.zoneCheck("ALIGNPTS", in.st.Graphics.ZonePointer(1)); zoneOK {
		in.pointCheck("ALIGNPTS", zone, p1, h1, true)
	}
}

func (in *interp) hintUTP() {
	p, h, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	if zone, zoneOK := in.zoneCheck("UTP", in.st.Graphics.ZonePointer(0)); zoneOK {
		in.pointCheck("UTP", zone, p, h, false)
	}
}

// hintIUP interpolates untouched points; it takes no stack operands and
// touches no state the analysis tracks.
func (in *interp) hintIUP() {
	if in.ctx.InPrep {
		in.fail(hinting.SeverityWarning, "E6040",
			"IUP opcode in the pre-program (PC %d) uses the glyph zone. "+
				"The pre-program may only use the twilight zone.", in.st.PC)
	}
}

func (in *interp) hintFLIPPT() {
	in.loopPoints(OpFLIPPT, 0, false)
}

func (in *interp) hintFLIPRG(op Opcode) {
	hi, hh, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	lo, hl, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	opString := op.String()
	zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(0))
	if !zoneOK {
		return
	}
	in.pointCheck(opString, zone, lo, hl, false)
	in.pointCheck(opString, zone, hi, hh, false)
}

// hintGC pushes the projected coordinate of a point, which the analysis
// does not track numerically.
func (in *interp) hintGC(op Opcode) {
	p, h, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	opString := op.String()
	if zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(2)); zoneOK {
		in.pointCheck(opString, zone, p, h, false)
	}
	in.push(triple.Any(basisInt), in.opHistory(op, h))
}

func (in *interp) hintSCFS() {
	if _, _, ok := in.pop(); !ok { // coordinate value
		return
	}
	p, h, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	if zone, zoneOK := in.zoneCheck("SCFS", in.st.Graphics.ZonePointer(2)); zoneOK {
		in.pointCheck("SCFS", zone, p, h, true)
	}
}

// hintMD pushes the measured distance between two points.
func (in *interp) hintMD(op Opcode) {
	p2, h2, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	p1, h1, ok := in.popAs(ArgKindPoint)
	if !ok {
		return
	}
	opString := op.String()
	if zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(1)); zoneOK {
		in.pointCheck(opString, zone, p2, h2, false)
	}
	if zone, zoneOK := in.zoneCheck(opString, in.st.Graphics.ZonePointer(0)); zoneOK {
		in.pointCheck(opString, zone, p1, h1, false)
	}
	in.push(triple.Any(basisInt), in.opHistory(op, h1, h2))
}
