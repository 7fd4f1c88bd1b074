package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

// Run walks a program body over the given state, dispatching every
// instruction to its abstract handler. It returns when the pc leaves the
// program or the do-not-proceed sentinel was set.
func Run(prog *Program, st *State, ctx *Context) {
	tracer().Debugf("running %s, %d instructions", prog.Name, len(prog.Code))
	in := &interp{prog: prog, st: st, ctx: ctx}
	st.PC = 0
	in.runRange(0, len(prog.Code))
}

// runRange executes instructions while the pc stays inside [from, to).
func (in *interp) runRange(from, to int) {
	st := in.st
	for st.PC >= from && st.PC < to && st.PC != doNotProceedPC {
		in.step()
	}
}

// step executes the instruction at the current pc. Handlers that do not
// transfer control leave the pc alone; step then advances it. Afterwards
// any graphics-state registers the instruction touched are attributed to
// the instruction's site.
func (in *interp) step() {
	st := in.st
	instr := in.prog.Code[st.PC]
	pcBefore := st.PC
	site := in.site()
	if instr.Opcode.IsPush() {
		in.doPush(instr)
	} else {
		in.dispatch(instr.Opcode)
	}
	for _, reg := range st.Graphics.TakeDirty() {
		st.Statistics.NoteGSEffect(site, reg)
	}
	if st.PC == pcBefore {
		st.PC++
	}
}

// doPush pushes every literal datum with its own provenance entry: slot i
// of a push instruction is individually addressable in later histories.
func (in *interp) doPush(instr Instruction) {
	for i, datum := range instr.Data {
		h := history.NewPush(in.prog.Name, in.st.PC, i)
		in.push(triple.FromValue(basisInt, datum), h)
	}
}

// dispatch routes a non-push opcode to its handler. Opcodes with reserved
// encodings fall through to IDEF lookup and, failing that, V0804.
func (in *interp) dispatch(op Opcode) {
	switch op {
	case OpSVTCAy, OpSVTCAx, OpSPVTCAy, OpSPVTCAx, OpSFVTCAy, OpSFVTCAx:
		in.hintSetVectorToAxis(op)
	case OpSPVTLpar, OpSPVTLperp, OpSFVTLpar, OpSFVTLperp, OpSDPVTLpar, OpSDPVTLprp:
		in.hintSetVectorToLine(op)
	case OpSPVFS, OpSFVFS:
		in.hintSetVectorFromStack(op)
	case OpGPV, OpGFV:
		in.hintGetVector(op)
	case OpSFVTPV:
		in.hintSFVTPV()
	case OpISECT:
		in.hintISECT()
	case OpSRP0, OpSRP1, OpSRP2:
		in.hintSetRefPt(int(op - OpSRP0))
	case OpSZP0, OpSZP1, OpSZP2, OpSZPS:
		in.hintSetZonePointer(op)
	case OpSLOOP:
		in.hintSLOOP()
	case OpRTG, OpRTHG, OpRTDG, OpRDTG, OpRUTG, OpROFF:
		in.hintSetRoundMode(op)
	case OpSMD:
		in.hintSMD()
	case OpELSE:
		in.hintStrayELSE()
	case OpJMPR:
		in.hintJMPR()
	case OpSCVTCI:
		in.hintSCVTCI()
	case OpSSWCI:
		in.hintSSWCI()
	case OpSSW:
		in.hintSSW()
	case OpDUP:
		in.hintDUP()
	case OpPOP:
		in.hintPOP()
	case OpCLEAR:
		in.hintCLEAR()
	case OpSWAP:
		in.hintSWAP()
	case OpDEPTH:
		in.hintDEPTH()
	case OpCINDEX:
		in.hintCINDEX()
	case OpMINDEX:
		in.hintMINDEX()
	case OpALIGNPTS:
		in.hintALIGNPTS()
	case OpUTP:
		in.hintUTP()
	case OpLOOPCALL:
		in.hintLOOPCALL()
	case OpCALL:
		in.hintCALL()
	case OpFDEF, OpIDEF:
		in.hintStrayDef(op)
	case OpENDF:
		in.hintStrayENDF()
	case OpMDAP, 0x2F:
		in.hintMDAP(op)
	case OpIUPy, OpIUPx:
		in.hintIUP()
	case OpSHP, 0x33:
		in.hintSHP(op)
	case OpSHC, 0x35:
		in.hintSHC(op)
	case OpSHZ, 0x37:
		in.hintSHZ(op)
	case OpSHPIX:
		in.hintSHPIX()
	case OpIP:
		in.hintIP()
	case OpMSIRP, 0x3B:
		in.hintMSIRP(op)
	case OpALIGNRP:
		in.hintALIGNRP()
	case OpMIAP, 0x3F:
		in.hintMIAP(op)
	case OpWS:
		in.hintWS()
	case OpRS:
		in.hintRS()
	case OpWCVTP, OpWCVTF:
		in.hintWCVT(op)
	case OpRCVT:
		in.hintRCVT()
	case OpGCcur, OpGCorig:
		in.hintGC(op)
	case OpSCFS:
		in.hintSCFS()
	case OpMDgrid, OpMDorig:
		in.hintMD(op)
	case OpMPPEM:
		in.hintMeasure(op, in.st.PPEM)
	case OpMPS:
		in.hintMeasure(op, in.st.PointSize)
	case OpFLIPON:
		in.st.Graphics.SetAutoFlip(triple.FromValue(basisInt, 1))
	case OpFLIPOFF:
		in.st.Graphics.SetAutoFlip(triple.FromValue(basisInt, 0))
	case OpDEBUG:
		in.hintDEBUG()
	case OpLT, OpLTEQ, OpGT, OpGTEQ, OpEQ, OpNEQ:
		in.hintCompare(op)
	case OpODD, OpEVEN:
		in.hintParity(op)
	case OpIF:
		in.hintIF()
	case OpEIF:
		// consumed by hintIF; a stray EIF has no effect
	case OpAND, OpOR:
		in.hintBoolean(op)
	case OpNOT:
		in.hintNOT()
	case OpSDB:
		in.hintSDB()
	case OpSDS:
		in.hintSDS()
	case OpADD, OpSUB, OpMUL, OpDIV, OpMAX, OpMIN:
		in.hintBinaryArith(op)
	case OpABS, OpNEG, OpFLOOR, OpCEILING:
		in.hintUnaryArith(op)
	case OpSROUND, OpS45ROUND:
		in.hintSROUND(op)
	case OpJROT, OpJROF:
		in.hintJumpRelOn(op)
	case OpSANGW, OpAA:
		in.hintDeprecatedPop(op)
	case OpFLIPPT:
		in.hintFLIPPT()
	case OpFLIPRGON, OpFLIPRGOFF:
		in.hintFLIPRG(op)
	case OpSCANCTRL:
		in.hintSCANCTRL()
	case OpGETINFO:
		in.hintGETINFO()
	case OpROLL:
		in.hintROLL()
	case OpSCANTYPE:
		in.hintSCANTYPE()
	case OpINSTCTRL:
		in.hintINSTCTRL()
	default:
		switch {
		case op >= 0x68 && op <= 0x6F:
			in.hintROUND(op)
		case op.IsDeltaP():
			in.hintDELTAP(op)
		case op.IsDeltaC():
			in.hintDELTAC(op)
		case op >= 0xC0 && op <= 0xDF:
			in.hintMDRP(op)
		case op >= 0xE0:
			in.hintMIRP(op)
		default:
			in.hintUnknown(op)
		}
	}
}

// hintUnknown dispatches to an IDEF body if one was defined for the
// opcode, otherwise reports V0804.
func (in *interp) hintUnknown(op Opcode) {
	if body, ok := in.ctx.Instructions[op]; ok {
		in.callProgram(body, nil)
		return
	}
	in.fail(hinting.SeverityWarning, "V0804",
		"An unknown TrueType opcode 0x%02X was encountered in %s (PC %d).",
		byte(op), in.prog.Name, in.st.PC)
}
