package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
)

// getContras locates the IF and ELSE branch ranges belonging to the IF at
// the current pc. Returned indices are instruction indices into the
// program; a branch with end <= start is absent. eif is the index of the
// closing EIF, or the last instruction if none was found. ok is false on
// a structural error that should halt the body.
func (in *interp) getContras() (ifStart, ifEnd, elseStart, elseEnd, eif int, ok bool) {
	code := in.prog.Code
	ifStart = in.st.PC + 1
	ifEnd, elseStart, elseEnd, eif = -1, -1, -1, -1
	depth := 0
	for walk := ifStart; walk < len(code); walk++ {
		if code[walk].Opcode.IsPush() {
			continue
		}
		switch code[walk].Opcode {
		case OpIF:
			depth++
		case OpEIF:
			if depth > 0 {
				depth--
				continue
			}
			if ifEnd == -1 {
				ifEnd = walk
			}
			if elseStart != -1 {
				elseEnd = walk
			}
			eif = walk
		case OpELSE:
			if depth > 0 {
				continue
			}
			if elseStart != -1 {
				in.fail(hinting.SeverityError, "V0492",
					"Two ELSEs without intervening IF or EIF found in %s (PC %d).",
					in.prog.Name, in.st.PC)
				return ifStart, -1, -1, -1, len(code) - 1, false
			}
			ifEnd = walk
			elseStart = walk + 1
		}
		if eif != -1 {
			break
		}
	}
	if eif == -1 {
		in.fail(hinting.SeverityWarning, "E6024",
			"No EIF found after IF or ELSE in %s (PC %d).",
			in.prog.Name, in.st.PC)
		eif = len(code) - 1
		// the open branch runs to the end of the body
		if elseStart != -1 {
			elseEnd = eif + 1
		} else {
			ifEnd = eif + 1
		}
	}
	if ifEnd <= ifStart && elseEnd <= elseStart {
		in.fail(hinting.SeverityError, "V0802",
			"An empty IF-EIF was found in %s (PC %d).",
			in.prog.Name, in.st.PC)
		return ifStart, -1, -1, -1, len(code) - 1, false
	}
	return ifStart, ifEnd, elseStart, elseEnd, eif, true
}

// runBranch executes [from, to) of the current program on the given state
// and reports whether the branch failed with the halt sentinel.
func runBranch(prog *Program, st *State, ctx *Context, from, to int) bool {
	sub := &interp{prog: prog, st: st, ctx: ctx}
	st.PC = from
	sub.runRange(from, to)
	return st.PC == doNotProceedPC
}

// hintIF forks the analysis. When the condition may take both truth
// values, both branches run on independent copies of the state and the
// results are merged; when it is determined, only the live branch runs.
func (in *interp) hintIF() {
	st := in.st
	cond, _, ok := in.popAs(ArgKindBoolean)
	if !ok {
		return
	}
	ifPC := st.PC
	ifStart, ifEnd, elseStart, elseEnd, eif, structOK := in.getContras()
	if !structOK {
		in.halt()
		return
	}
	hasIF := ifEnd > ifStart
	hasELSE := elseEnd > elseStart
	canFalse, canTrue := cond.EncompassedBooleans()
	safety := st.Clone()
	switch {
	case canTrue && canFalse:
		alt := st.Clone()
		var failedIF, failedELSE bool
		if hasIF {
			failedIF = runBranch(in.prog, st, in.ctx, ifStart, ifEnd)
		}
		if hasELSE {
			failedELSE = runBranch(in.prog, alt, in.ctx, elseStart, elseEnd)
		}
		switch {
		case failedIF && failedELSE:
			*st = *safety
			in.halt()
			return
		case failedIF:
			*st = *alt
		case failedELSE:
			// keep the IF arm's state
		default:
			if st.Depth() != alt.Depth() {
				in.fail(hinting.SeverityError, "V0550",
					"IF hint in %s (PC %d) has a stack imbalance between "+
						"the IF and ELSE branches.", in.prog.Name, ifPC)
				in.halt()
				return
			}
			// a CLEAR right after the EIF makes the stacks of both arms
			// irrelevant; dropping them first avoids spurious imbalance
			if eif+1 < len(in.prog.Code) &&
				!in.prog.Code[eif+1].Opcode.IsPush() &&
				in.prog.Code[eif+1].Opcode == OpCLEAR {
				for st.Depth() > 0 {
					st.Pop()
				}
				for alt.Depth() > 0 {
					alt.Pop()
				}
			}
			st.Combine(alt)
		}
	case canTrue:
		if hasIF && runBranch(in.prog, st, in.ctx, ifStart, ifEnd) {
			*st = *safety
			in.halt()
			return
		}
	case canFalse:
		if hasELSE && runBranch(in.prog, st, in.ctx, elseStart, elseEnd) {
			*st = *safety
			in.halt()
			return
		}
	default:
		in.fail(hinting.SeverityWarning, "V0514",
			"The IF in %s (PC %d) has a condition of zero, and no ELSE "+
				"clause, and will thus never have any effect.",
			in.prog.Name, ifPC)
	}
	st.PC = eif + 1
}

// hintStrayELSE handles an ELSE that was not consumed by an IF: the
// remainder of its branch up to the matching EIF is skipped.
func (in *interp) hintStrayELSE() {
	code := in.prog.Code
	depth := 0
	for walk := in.st.PC + 1; walk < len(code); walk++ {
		if code[walk].Opcode.IsPush() {
			continue
		}
		switch code[walk].Opcode {
		case OpIF:
			depth++
		case OpEIF:
			if depth > 0 {
				depth--
				continue
			}
			in.st.PC = walk + 1
			return
		}
	}
	in.fail(hinting.SeverityWarning, "E6024",
		"No EIF found after IF or ELSE in %s (PC %d).",
		in.prog.Name, in.st.PC)
	in.st.PC = len(code)
}

// maxJumps bounds how many jumps one body may take before the analysis
// assumes a non-terminating loop.
const maxJumps = 10000

// doJump resolves a byte-relative jump. The offset is relative to the
// jump instruction itself and must land on an instruction boundary.
func (in *interp) doJump(op Opcode, offsetValue int64, h history.Entry) {
	st := in.st
	if offsetValue == 0 {
		in.fail(hinting.SeverityError, "V0516",
			"Jump hint in %s (PC %d) jumps to itself, which would cause "+
				"an infinite loop.", in.prog.Name, st.PC)
		in.halt()
		return
	}
	targetByte := in.prog.Code[st.PC].offset + int(offsetValue)
	target := indexAtOffset(in.prog.Code, targetByte)
	if target == -1 {
		in.fail(hinting.SeverityError, "V0515",
			"Jump hint in %s (PC %d) attempts to jump to something that "+
				"is not a hint.", in.prog.Name, st.PC)
		in.halt()
		return
	}
	in.jumps++
	if in.jumps > maxJumps {
		in.fail(hinting.SeverityError, "E6061",
			"Jump hint in %s (PC %d) appears not to terminate.",
			in.prog.Name, st.PC)
		in.halt()
		return
	}
	st.Statistics.NoteUsage(ResourceJump, target, h)
	st.PC = target
}

func (in *interp) hintJMPR() {
	offset, h, ok := in.popAs(ArgKindJump)
	if !ok {
		return
	}
	value, ok := in.toNumber(offset)
	if !ok {
		return
	}
	in.doJump(OpJMPR, value, h)
}

// hintJumpRelOn covers JROT and JROF. An undetermined condition analyzes
// the fall-through path and reports that the jump path was not followed.
func (in *interp) hintJumpRelOn(op Opcode) {
	cond, _, ok := in.popAs(ArgKindBoolean)
	if !ok {
		return
	}
	offset, h, ok := in.popAs(ArgKindJump)
	if !ok {
		return
	}
	canFalse, canTrue := cond.EncompassedBooleans()
	jumpOn := canTrue
	fallOn := canFalse
	if op == OpJROF {
		jumpOn, fallOn = canFalse, canTrue
	}
	if jumpOn && fallOn {
		in.fail(hinting.SeverityWarning, "V0808",
			"%s hint in %s (PC %d) has an undetermined condition; only "+
				"the fall-through path is analyzed.", op, in.prog.Name, in.st.PC)
		return
	}
	if !jumpOn {
		return
	}
	value, ok := in.toNumber(offset)
	if !ok {
		return
	}
	in.doJump(op, value, h)
}

// hintCALL runs the FDEF selected by the popped function index. A
// multi-valued index runs every candidate on its own copy of the state
// and merges the outcomes.
func (in *interp) hintCALL() {
	c, h, ok := in.popAs(ArgKindFunction)
	if !ok {
		return
	}
	indices, ok := in.indexValues(c)
	if !ok {
		return
	}
	in.callFunctions(indices, h, 1)
}

// loopCallCap bounds how many times LOOPCALL is simulated.
const loopCallCap = 256

func (in *interp) hintLOOPCALL() {
	c, h, ok := in.popAs(ArgKindFunction)
	if !ok {
		return
	}
	count, _, ok := in.popAs(ArgKindCount)
	if !ok {
		return
	}
	indices, ok := in.indexValues(c)
	if !ok {
		return
	}
	times, ok := in.toNumberMin(count, 0)
	if !ok {
		return
	}
	if times > loopCallCap {
		in.fail(hinting.SeverityWarning, "E6061",
			"LOOPCALL hint in %s (PC %d) requests %d iterations; only %d "+
				"are analyzed.", in.prog.Name, in.st.PC, times, loopCallCap)
		times = loopCallCap
	}
	in.callFunctions(indices, h, int(times))
}

// callFunctions resolves the candidate FDEF indices and simulates the
// calls. Unknown indices report E6020.
func (in *interp) callFunctions(indices []int64, h history.Entry, times int) {
	var progs []*Program
	for _, fi := range indices {
		fn, found := in.ctx.Functions[int(fi)]
		if !found {
			in.fail(hinting.SeverityError, "E6020",
				"Calling an unknown FDEF was attempted in %s (PC %d).",
				in.prog.Name, in.st.PC)
			continue
		}
		in.st.Statistics.NoteUsage(ResourceFunction, int(fi), h)
		progs = append(progs, fn)
	}
	if len(progs) == 0 || times == 0 {
		return
	}
	if len(progs) == 1 {
		for i := 0; i < times && in.st.PC != doNotProceedPC; i++ {
			in.callProgram(progs[0], h)
		}
		return
	}
	base := in.st.Clone()
	first := true
	for _, fn := range progs {
		arm := base.Clone()
		sub := &interp{prog: in.prog, st: arm, ctx: in.ctx}
		sub.st.PC = in.st.PC
		for i := 0; i < times && arm.PC != doNotProceedPC; i++ {
			sub.callProgram(fn, h)
		}
		if arm.PC == doNotProceedPC {
			continue
		}
		if first {
			*in.st = *arm
			first = false
			continue
		}
		if in.st.Depth() != arm.Depth() {
			in.fail(hinting.SeverityError, "V0550",
				"CALL hint in %s (PC %d) has a stack imbalance between "+
					"the candidate functions.", in.prog.Name, in.st.PC)
			in.halt()
			return
		}
		in.st.Combine(arm)
	}
	if first {
		// every candidate failed
		in.halt()
	}
}

// callProgram runs a callee body on the current state and attributes the
// callee's graphics-state effects to the call site.
func (in *interp) callProgram(fn *Program, h history.Entry) {
	if !in.ctx.pushFrame(fn.Name) {
		in.fail(hinting.SeverityError, "E6061",
			"Calling %s from %s (PC %d) exceeds the call depth limit; "+
				"recursive FDEFs are not supported.", fn.Name, in.prog.Name, in.st.PC)
		return
	}
	savedPC := in.st.PC
	Run(fn, in.st, in.ctx)
	in.ctx.popFrame()
	site := CallSite{Program: in.prog.Name, PC: savedPC}
	for _, reg := range in.st.Statistics.effectRegistersFor(fn.Name) {
		in.st.Statistics.NoteGSEffect(site, reg)
	}
	if in.st.PC != doNotProceedPC {
		in.st.PC = savedPC
	}
}

// hintStrayDef reports an FDEF or IDEF outside the font program.
func (in *interp) hintStrayDef(op Opcode) {
	code := "V0175"
	if op == OpIDEF {
		code = "V0176"
	}
	in.fail(hinting.SeverityError, code,
		"Nested %ss are not permitted.", op)
	in.halt()
}

func (in *interp) hintStrayENDF() {
	in.fail(hinting.SeverityError, "V0173",
		"ENDF appeared without FDEF or IDEF.")
	in.halt()
}
