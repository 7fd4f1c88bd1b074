package hint

import (
	"sort"

	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

// Analysis is the top-level driver for validating the hint programs of
// one font: first the font program is split into function definitions,
// then the pre-program runs once, and finally any number of glyph
// programs run against the post-pre-program state. Statistics accumulate
// across all of them.
type Analysis struct {
	ctx    *Context
	state  *State
	failed bool
}

// NewAnalysis creates an analysis pass reporting through the given sink.
func NewAnalysis(sink hinting.Sink) *Analysis {
	ctx := &Context{
		Sink:         sink,
		Functions:    make(map[int]*Program),
		Instructions: make(map[Opcode]*Program),
	}
	return &Analysis{ctx: ctx, state: NewState()}
}

// SetCVT initializes the control value table from the font's 'cvt '
// entries. The analysis covers every rendering size at once, so a nonzero
// entry scales to an unknown pixel amount; only zero stays zero.
func (a *Analysis) SetCVT(values []int64) {
	cvt := make([]triple.Collection, len(values))
	for i, v := range values {
		if v == 0 {
			cvt[i] = triple.FromValue(basisPixel, 0)
		} else {
			cvt[i] = triple.Any(basisPixel)
		}
	}
	a.state.CVT = cvt
}

// SetMaxTwilightPoints sets the twilight zone size from 'maxp'.
func (a *Analysis) SetMaxTwilightPoints(n int) {
	a.state.TwilightCount = n
}

// AnalyzeFontProgram decodes the 'fpgm' stream and registers its FDEF and
// IDEF bodies. Structural errors are hard failures.
func (a *Analysis) AnalyzeFontProgram(raw []byte) error {
	code, err := Decode(raw)
	if err != nil {
		a.ctx.report(hinting.SeverityError, "V0004", "Insufficient bytes.")
		return err
	}
	return SplitFunctions(code, a.ctx)
}

// AnalyzePreProgram runs the 'prep' stream. The resulting state becomes
// the baseline every glyph program starts from, with the per-glyph
// registers reset to their defaults.
func (a *Analysis) AnalyzePreProgram(raw []byte) error {
	code, err := Decode(raw)
	if err != nil {
		a.ctx.report(hinting.SeverityError, "V0004", "Insufficient bytes.")
		return err
	}
	prog := &Program{Name: "prep", Code: code}
	a.ctx.InPrep = true
	Run(prog, a.state, a.ctx)
	a.ctx.InPrep = false
	if a.state.ValidationFailed() {
		a.failed = true
	}
	a.state.Graphics.ResetPerGlyph()
	a.state.stack = nil
	a.state.pushHistory = nil
	for i := range a.state.refPtHistory {
		a.state.refPtHistory[i] = nil
	}
	return nil
}

// AnalyzeGlyphProgram runs one glyph's instruction stream against a copy
// of the post-pre-program state. name identifies the glyph in
// diagnostics, e.g. "glyf[36]".
func (a *Analysis) AnalyzeGlyphProgram(raw []byte, name string, pointCount, contourCount int) error {
	code, err := Decode(raw)
	if err != nil {
		a.ctx.report(hinting.SeverityError, "V0004", "Insufficient bytes.")
		return err
	}
	st := a.state.Clone()
	st.stack = nil
	st.pushHistory = nil
	st.PointCount = pointCount
	st.ContourCount = contourCount
	st.InGlyph = true
	Run(&Program{Name: name, Code: code}, st, a.ctx)
	if st.ValidationFailed() {
		a.failed = true
	}
	return nil
}

// Statistics returns the aggregate grown by all program runs so far.
func (a *Analysis) Statistics() *Statistics {
	return a.state.Statistics
}

// ValidationFailed reports whether any analyzed program failed.
func (a *Analysis) ValidationFailed() bool {
	return a.failed
}

// Functions returns the registered FDEF indices in ascending order.
func (a *Analysis) Functions() []int {
	indices := make([]int, 0, len(a.ctx.Functions))
	for i := range a.ctx.Functions {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// FunctionSignature describes the inferred stack interface of an FDEF:
// how many caller slots it consumes, the kind each of them is consumed
// as, and how many results the body leaves. Formals[0] is the caller's
// topmost slot.
type FunctionSignature struct {
	Args    int
	Results int
	Formals []FormalArg
}

// isolationDepth is the synthetic stack depth function bodies run at
// when inferring signatures; deeper argument lists than this are not
// seen in practice.
const isolationDepth = 32

// FunctionSignatures runs every registered FDEF in isolation on a
// synthetic stack of unconstrained values and infers each body's
// argument list and result count from its stack traffic: the deepest
// excursion bounds the argument count, and the opcode consuming each
// fresh caller slot determines that argument's kind. Diagnostics of
// these isolation runs are suppressed; bodies that fail to complete are
// omitted.
func (a *Analysis) FunctionSignatures() map[int]FunctionSignature {
	signatures := make(map[int]FunctionSignature, len(a.ctx.Functions))
	for idx, fn := range a.ctx.Functions {
		isoCtx := &Context{
			Sink:         hinting.DiscardSink{},
			Functions:    a.ctx.Functions,
			Instructions: a.ctx.Instructions,
			ArgTracer:    NewArgTracer(isolationDepth),
		}
		st := a.state.Clone()
		st.stack = nil
		st.pushHistory = nil
		for i := 0; i < isolationDepth; i++ {
			st.Push(triple.Any(basisInt), history.NewPush(fn.Name, -1, i))
		}
		Run(fn, st, isoCtx)
		if st.PC == doNotProceedPC {
			continue
		}
		signatures[idx] = FunctionSignature{
			Args:    isoCtx.ArgTracer.ArgCount(),
			Results: isoCtx.ArgTracer.ResultCount(st.Depth()),
			Formals: isoCtx.ArgTracer.Args(),
		}
	}
	return signatures
}
