package hint

import (
	"github.com/npillmayer/hinting"
)

// maxCallDepth bounds CALL/LOOPCALL nesting. Real fonts stay in single
// digits; the bound only guards against recursive FDEFs.
const maxCallDepth = 32

// Context carries what the interpreter needs beyond the mutable state:
// the diagnostics sink, the function and instruction-definition tables
// produced by the program splitter, and the enclosing call chain used to
// attribute interprocedural effects.
type Context struct {
	Sink hinting.Sink

	// Functions maps FDEF indices to their bodies, Instructions maps
	// IDEF opcodes to theirs. Both are filled by the splitter before any
	// program runs.
	Functions    map[int]*Program
	Instructions map[Opcode]*Program

	// CallChain holds the program names of the enclosing CALL frames,
	// outermost first. Empty at top level.
	CallChain []string

	// ArgTracer, when non-nil, observes stack traffic of the FDEF body
	// currently being analyzed in isolation.
	ArgTracer *ArgTracer

	// InPrep is true while the pre-program runs; a few zone rules are
	// stricter there.
	InPrep bool

	depth int
}

// report sends a diagnostic through the sink, silently dropping it when no
// sink is configured.
func (ctx *Context) report(sev hinting.Severity, code, template string, args ...interface{}) {
	if ctx.Sink == nil {
		return
	}
	ctx.Sink.Report(hinting.Diagnostic{
		Code:     code,
		Severity: sev,
		Template: template,
		Args:     args,
	})
}

// pushFrame enters a CALL frame. ok is false when the depth bound is hit.
func (ctx *Context) pushFrame(name string) bool {
	if ctx.depth >= maxCallDepth {
		return false
	}
	ctx.CallChain = append(ctx.CallChain, name)
	ctx.depth++
	return true
}

func (ctx *Context) popFrame() {
	ctx.CallChain = ctx.CallChain[:len(ctx.CallChain)-1]
	ctx.depth--
}

// Argument kinds an ArgTracer can record for a consumed stack slot.
const (
	ArgKindValue    = "value"
	ArgKindBoolean  = "boolean"
	ArgKindPoint    = "pointIndex"
	ArgKindCVT      = "cvtIndex"
	ArgKindStorage  = "storageIndex"
	ArgKindFunction = "functionIndex"
	ArgKindZone     = "zoneIndex"
	ArgKindJump     = "jumpOffset"
	ArgKindCount    = "count"
)

// FormalArg describes one formal argument of a function body run in
// isolation: the kind of value the body consumed it as, and the opcode
// that consumed it. Argument 0 is the caller's topmost slot.
type FormalArg struct {
	Kind string
	Op   string
}

// ArgTracer observes the stack traffic of a function body run in
// isolation. Every pop reports the depth it left behind together with
// the kind the popped value was consumed as; pops dipping below the
// deepest excursion so far consume a fresh caller slot and thereby
// define the next formal argument.
type ArgTracer struct {
	entryDepth int
	minDepth   int
	args       []FormalArg
}

// NewArgTracer starts tracing at the given stack depth.
func NewArgTracer(entryDepth int) *ArgTracer {
	return &ArgTracer{entryDepth: entryDepth, minDepth: entryDepth}
}

// NotePop records a pop that left the stack at the given depth.
func (at *ArgTracer) NotePop(depth int, kind, op string) {
	if depth < at.minDepth {
		at.minDepth = depth
		at.args = append(at.args, FormalArg{Kind: kind, Op: op})
	}
}

// NotePush records the stack depth after a push. Pushes never consume
// caller slots, so only the depth bookkeeping applies.
func (at *ArgTracer) NotePush(depth int) {
	if depth < at.minDepth {
		at.minDepth = depth
	}
}

// ArgCount returns how many slots below the entry depth were consumed.
func (at *ArgTracer) ArgCount() int {
	return at.entryDepth - at.minDepth
}

// Args returns the formal arguments in consumption order: Args()[0] is
// the caller's topmost slot.
func (at *ArgTracer) Args() []FormalArg {
	return at.args
}

// ResultCount returns how many values the body leaves above its deepest
// excursion, given the depth after the body finished.
func (at *ArgTracer) ResultCount(finalDepth int) int {
	return finalDepth - at.minDepth
}
