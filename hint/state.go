package hint

import (
	"math"

	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

// doNotProceedPC is the in-band halt sentinel. A handler that detects an
// unrecoverable condition (stack underflow, malformed jump) sets the pc to
// this value; the run loop stops, but sibling program bodies may still be
// analyzed with the same state.
const doNotProceedPC = math.MaxInt32

// State is the interpreter state threaded through a program body. The
// operand stack and the provenance stack are kept in lock-step: entry i of
// pushHistory explains how entry i of stack was produced.
type State struct {
	stack       []triple.Collection
	pushHistory []history.Entry

	Graphics     *GraphicsState
	refPtHistory [3]history.Entry

	storage        map[int]triple.Collection
	storageHistory map[int]history.Entry

	// CVT is the control value table in 26.6 units, symbolically
	// initialized before the pre-program runs. Read-only during analysis
	// in the sense that writes only ever widen entries.
	CVT        []triple.Collection
	cvtHistory map[int]history.Entry

	// PPEM and PointSize model the rasterizer inputs MPPEM and MPS
	// report. Analysis covers all sizes, so both default to open sets.
	PPEM      triple.Collection
	PointSize triple.Collection

	// PointCount/TwilightCount/ContourCount describe the glyph under
	// analysis; zero counts are normal for prep and fpgm.
	PointCount    int
	TwilightCount int
	ContourCount  int

	// InGlyph is true while a glyph program runs; some zone and point
	// rules differ between glyph programs and prep/fpgm.
	InGlyph bool

	PC         int
	Statistics *Statistics

	validationFailed bool
}

// NewState returns a fresh interpreter state with default graphics state,
// empty stack and storage, and open ppem/point-size sets.
func NewState() *State {
	return &State{
		Graphics:       NewGraphicsState(),
		storage:        make(map[int]triple.Collection),
		storageHistory: make(map[int]history.Entry),
		cvtHistory:     make(map[int]history.Entry),
		PPEM:           triple.NewCollection(basisInt, triple.NewOpenStop(5, 1)),
		PointSize:      triple.NewCollection(basisInt, triple.NewOpenStop(5, 1)),
		Statistics:     NewStatistics(),
	}
}

// Depth returns the operand stack depth.
func (st *State) Depth() int { return len(st.stack) }

// Push appends a value and its provenance in lock-step.
func (st *State) Push(v triple.Collection, h history.Entry) {
	st.stack = append(st.stack, v)
	st.pushHistory = append(st.pushHistory, h)
	st.Statistics.StackCheck(len(st.stack))
}

// Pop removes and returns the top value and its provenance. ok is false on
// an empty stack; the caller reports the underflow.
func (st *State) Pop() (triple.Collection, history.Entry, bool) {
	if len(st.stack) == 0 {
		return triple.Collection{}, nil, false
	}
	n := len(st.stack) - 1
	v, h := st.stack[n], st.pushHistory[n]
	st.stack = st.stack[:n]
	st.pushHistory = st.pushHistory[:n]
	return v, h, true
}

// Peek returns the value and provenance n slots below the top (n = 0 is
// the top) without removing anything.
func (st *State) Peek(n int) (triple.Collection, history.Entry, bool) {
	i := len(st.stack) - 1 - n
	if i < 0 || i >= len(st.stack) {
		return triple.Collection{}, nil, false
	}
	return st.stack[i], st.pushHistory[i], true
}

// Storage returns the storage-area entry at index. Uninitialized slots
// read as an implicit zero, which the caller should flag.
func (st *State) Storage(index int) (triple.Collection, bool) {
	v, ok := st.storage[index]
	return v, ok
}

// SetStorage writes a storage-area entry together with its provenance.
func (st *State) SetStorage(index int, v triple.Collection, h history.Entry) {
	st.storage[index] = v
	st.storageHistory[index] = h
}

// StorageHistory returns the provenance of a storage slot, nil if the slot
// was never written.
func (st *State) StorageHistory(index int) history.Entry {
	return st.storageHistory[index]
}

// RefPtHistory returns the provenance of the last instruction that set the
// given reference point, nil if it still holds its default.
func (st *State) RefPtHistory(which int) history.Entry {
	return st.refPtHistory[which]
}

// SetRefPtHistory records the provenance of a reference point assignment.
func (st *State) SetRefPtHistory(which int, h history.Entry) {
	st.refPtHistory[which] = h
}

// ValidationFailed reports whether any ERROR-or-worse finding has been
// recorded against this state.
func (st *State) ValidationFailed() bool { return st.validationFailed }

// FailValidation marks the state's verdict as failed. The flag is sticky.
func (st *State) FailValidation() { st.validationFailed = true }

// Clone returns an independent copy for exploring one arm of a control
// flow fork. Statistics are shared: they grow monotonically across all
// branches of a pass.
func (st *State) Clone() *State {
	c := *st
	c.stack = append([]triple.Collection(nil), st.stack...)
	c.pushHistory = append([]history.Entry(nil), st.pushHistory...)
	c.Graphics = st.Graphics.Clone()
	c.storage = make(map[int]triple.Collection, len(st.storage))
	for k, v := range st.storage {
		c.storage[k] = v
	}
	c.storageHistory = make(map[int]history.Entry, len(st.storageHistory))
	for k, v := range st.storageHistory {
		c.storageHistory[k] = v
	}
	c.cvtHistory = make(map[int]history.Entry, len(st.cvtHistory))
	for k, v := range st.cvtHistory {
		c.cvtHistory[k] = v
	}
	c.CVT = append([]triple.Collection(nil), st.CVT...)
	return &c
}

// Combine merges the state of a rejoining control flow arm into the
// receiver: stack slots and graphics registers by set union, provenance by
// grouping, the verdict by disjunction. Both stacks must have equal depth;
// the flow handlers diagnose unbalanced branches before calling this.
func (st *State) Combine(other *State) {
	for i := range st.stack {
		if i < len(other.stack) {
			st.stack[i] = st.stack[i].Union(other.stack[i])
			st.pushHistory[i] = history.Combine(st.pushHistory[i], other.pushHistory[i])
		}
	}
	st.Graphics.Combine(other.Graphics)
	for i := 0; i < 3; i++ {
		st.refPtHistory[i] = history.Combine(st.refPtHistory[i], other.refPtHistory[i])
	}
	for k, v := range other.storage {
		if cur, ok := st.storage[k]; ok {
			st.storage[k] = cur.Union(v)
		} else {
			st.storage[k] = v
		}
	}
	history.CombineMaps(st.storageHistory, other.storageHistory)
	for i := range st.CVT {
		if i < len(other.CVT) {
			st.CVT[i] = st.CVT[i].Union(other.CVT[i])
		}
	}
	history.CombineMaps(st.cvtHistory, other.cvtHistory)
	if other.validationFailed {
		st.validationFailed = true
	}
}
