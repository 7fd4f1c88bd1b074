package hint

import (
	"sort"

	"github.com/npillmayer/hinting/triple"
)

// The numeric bases used by the graphics state: raw integers, 26.6 fixed
// point pixels, and 2.14 fixed point vector components.
const (
	basisInt   = 1
	basisPixel = 64
	basisF2D14 = 16384
)

// Register identifies one register of the graphics state. Registers are
// tracked individually so that side effects of FDEF bodies can be reported
// per call site.
type Register int

const (
	RegZonePointer0 Register = iota
	RegZonePointer1
	RegZonePointer2
	RegReferencePoint0
	RegReferencePoint1
	RegReferencePoint2
	RegLoop
	RegAutoFlip
	RegCVTCutIn
	RegDeltaBase
	RegDeltaShift
	RegFreedomVector
	RegProjectionVector
	RegDualVector
	RegInstructControl
	RegMinimumDistance
	RegRoundState
	RegScanControl
	RegScanType
	RegSingleWidthCutIn
	RegSingleWidthValue
	numRegisters
)

var registerNames = [numRegisters]string{
	"zonePointer0", "zonePointer1", "zonePointer2",
	"referencePoint0", "referencePoint1", "referencePoint2",
	"loop", "autoFlip", "cvtCutIn", "deltaBase", "deltaShift",
	"freedomVector", "projectionVector", "dualVector",
	"instructControl", "minimumDistance", "roundState",
	"scanControl", "scanType", "singleWidthCutIn", "singleWidthValue",
}

func (r Register) String() string {
	if r < 0 || r >= numRegisters {
		return "register?"
	}
	return registerNames[r]
}

// Vector is a direction in 2.14 fixed point components. Components are
// collections since SPVFS and friends may receive multi-valued operands.
type Vector struct {
	X, Y triple.Collection
}

func xAxis() Vector {
	return Vector{triple.FromValue(basisF2D14, 16384), triple.FromValue(basisF2D14, 0)}
}

func yAxis() Vector {
	return Vector{triple.FromValue(basisF2D14, 0), triple.FromValue(basisF2D14, 16384)}
}

// IsXAxis reports whether the vector is known to point along the x axis.
func (v Vector) IsXAxis() bool {
	x, okx := v.X.ToNumber()
	y, oky := v.Y.ToNumber()
	return okx && oky && x == 16384 && y == 0
}

func (v Vector) Equal(other Vector) bool {
	return v.X.Equal(other.X) && v.Y.Equal(other.Y)
}

// RoundState models the SROUND-style rounding engine: period and threshold
// in 26.6 pixels, phase as an offset into the period. Round-off is encoded
// as period zero, which the rounding machinery treats as the identity.
type RoundState struct {
	Period    triple.Collection
	Phase     triple.Collection
	Threshold triple.Collection
}

func roundToGrid() RoundState {
	return RoundState{
		Period:    triple.FromValue(basisPixel, 64),
		Phase:     triple.FromValue(basisPixel, 0),
		Threshold: triple.FromValue(basisPixel, 32),
	}
}

// GraphicsState is the simulated register file of the hint interpreter.
// Every register holds a collection, so diverging IF branches and
// multi-valued operands stay representable. Mutations go through the
// setters, which record the touched register in a dirty set; the run loop
// drains that set after each instruction to attribute side effects.
type GraphicsState struct {
	zonePointer      [3]triple.Collection
	referencePoint   [3]triple.Collection
	loop             triple.Collection
	autoFlip         triple.Collection
	cvtCutIn         triple.Collection
	deltaBase        triple.Collection
	deltaShift       triple.Collection
	freedomVector    Vector
	projectionVector Vector
	dualVector       Vector
	instructControl  triple.Collection
	minimumDistance  triple.Collection
	round            RoundState
	scanControl      triple.Collection
	scanType         triple.Collection
	singleWidthCutIn triple.Collection
	singleWidthValue triple.Collection

	dirty map[Register]bool
}

// NewGraphicsState returns the state mandated at the start of every
// program: zone pointers 1, reference points 0, loop 1, auto-flip on,
// CVT cut-in 17/16 pixel, delta base 9, delta shift 3, all vectors along
// x, minimum distance and single width cut-in 1 pixel, round-to-grid.
func NewGraphicsState() *GraphicsState {
	one := triple.FromValue(basisInt, 1)
	zero := triple.FromValue(basisInt, 0)
	zeroPx := triple.FromValue(basisPixel, 0)
	gs := &GraphicsState{
		zonePointer:      [3]triple.Collection{one, one, one},
		referencePoint:   [3]triple.Collection{zero, zero, zero},
		loop:             one,
		autoFlip:         one,
		cvtCutIn:         triple.FromValue(basisPixel, 68),
		deltaBase:        triple.FromValue(basisInt, 9),
		deltaShift:       triple.FromValue(basisInt, 3),
		freedomVector:    xAxis(),
		projectionVector: xAxis(),
		dualVector:       xAxis(),
		instructControl:  zero,
		minimumDistance:  triple.FromValue(basisPixel, 64),
		round:            roundToGrid(),
		scanControl:      zero,
		scanType:         zero,
		singleWidthCutIn: triple.FromValue(basisPixel, 64),
		singleWidthValue: zeroPx,
		dirty:            make(map[Register]bool),
	}
	return gs
}

// Clone returns an independent copy. Collections are immutable, so a
// shallow field copy suffices; only the dirty set is duplicated.
func (gs *GraphicsState) Clone() *GraphicsState {
	c := *gs
	c.dirty = make(map[Register]bool, len(gs.dirty))
	for r := range gs.dirty {
		c.dirty[r] = true
	}
	return &c
}

func (gs *GraphicsState) mark(r Register) {
	gs.dirty[r] = true
}

// TakeDirty returns the registers touched since the last call, in register
// order, and resets the dirty set.
func (gs *GraphicsState) TakeDirty() []Register {
	if len(gs.dirty) == 0 {
		return nil
	}
	regs := make([]Register, 0, len(gs.dirty))
	for r := range gs.dirty {
		regs = append(regs, r)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i] < regs[j] })
	gs.dirty = make(map[Register]bool)
	return regs
}

func (gs *GraphicsState) ZonePointer(which int) triple.Collection { return gs.zonePointer[which] }
func (gs *GraphicsState) ReferencePoint(which int) triple.Collection {
	return gs.referencePoint[which]
}
func (gs *GraphicsState) Loop() triple.Collection             { return gs.loop }
func (gs *GraphicsState) AutoFlip() triple.Collection         { return gs.autoFlip }
func (gs *GraphicsState) CVTCutIn() triple.Collection         { return gs.cvtCutIn }
func (gs *GraphicsState) DeltaBase() triple.Collection        { return gs.deltaBase }
func (gs *GraphicsState) DeltaShift() triple.Collection       { return gs.deltaShift }
func (gs *GraphicsState) FreedomVector() Vector               { return gs.freedomVector }
func (gs *GraphicsState) ProjectionVector() Vector            { return gs.projectionVector }
func (gs *GraphicsState) DualVector() Vector                  { return gs.dualVector }
func (gs *GraphicsState) InstructControl() triple.Collection  { return gs.instructControl }
func (gs *GraphicsState) MinimumDistance() triple.Collection  { return gs.minimumDistance }
func (gs *GraphicsState) Round() RoundState                   { return gs.round }
func (gs *GraphicsState) ScanControl() triple.Collection      { return gs.scanControl }
func (gs *GraphicsState) ScanType() triple.Collection         { return gs.scanType }
func (gs *GraphicsState) SingleWidthCutIn() triple.Collection { return gs.singleWidthCutIn }
func (gs *GraphicsState) SingleWidthValue() triple.Collection { return gs.singleWidthValue }

func (gs *GraphicsState) SetZonePointer(which int, v triple.Collection) {
	gs.zonePointer[which] = v
	gs.mark(RegZonePointer0 + Register(which))
}

func (gs *GraphicsState) SetAllZonePointers(v triple.Collection) {
	for i := 0; i < 3; i++ {
		gs.SetZonePointer(i, v)
	}
}

func (gs *GraphicsState) SetReferencePoint(which int, v triple.Collection) {
	gs.referencePoint[which] = v
	gs.mark(RegReferencePoint0 + Register(which))
}

func (gs *GraphicsState) SetLoop(v triple.Collection) {
	gs.loop = v
	gs.mark(RegLoop)
}

// ResetLoop restores the loop counter to 1 without marking the register
// dirty; the implicit reset after a looping instruction is not a hint
// effect worth reporting.
func (gs *GraphicsState) ResetLoop() {
	gs.loop = triple.FromValue(basisInt, 1)
}

func (gs *GraphicsState) SetAutoFlip(v triple.Collection) {
	gs.autoFlip = v
	gs.mark(RegAutoFlip)
}

func (gs *GraphicsState) SetCVTCutIn(v triple.Collection) {
	gs.cvtCutIn = v
	gs.mark(RegCVTCutIn)
}

func (gs *GraphicsState) SetDeltaBase(v triple.Collection) {
	gs.deltaBase = v
	gs.mark(RegDeltaBase)
}

func (gs *GraphicsState) SetDeltaShift(v triple.Collection) {
	gs.deltaShift = v
	gs.mark(RegDeltaShift)
}

func (gs *GraphicsState) SetFreedomVector(v Vector) {
	gs.freedomVector = v
	gs.mark(RegFreedomVector)
}

func (gs *GraphicsState) SetProjectionVector(v Vector) {
	gs.projectionVector = v
	gs.dualVector = v
	gs.mark(RegProjectionVector)
	gs.mark(RegDualVector)
}

func (gs *GraphicsState) SetDualVector(v Vector) {
	gs.dualVector = v
	gs.mark(RegDualVector)
}

func (gs *GraphicsState) SetInstructControl(v triple.Collection) {
	gs.instructControl = v
	gs.mark(RegInstructControl)
}

func (gs *GraphicsState) SetMinimumDistance(v triple.Collection) {
	gs.minimumDistance = v
	gs.mark(RegMinimumDistance)
}

func (gs *GraphicsState) SetRound(r RoundState) {
	gs.round = r
	gs.mark(RegRoundState)
}

func (gs *GraphicsState) SetScanControl(v triple.Collection) {
	gs.scanControl = v
	gs.mark(RegScanControl)
}

func (gs *GraphicsState) SetScanType(v triple.Collection) {
	gs.scanType = v
	gs.mark(RegScanType)
}

func (gs *GraphicsState) SetSingleWidthCutIn(v triple.Collection) {
	gs.singleWidthCutIn = v
	gs.mark(RegSingleWidthCutIn)
}

func (gs *GraphicsState) SetSingleWidthValue(v triple.Collection) {
	gs.singleWidthValue = v
	gs.mark(RegSingleWidthValue)
}

// ResetPerGlyph restores the registers a rasterizer resets before every
// glyph program: vectors, reference points, zone pointers and the loop
// counter. The registers the pre-program legitimately configures for all
// glyphs (rounding, cut-ins, deltas, scan control) stay untouched.
func (gs *GraphicsState) ResetPerGlyph() {
	d := NewGraphicsState()
	gs.zonePointer = d.zonePointer
	gs.referencePoint = d.referencePoint
	gs.loop = d.loop
	gs.freedomVector = d.freedomVector
	gs.projectionVector = d.projectionVector
	gs.dualVector = d.dualVector
	gs.dirty = make(map[Register]bool)
}

// Combine merges another state into the receiver by register-wise set
// union. Used when control flow rejoins after an IF/ELSE fork. The dirty
// sets are merged as well.
func (gs *GraphicsState) Combine(other *GraphicsState) {
	for i := 0; i < 3; i++ {
		gs.zonePointer[i] = gs.zonePointer[i].Union(other.zonePointer[i])
		gs.referencePoint[i] = gs.referencePoint[i].Union(other.referencePoint[i])
	}
	gs.loop = gs.loop.Union(other.loop)
	gs.autoFlip = gs.autoFlip.Union(other.autoFlip)
	gs.cvtCutIn = gs.cvtCutIn.Union(other.cvtCutIn)
	gs.deltaBase = gs.deltaBase.Union(other.deltaBase)
	gs.deltaShift = gs.deltaShift.Union(other.deltaShift)
	gs.freedomVector = combineVector(gs.freedomVector, other.freedomVector)
	gs.projectionVector = combineVector(gs.projectionVector, other.projectionVector)
	gs.dualVector = combineVector(gs.dualVector, other.dualVector)
	gs.instructControl = gs.instructControl.Union(other.instructControl)
	gs.minimumDistance = gs.minimumDistance.Union(other.minimumDistance)
	gs.round = RoundState{
		Period:    gs.round.Period.Union(other.round.Period),
		Phase:     gs.round.Phase.Union(other.round.Phase),
		Threshold: gs.round.Threshold.Union(other.round.Threshold),
	}
	gs.scanControl = gs.scanControl.Union(other.scanControl)
	gs.scanType = gs.scanType.Union(other.scanType)
	gs.singleWidthCutIn = gs.singleWidthCutIn.Union(other.singleWidthCutIn)
	gs.singleWidthValue = gs.singleWidthValue.Union(other.singleWidthValue)
	for r := range other.dirty {
		gs.dirty[r] = true
	}
}

func combineVector(a, b Vector) Vector {
	return Vector{a.X.Union(b.X), a.Y.Union(b.Y)}
}
