package hint

import (
	"sort"

	"github.com/npillmayer/hinting/history"
)

// Resource enumerates the indexable resources a hint program can touch.
// Point usage is tracked per zone.
type Resource int

const (
	ResourcePoint Resource = iota // glyph zone points
	ResourceTwilightPoint
	ResourceContour
	ResourceCVT
	ResourceStorage
	ResourceFunction
	ResourceJump
)

var resourceNames = [...]string{
	"point", "twilightPoint", "contour", "cvt", "storage", "function", "jump",
}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return "resource?"
	}
	return resourceNames[r]
}

// Maxima are running high-water marks of an analysis pass. A value of -1
// means the resource was never touched. Stack is the deepest operand stack
// observed, PointMoved the highest glyph point actually moved.
type Maxima struct {
	CVT           int64
	Function      int64
	Point         int64
	PointMoved    int64
	Stack         int64
	Storage       int64
	TwilightPoint int64
	Contour       int64
}

func newMaxima() Maxima {
	return Maxima{-1, -1, -1, -1, -1, -1, -1, -1}
}

// Combine folds another maxima record into the receiver.
func (m *Maxima) Combine(other Maxima) {
	m.CVT = max(m.CVT, other.CVT)
	m.Function = max(m.Function, other.Function)
	m.Point = max(m.Point, other.Point)
	m.PointMoved = max(m.PointMoved, other.PointMoved)
	m.Stack = max(m.Stack, other.Stack)
	m.Storage = max(m.Storage, other.Storage)
	m.TwilightPoint = max(m.TwilightPoint, other.TwilightPoint)
	m.Contour = max(m.Contour, other.Contour)
}

// CallSite identifies one instruction in one program, for attributing
// interprocedural effects.
type CallSite struct {
	Program string
	PC      int
}

// Statistics aggregates what an analysis pass learned: running maxima,
// per-resource provenance maps (which indices were touched, and the
// provenance of the values that selected them), and the interprocedural
// effect map telling which graphics-state registers each call site may
// alter. Statistics only ever grow during a pass.
type Statistics struct {
	Maxima    Maxima
	histories map[Resource]map[int]history.Entry
	gsEffects map[CallSite]map[Register]bool
}

// NewStatistics returns an empty aggregate.
func NewStatistics() *Statistics {
	return &Statistics{
		Maxima:    newMaxima(),
		histories: make(map[Resource]map[int]history.Entry),
		gsEffects: make(map[CallSite]map[Register]bool),
	}
}

// NoteUsage records that index of the given resource was touched, with the
// provenance of the selecting value. Repeated touches of the same index
// accumulate into a provenance group. The matching maxima entry is bumped.
func (st *Statistics) NoteUsage(res Resource, index int, h history.Entry) {
	m := st.histories[res]
	if m == nil {
		m = make(map[int]history.Entry)
		st.histories[res] = m
	}
	m[index] = history.Combine(m[index], h)
	switch res {
	case ResourcePoint:
		st.Maxima.Point = max(st.Maxima.Point, int64(index))
	case ResourceTwilightPoint:
		st.Maxima.TwilightPoint = max(st.Maxima.TwilightPoint, int64(index))
	case ResourceContour:
		st.Maxima.Contour = max(st.Maxima.Contour, int64(index))
	case ResourceCVT:
		st.Maxima.CVT = max(st.Maxima.CVT, int64(index))
	case ResourceStorage:
		st.Maxima.Storage = max(st.Maxima.Storage, int64(index))
	case ResourceFunction:
		st.Maxima.Function = max(st.Maxima.Function, int64(index))
	}
}

// NotePointMoved records that a glyph point was moved (not merely read).
func (st *Statistics) NotePointMoved(index int) {
	st.Maxima.PointMoved = max(st.Maxima.PointMoved, int64(index))
}

// StackCheck records the current operand stack depth.
func (st *Statistics) StackCheck(depth int) {
	st.Maxima.Stack = max(st.Maxima.Stack, int64(depth))
}

// NoteGSEffect records that the instruction at site may alter the given
// graphics-state register.
func (st *Statistics) NoteGSEffect(site CallSite, reg Register) {
	m := st.gsEffects[site]
	if m == nil {
		m = make(map[Register]bool)
		st.gsEffects[site] = m
	}
	m[reg] = true
}

// History returns the accumulated provenance for one index of a resource,
// or nil if the index was never touched.
func (st *Statistics) History(res Resource, index int) history.Entry {
	return st.histories[res][index]
}

// TouchedIndices returns the touched indices of a resource in ascending
// order.
func (st *Statistics) TouchedIndices(res Resource) []int {
	m := st.histories[res]
	indices := make([]int, 0, len(m))
	for i := range m {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// GSEffects returns the registers the given call site may alter, in
// register order.
func (st *Statistics) GSEffects(site CallSite) []Register {
	m := st.gsEffects[site]
	if len(m) == 0 {
		return nil
	}
	regs := make([]Register, 0, len(m))
	for r := range m {
		regs = append(regs, r)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i] < regs[j] })
	return regs
}

// EffectSites returns all call sites with recorded effects, ordered by
// program name and pc.
func (st *Statistics) EffectSites() []CallSite {
	sites := make([]CallSite, 0, len(st.gsEffects))
	for s := range st.gsEffects {
		sites = append(sites, s)
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Program != sites[j].Program {
			return sites[i].Program < sites[j].Program
		}
		return sites[i].PC < sites[j].PC
	})
	return sites
}

// effectRegistersFor unions the registers touched by any site inside the
// named program, for propagating callee effects to a call site.
func (st *Statistics) effectRegistersFor(program string) []Register {
	set := make(map[Register]bool)
	for site, regs := range st.gsEffects {
		if site.Program != program {
			continue
		}
		for r := range regs {
			set[r] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	regs := make([]Register, 0, len(set))
	for r := range set {
		regs = append(regs, r)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i] < regs[j] })
	return regs
}

// Merge folds another aggregate into the receiver. Used when sibling
// program bodies are analyzed with separate Statistics.
func (st *Statistics) Merge(other *Statistics) {
	st.Maxima.Combine(other.Maxima)
	for res, m := range other.histories {
		for i, h := range m {
			st.NoteUsage(res, i, h)
		}
	}
	for site, regs := range other.gsEffects {
		for r := range regs {
			st.NoteGSEffect(site, r)
		}
	}
}
