package hint

import (
	"testing"

	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/triple"
)

func deltaState() (*State, *hinting.Collector, *Context) {
	st := NewState()
	st.PointCount = 4
	st.InGlyph = true
	coll := &hinting.Collector{}
	return st, coll, &Context{Sink: coll}
}

func TestDeltaZeroCount(t *testing.T) {
	st, coll, ctx := deltaState()
	runHintsOn(t, st, ctx, []byte{0xB0, 0, 0x5D}) // DELTAP1, count 0
	warn := coll.ByCode("V0810")
	if len(warn) != 1 || warn[0].Severity != hinting.SeverityWarning {
		t.Errorf("expected the zero-count warning, have %v", coll.Diagnostics)
	}
	if st.ValidationFailed() {
		t.Errorf("expected a zero-count delta not to fail validation")
	}

	st, coll, ctx = deltaState()
	st.CVT = []triple.Collection{triple.FromValue(basisPixel, 80)}
	runHintsOn(t, st, ctx, []byte{0xB0, 0, 0x73}) // DELTAC1, count 0
	if len(coll.ByCode("V0810")) != 1 {
		t.Errorf("expected the zero-count warning for DELTAC, have %v", coll.Diagnostics)
	}
}

func TestDeltaUnsortedArguments(t *testing.T) {
	st, coll, ctx := deltaState()
	// pairs pushed with descending exception arguments
	runHintsOn(t, st, ctx, []byte{0xB4, 0x20, 1, 0x10, 2, 2, 0x5D})
	warn := coll.ByCode("V0809")
	if len(warn) != 1 || warn[0].Severity != hinting.SeverityWarning {
		t.Errorf("expected the unsorted-arguments warning, have %v", coll.Diagnostics)
	}
	if st.ValidationFailed() {
		t.Errorf("expected unsorted delta arguments not to fail validation")
	}

	st, coll, ctx = deltaState()
	// properly sorted pairs pass silently
	runHintsOn(t, st, ctx, []byte{0xB4, 0x10, 1, 0x20, 2, 2, 0x5D})
	if len(coll.Diagnostics) != 0 {
		t.Errorf("expected sorted delta arguments to be clean, have %v", coll.Diagnostics)
	}
}

func TestDeltaCWidensEntry(t *testing.T) {
	st, coll, ctx := deltaState()
	st.CVT = []triple.Collection{triple.FromValue(basisPixel, 80)}
	runHintsOn(t, st, ctx, []byte{0xB2, 0x10, 0, 1, 0x73}) // DELTAC1, entry 0
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, have %v", coll.Diagnostics)
	}
	if _, single := st.CVT[0].ToNumber(); single {
		t.Errorf("expected the delta to widen CVT entry 0, is %v", st.CVT[0])
	}
	// default delta shift 3 gives steps of 1/8 pixel, up to 8 either way
	if !st.CVT[0].Contains(80-64) || !st.CVT[0].Contains(80+64) || !st.CVT[0].Contains(80) {
		t.Errorf("expected CVT entry 0 to span one pixel around 80, is %v", st.CVT[0])
	}
}
