package hint

import (
	"testing"

	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
)

func TestIFConstantCondition(t *testing.T) {
	st, coll := runHints(t, []byte{
		0xB0, 1, 0x58, // IF (true)
		0xB0, 7,
		0x1B, // ELSE
		0xB0, 9,
		0x59, // EIF
	})
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, have %v", coll.Diagnostics)
	}
	expectTop(t, st, 7)
	if st.Depth() != 0 {
		t.Errorf("expected only the live branch to run, depth is %d", st.Depth())
	}

	st, _ = runHints(t, []byte{
		0xB0, 0, 0x58, // IF (false)
		0xB0, 7,
		0x1B, // ELSE
		0xB0, 9,
		0x59, // EIF
	})
	expectTop(t, st, 9)
}

func TestIFNonzeroCondition(t *testing.T) {
	// any nonzero condition value is true, not just 1
	st, coll := runHints(t, []byte{
		0xB0, 2, 0x58, // IF (2)
		0xB0, 7,
		0x59, // EIF
	})
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, have %v", coll.Diagnostics)
	}
	expectTop(t, st, 7)
}

func TestIFForkMerges(t *testing.T) {
	st, coll := runHints(t, []byte{
		0xB0, 1, 0x88, 0x58, // IF over GETINFO: condition is {0, 1, ...}
		0xB0, 10,
		0x1B, // ELSE
		0xB0, 20,
		0x59, // EIF
	})
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected a clean merge, have %v", coll.Diagnostics)
	}
	if st.Depth() != 1 {
		t.Fatalf("expected both branches to leave one value, depth is %d", st.Depth())
	}
	v, h := popValue(t, st)
	got, ok := v.Enumerate(4)
	if !ok || len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("expected the merged value to be {10, 20}, is %v", v)
	}
	if h.Kind() != history.KindGroup {
		t.Errorf("expected the merged provenance to be a group, is %v", h.Kind())
	}
}

func TestIFStackImbalance(t *testing.T) {
	st, coll := runHints(t, []byte{
		0xB0, 1, 0x88, 0x58, // IF (undetermined)
		0xB1, 1, 2,
		0x1B, // ELSE
		0xB0, 3,
		0x59, // EIF
	})
	bad := coll.ByCode("V0550")
	if len(bad) != 1 || bad[0].Severity != hinting.SeverityError {
		t.Fatalf("expected the imbalance error, have %v", coll.Diagnostics)
	}
	if st.PC != doNotProceedPC {
		t.Errorf("expected the body to halt, pc is %d", st.PC)
	}
}

func TestIFWithoutEIF(t *testing.T) {
	_, coll := runHints(t, []byte{0xB0, 1, 0x58, 0xB0, 7})
	if len(coll.ByCode("E6024")) != 1 {
		t.Errorf("expected the missing-EIF warning, have %v", coll.Diagnostics)
	}
}

func TestEmptyIF(t *testing.T) {
	_, coll := runHints(t, []byte{0xB0, 1, 0x58, 0x59})
	bad := coll.ByCode("V0802")
	if len(bad) != 1 || bad[0].Severity != hinting.SeverityError {
		t.Errorf("expected the empty-IF error, have %v", coll.Diagnostics)
	}
}

func TestJumpSkipsInstructions(t *testing.T) {
	st, coll := runHints(t, []byte{
		0xB0, 3, // jump offset
		0x1C, // JMPR at byte 2, target byte 5
		0xB0, 99,
		0xB0, 7, // byte 5
	})
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, have %v", coll.Diagnostics)
	}
	if st.Depth() != 1 {
		t.Fatalf("expected the skipped push not to run, depth is %d", st.Depth())
	}
	expectTop(t, st, 7)
	if st.Statistics.History(ResourceJump, 3) == nil {
		t.Errorf("expected the jump target to be recorded")
	}
}

func TestJumpToSelf(t *testing.T) {
	st, coll := runHints(t, []byte{0xB0, 0, 0x1C})
	if len(coll.ByCode("V0516")) != 1 {
		t.Errorf("expected the jump-to-self error, have %v", coll.Diagnostics)
	}
	if st.PC != doNotProceedPC {
		t.Errorf("expected the body to halt, pc is %d", st.PC)
	}
}

func TestJumpOffBoundary(t *testing.T) {
	_, coll := runHints(t, []byte{0xB0, 2, 0x1C, 0xB1, 1, 2})
	if len(coll.ByCode("V0515")) != 1 {
		t.Errorf("expected the bad-target error, have %v", coll.Diagnostics)
	}
}

func TestConditionalJump(t *testing.T) {
	// JROT with a true condition takes the jump
	st, _ := runHints(t, []byte{
		0xB1, 3, 1, // offset 3, condition 1
		0x78, // JROT at byte 3, target byte 6
		0xB0, 99,
		0xB0, 7,
	})
	if st.Depth() != 1 {
		t.Fatalf("expected the jump to be taken, depth is %d", st.Depth())
	}
	expectTop(t, st, 7)

	// a nonzero non-one condition counts as true as well
	st, _ = runHints(t, []byte{
		0xB1, 3, 2, // offset 3, condition 2
		0x78,
		0xB0, 99,
		0xB0, 7,
	})
	expectTop(t, st, 7)

	// an undetermined condition falls through with a warning
	st, coll := runHints(t, []byte{
		0xB1, 3, 1, 0x88, // offset 3, then GETINFO as the condition
		0x78,
		0xB0, 99,
	})
	if len(coll.ByCode("V0808")) != 1 {
		t.Errorf("expected the undetermined-jump warning, have %v", coll.Diagnostics)
	}
	expectTop(t, st, 99)
}

func splitAndRun(t *testing.T, fpgm, main []byte) (*State, *hinting.Collector) {
	t.Helper()
	coll := &hinting.Collector{}
	ctx := &Context{Sink: coll}
	code, err := Decode(fpgm)
	if err != nil {
		t.Fatalf("expected font program to decode, got %v", err)
	}
	if err := SplitFunctions(code, ctx); err != nil {
		t.Fatalf("expected split to succeed, got %v", err)
	}
	st := NewState()
	runHintsOn(t, st, ctx, main)
	return st, coll
}

func TestCallRunsFunction(t *testing.T) {
	st, coll := splitAndRun(t,
		[]byte{0xB0, 0, 0x2C, 0xB0, 42, 0x2D}, // FDEF 0 { PUSHB 42 }
		[]byte{0xB0, 0, 0x2B},                 // CALL 0
	)
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, have %v", coll.Diagnostics)
	}
	expectTop(t, st, 42)
	if st.Statistics.Maxima.Function != 0 {
		t.Errorf("expected function maxima 0, is %d", st.Statistics.Maxima.Function)
	}
	if st.Statistics.History(ResourceFunction, 0) == nil {
		t.Errorf("expected the called function to be recorded")
	}
}

func TestCallUnknownFunction(t *testing.T) {
	st, coll := runHints(t, []byte{0xB0, 7, 0x2B})
	bad := coll.ByCode("E6020")
	if len(bad) != 1 || bad[0].Severity != hinting.SeverityError {
		t.Errorf("expected E6020, have %v", coll.Diagnostics)
	}
	if !st.ValidationFailed() {
		t.Errorf("expected the unknown call to fail validation")
	}
}

func TestLoopcall(t *testing.T) {
	st, coll := splitAndRun(t,
		[]byte{0xB0, 0, 0x2C, 0xB0, 1, 0x60, 0x2D}, // FDEF 0 { PUSHB 1; ADD }
		[]byte{0xB2, 0, 3, 0, 0x2A},                // 0, then LOOPCALL 3 times FDEF 0
	)
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, have %v", coll.Diagnostics)
	}
	expectTop(t, st, 3)
}

func TestCallEffectAttribution(t *testing.T) {
	st, _ := splitAndRun(t,
		[]byte{0xB0, 0, 0x2C, 0xB0, 5, 0x10, 0x2D}, // FDEF 0 { SRP0 5 }
		[]byte{0xB0, 0, 0x2B},                      // CALL at instruction 1
	)
	regs := st.Statistics.GSEffects(CallSite{Program: "test", PC: 1})
	if len(regs) != 1 || regs[0] != RegReferencePoint0 {
		t.Errorf("expected the call site to report referencePoint0, have %v", regs)
	}
	inner := st.Statistics.GSEffects(CallSite{Program: "FDEF 0", PC: 1})
	if len(inner) != 1 || inner[0] != RegReferencePoint0 {
		t.Errorf("expected the SRP0 site inside the body to be recorded, have %v", inner)
	}
}

func TestRecursionDepthBounded(t *testing.T) {
	st, coll := splitAndRun(t,
		[]byte{0xB0, 0, 0x2C, 0xB0, 0, 0x2B, 0x2D}, // FDEF 0 { CALL 0 }
		[]byte{0xB0, 0, 0x2B},
	)
	if len(coll.ByCode("E6061")) == 0 {
		t.Errorf("expected the call depth limit to trip, have %v", coll.Diagnostics)
	}
	if !st.ValidationFailed() {
		t.Errorf("expected recursion to fail validation")
	}
}
