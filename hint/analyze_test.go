package hint

import (
	"reflect"
	"testing"

	"github.com/npillmayer/hinting"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type AnalysisTestEnviron struct {
	suite.Suite
	analysis *Analysis
	sink     *hinting.Collector
}

// listen for 'go test' command --> run test methods
func TestAnalysisOfFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.hints")
	defer teardown()
	suite.Run(t, new(AnalysisTestEnviron))
}

// run once, before test suite methods: analyze a small synthetic font
func (env *AnalysisTestEnviron) SetupSuite() {
	env.T().Log("Setting up analysis test suite")
	env.sink = &hinting.Collector{}
	env.analysis = NewAnalysis(env.sink)
	env.analysis.SetCVT([]int64{0, 100})

	fpgm := []byte{
		0xB1, 1, 0, // indices
		0x2C, 0xB0, 1, 0x60, 0x2D, // FDEF 0 { PUSHB 1; ADD }
		0x2C, 0x19, 0x2D, // FDEF 1 { RTHG }
	}
	env.Require().NoError(env.analysis.AnalyzeFontProgram(fpgm))

	prep := []byte{
		0xB0, 0x48, 0x76, // SROUND grid period
		0xB1, 0, 7, 0x42, // WS 0 := 7
		0xB0, 1, 0x2B, // CALL 1
	}
	env.Require().NoError(env.analysis.AnalyzePreProgram(prep))

	glyph := []byte{
		0xB0, 0, 0x43, // RS 0
		0xB0, 0, 0x2B, // CALL 0
		0xB0, 2, 0x2E, // MDAP[noRound] point 2
		0xB0, 1, 0x45, // RCVT 1
	}
	env.Require().NoError(env.analysis.AnalyzeGlyphProgram(glyph, "glyf[36]", 4, 1))
}

// --- Tests -----------------------------------------------------------------

func (env *AnalysisTestEnviron) TestVerdict() {
	env.False(env.analysis.ValidationFailed(), "expected the synthetic font to validate")
	env.False(env.sink.HasErrors(), "expected no error diagnostics, have %v", env.sink.Diagnostics)
}

func (env *AnalysisTestEnviron) TestFunctionTable() {
	env.Equal([]int{0, 1}, env.analysis.Functions(), "expected FDEFs 0 and 1 to be registered")
}

func (env *AnalysisTestEnviron) TestMaxima() {
	m := env.analysis.Statistics().Maxima
	env.EqualValues(2, m.PointMoved, "expected MDAP to move point 2")
	env.EqualValues(0, m.Storage, "expected storage slot 0 to be the highest used")
	env.EqualValues(1, m.Function, "expected FDEF 1 to be the highest called")
	env.EqualValues(1, m.CVT, "expected CVT entry 1 to be the highest read")
	env.True(m.Stack >= 2, "expected a stack high-water of at least 2, is %d", m.Stack)
}

func (env *AnalysisTestEnviron) TestResourceProvenance() {
	stats := env.analysis.Statistics()
	env.Equal([]int{1}, stats.TouchedIndices(ResourceCVT))
	env.Equal([]int{0}, stats.TouchedIndices(ResourceStorage))
	env.Equal([]int{0, 1}, stats.TouchedIndices(ResourceFunction))
	env.NotNil(stats.History(ResourceStorage, 0), "expected provenance for storage slot 0")
}

func (env *AnalysisTestEnviron) TestPrepRoundStateSurvives() {
	// FDEF 1 switched to round-to-half-grid during prep
	rs := env.analysis.state.Graphics.Round()
	phase, ok := rs.Phase.ToNumber()
	env.True(ok, "expected a determined phase, is %v", rs.Phase)
	env.EqualValues(32, phase, "expected the half-grid phase to survive into glyph state")
}

func (env *AnalysisTestEnviron) TestFunctionSignatures() {
	sigs := env.analysis.FunctionSignatures()
	env.Require().Contains(sigs, 0)
	env.Require().Contains(sigs, 1)
	env.Equal(FunctionSignature{
		Args:    1,
		Results: 1,
		Formals: []FormalArg{{Kind: ArgKindValue, Op: "ADD"}},
	}, sigs[0], "expected FDEF 0 to consume one slot and produce one")
	env.Equal(FunctionSignature{Args: 0, Results: 0}, sigs[1],
		"expected FDEF 1 to leave the stack alone")
}

// --- Single tests outside the suite ----------------------------------------

func TestFunctionSignatureKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.hints")
	defer teardown()
	a := NewAnalysis(&hinting.Collector{})
	fpgm := []byte{
		0xB0, 0, 0x2C, 0x10, 0x2D, // FDEF 0 { SRP0 }
		0xB0, 1, 0x2C, 0x78, 0x2D, // FDEF 1 { JROT }
	}
	if err := a.AnalyzeFontProgram(fpgm); err != nil {
		t.Fatalf("expected the font program to analyze, got %v", err)
	}
	sigs := a.FunctionSignatures()
	want := []FormalArg{{Kind: ArgKindPoint, Op: "SRP0"}}
	if got := sigs[0].Formals; !reflect.DeepEqual(got, want) {
		t.Errorf("expected FDEF 0 to consume a point index, is %v", got)
	}
	want = []FormalArg{
		{Kind: ArgKindBoolean, Op: "JROT"},
		{Kind: ArgKindJump, Op: "JROT"},
	}
	if got := sigs[1].Formals; !reflect.DeepEqual(got, want) {
		t.Errorf("expected FDEF 1 to consume a condition and an offset, is %v", got)
	}
}

func TestAnalyzeGlyphIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.hints")
	defer teardown()
	sink := &hinting.Collector{}
	a := NewAnalysis(sink)
	if err := a.AnalyzePreProgram([]byte{0xB1, 0, 7, 0x42}); err != nil {
		t.Fatalf("expected prep to analyze, got %v", err)
	}
	// the first glyph fails with an underflow, the second is unaffected
	if err := a.AnalyzeGlyphProgram([]byte{0x60}, "glyf[1]", 4, 1); err != nil {
		t.Fatalf("expected glyph analysis to run, got %v", err)
	}
	if !a.ValidationFailed() {
		t.Errorf("expected the underflowing glyph to fail the verdict")
	}
	if err := a.AnalyzeGlyphProgram([]byte{0xB0, 0, 0x43}, "glyf[2]", 4, 1); err != nil {
		t.Fatalf("expected glyph analysis to run, got %v", err)
	}
	if len(sink.ByCode("V0807")) != 0 {
		t.Errorf("expected storage written in prep to be visible in glyphs, have %v",
			sink.ByCode("V0807"))
	}
}

func TestPrepMayNotUseGlyphZone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.hints")
	defer teardown()
	sink := &hinting.Collector{}
	a := NewAnalysis(sink)
	// MDAP with the default zone pointer targets the glyph zone
	if err := a.AnalyzePreProgram([]byte{0xB0, 0, 0x2E}); err != nil {
		t.Fatalf("expected prep to analyze, got %v", err)
	}
	if len(sink.ByCode("E6040")) != 1 {
		t.Errorf("expected the glyph-zone-in-prep error, have %v", sink.Diagnostics)
	}
	if !a.ValidationFailed() {
		t.Errorf("expected the zone violation to fail the verdict")
	}
}
