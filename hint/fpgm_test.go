package hint

import (
	"testing"

	"github.com/npillmayer/hinting"
)

func splitRaw(t *testing.T, raw []byte) (*Context, *hinting.Collector, error) {
	t.Helper()
	code, err := Decode(raw)
	if err != nil {
		t.Fatalf("expected font program to decode, got %v", err)
	}
	coll := &hinting.Collector{}
	ctx := &Context{Sink: coll}
	return ctx, coll, SplitFunctions(code, ctx)
}

func TestSplitRegistersFunctions(t *testing.T) {
	ctx, coll, err := splitRaw(t, []byte{
		0xB1, 0, 3, // indices for both FDEFs
		0x2C, 0xB0, 42, 0x2D, // FDEF 3 { PUSHB 42 }
		0x2C, 0x60, 0x2D, // FDEF 0 { ADD }
	})
	if err != nil {
		t.Fatalf("expected split to succeed, got %v", err)
	}
	if len(ctx.Functions) != 2 {
		t.Fatalf("expected 2 functions, have %d", len(ctx.Functions))
	}
	fn3 := ctx.Functions[3]
	if fn3 == nil || fn3.Name != "FDEF 3" || len(fn3.Code) != 1 {
		t.Errorf("expected FDEF 3 with one instruction, have %v", fn3)
	}
	fn0 := ctx.Functions[0]
	if fn0 == nil || len(fn0.Code) != 1 || fn0.Code[0].Opcode != OpADD {
		t.Errorf("expected FDEF 0 to contain ADD, have %v", fn0)
	}
	if len(coll.Diagnostics) != 0 {
		t.Errorf("expected a clean split, have %v", coll.Diagnostics)
	}
}

func TestSplitNestedDefRejected(t *testing.T) {
	_, coll, err := splitRaw(t, []byte{0xB1, 0, 1, 0x2C, 0x2C, 0x2D, 0x2D})
	if err == nil {
		t.Errorf("expected nested FDEF to be a hard error")
	}
	if len(coll.ByCode("V0175")) != 1 {
		t.Errorf("expected V0175 for the nested FDEF, have %v", coll.Diagnostics)
	}
}

func TestSplitStrayENDF(t *testing.T) {
	_, coll, err := splitRaw(t, []byte{0x2D})
	if err == nil {
		t.Errorf("expected a stray ENDF to be a hard error")
	}
	if len(coll.ByCode("V0173")) != 1 {
		t.Errorf("expected V0173 for the stray ENDF, have %v", coll.Diagnostics)
	}
}

func TestSplitMissingIndex(t *testing.T) {
	_, coll, err := splitRaw(t, []byte{0x2C, 0x2D})
	if err == nil {
		t.Errorf("expected FDEF without an index to be a hard error")
	}
	if len(coll.ByCode("E6046")) != 1 {
		t.Errorf("expected E6046 underflow, have %v", coll.Diagnostics)
	}
}

func TestSplitUnterminatedDefTolerated(t *testing.T) {
	ctx, coll, err := splitRaw(t, []byte{0xB0, 1, 0x2C, 0xB0, 5, 0x60, 0x61})
	if err != nil {
		t.Fatalf("expected an unterminated trailing FDEF to be tolerated, got %v", err)
	}
	if len(coll.ByCode("V0178")) != 1 {
		t.Errorf("expected V0178 for the implicit close, have %v", coll.Diagnostics)
	}
	fn := ctx.Functions[1]
	if fn == nil {
		t.Fatalf("expected FDEF 1 to be registered anyway")
	}
	// the last instruction is dropped, since it may be a truncation artifact
	if len(fn.Code) != 2 || fn.Code[1].Opcode != OpADD {
		t.Errorf("expected body [PUSHB, ADD], have %v", fn.Code)
	}
}

func TestSplitIDEF(t *testing.T) {
	ctx, coll, err := splitRaw(t, []byte{0xB0, 0x28, 0x89, 0x21, 0x2D})
	if err != nil {
		t.Fatalf("expected IDEF of a reserved opcode to succeed, got %v", err)
	}
	body := ctx.Instructions[0x28]
	if body == nil || len(body.Code) != 1 || body.Code[0].Opcode != OpPOP {
		t.Errorf("expected IDEF 0x28 to contain POP, have %v", body)
	}
	if len(coll.ByCode("V0174")) != 1 {
		t.Errorf("expected the IDEF-deprecated note, have %v", coll.Diagnostics)
	}
}

func TestSplitIDEFOfBuiltin(t *testing.T) {
	_, coll, err := splitRaw(t, []byte{0xB0, 0x60, 0x89, 0x2D})
	if err == nil {
		t.Errorf("expected redefining ADD to be a hard error")
	}
	if len(coll.ByCode("E6026")) != 1 {
		t.Errorf("expected E6026, have %v", coll.Diagnostics)
	}
	_, coll, err = splitRaw(t, []byte{0xB8, 0x01, 0x00, 0x89, 0x2D})
	if err == nil {
		t.Errorf("expected an out-of-range IDEF index to be a hard error")
	}
	if len(coll.ByCode("E6025")) != 1 {
		t.Errorf("expected E6025, have %v", coll.Diagnostics)
	}
}
