package hint

import "testing"

func TestDecodePushForms(t *testing.T) {
	raw := []byte{
		0xB0, 7, // PUSHB[0]
		0xB1, 1, 2, // PUSHB[1]
		0x40, 2, 3, 4, // NPUSHB
		0xB8, 0xFF, 0xD8, // PUSHW[0], -40
		0x41, 1, 0x01, 0x00, // NPUSHW, 256
		0x60, // ADD
	}
	code, err := Decode(raw)
	if err != nil {
		t.Fatalf("expected stream to decode, got %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 instructions, have %d", len(code))
	}
	wantData := [][]int64{{7}, {1, 2}, {3, 4}, {-40}, {256}, nil}
	wantOffsets := []int{0, 2, 5, 9, 12, 16}
	for i, in := range code {
		if in.offset != wantOffsets[i] {
			t.Errorf("expected instruction %d at offset %d, is %d", i, wantOffsets[i], in.offset)
		}
		if len(in.Data) != len(wantData[i]) {
			t.Errorf("expected instruction %d to carry %v, is %v", i, wantData[i], in.Data)
			continue
		}
		for j, d := range wantData[i] {
			if in.Data[j] != d {
				t.Errorf("expected datum %d of instruction %d to be %d, is %d", j, i, d, in.Data[j])
			}
		}
	}
	if code[5].Opcode != OpADD {
		t.Errorf("expected last instruction to be ADD, is %s", code[5].Opcode)
	}
}

func TestDecodeTruncatedPush(t *testing.T) {
	if _, err := Decode([]byte{0xB1, 1}); err == nil {
		t.Errorf("expected truncated PUSHB[1] to be an error")
	}
	if _, err := Decode([]byte{0x40, 3, 1}); err == nil {
		t.Errorf("expected truncated NPUSHB to be an error")
	}
	code, err := Decode([]byte{0x60, 0xB8, 0x01})
	if err == nil {
		t.Errorf("expected truncated PUSHW[0] to be an error")
	}
	if len(code) != 1 || code[0].Opcode != OpADD {
		t.Errorf("expected the instructions before the truncation to survive, have %v", code)
	}
}

func TestIndexAtOffset(t *testing.T) {
	code, err := Decode([]byte{0xB1, 1, 2, 0x60, 0xB0, 3})
	if err != nil {
		t.Fatalf("expected stream to decode, got %v", err)
	}
	if i := indexAtOffset(code, 3); i != 1 {
		t.Errorf("expected offset 3 to map to instruction 1, is %d", i)
	}
	if i := indexAtOffset(code, 4); i != 2 {
		t.Errorf("expected offset 4 to map to instruction 2, is %d", i)
	}
	if i := indexAtOffset(code, 1); i != -1 {
		t.Errorf("expected offset 1 (inside push data) not to be a boundary, is %d", i)
	}
}

func TestOpcodeNames(t *testing.T) {
	cases := []struct {
		op   Opcode
		want string
	}{
		{OpSVTCAy, "SVTCA[y]"},
		{0x2F, "MDAP[round]"},
		{0x46, "GC[current]"},
		{0x68, "ROUND[gray]"},
		{0x6D, "NROUND[black]"},
		{0xB3, "PUSHB[3]"},
		{0xB9, "PUSHW[1]"},
		{0xC0, "MDRP[noSetRP0, noRespectMinimumDistance, noRoundDistance, gray]"},
		{0xFD, "MIRP[SetRP0, RespectMinimumDistance, RoundDistance, black]"},
		{0x28, "opcode_28"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("expected 0x%02X to print as %q, is %q", byte(c.op), c.want, got)
		}
	}
}
