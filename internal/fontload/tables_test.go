package fontload

import "testing"

// buildTestFont assembles a minimal TrueType binary with three glyphs:
// a hinted simple glyph, a hinted composite, and an empty one.
func buildTestFont() []byte {
	maxp := make([]byte, 32)
	put32(maxp[0:], 0x00010000)
	put16(maxp[4:], 3)  // numGlyphs
	put16(maxp[6:], 4)  // maxPoints
	put16(maxp[8:], 1)  // maxContours
	put16(maxp[10:], 8) // maxCompositePoints
	put16(maxp[12:], 2) // maxCompositeContours
	put16(maxp[14:], 2) // maxZones
	put16(maxp[16:], 2) // maxTwilightPoints
	put16(maxp[18:], 8) // maxStorage
	put16(maxp[20:], 10)
	put16(maxp[22:], 0)
	put16(maxp[24:], 64)
	put16(maxp[26:], 50)

	head := make([]byte, 54) // indexToLocFormat 0 = short offsets

	cvt := make([]byte, 6)
	put16(cvt[2:], 100)
	put16(cvt[4:], 0xFFC0) // -64

	fpgm := []byte{0xB0, 0, 0x2C, 0x2D}
	prep := []byte{0xB0, 0x48, 0x76}

	glyph0 := make([]byte, 18)
	put16(glyph0[0:], 1)      // one contour
	put16(glyph0[10:], 3)     // endPtsOfContours, 4 points
	put16(glyph0[12:], 3)     // instructionLength
	glyph0[14], glyph0[15], glyph0[16] = 0xB0, 1, 0x2B

	glyph1 := make([]byte, 20)
	put16(glyph1[0:], 0xFFFF) // numberOfContours -1, composite
	put16(glyph1[10:], flagWeHaveInstruction)
	put16(glyph1[12:], 0) // component glyph index, byte args stay zero
	put16(glyph1[16:], 2) // instructionLength
	glyph1[18], glyph1[19] = 0x4B, 0x21

	glyf := append(append([]byte{}, glyph0...), glyph1...)
	loca := make([]byte, 8)
	put16(loca[2:], uint32(len(glyph0)/2))
	put16(loca[4:], uint32(len(glyf)/2))
	put16(loca[6:], uint32(len(glyf)/2))

	name := make([]byte, 18+8)
	put16(name[2:], 1)      // one record
	put16(name[4:], 18)     // string storage offset
	put16(name[6:], 3)      // Windows
	put16(name[8:], 1)      // BMP
	put16(name[10:], 0x409) // en-US
	put16(name[12:], 4)     // full font name
	put16(name[14:], 8)     // length
	copy(name[18:], []byte{0, 'T', 0, 'e', 0, 's', 0, 't'})

	tables := []struct {
		tag string
		b   []byte
	}{
		{"cvt ", cvt}, {"fpgm", fpgm}, {"glyf", glyf}, {"head", head},
		{"loca", loca}, {"maxp", maxp}, {"name", name}, {"prep", prep},
	}
	font := make([]byte, offsetTableSize+len(tables)*tableRecordSize)
	put32(font[0:], 0x00010000)
	put16(font[4:], uint32(len(tables)))
	for i, t := range tables {
		rec := font[offsetTableSize+i*tableRecordSize:]
		copy(rec, t.tag)
		put32(rec[8:], uint32(len(font)))
		put32(rec[12:], uint32(len(t.b)))
		font = append(font, t.b...)
		for len(font)%4 != 0 {
			font = append(font, 0)
		}
	}
	return font
}

func put16(b []byte, v uint32) {
	b[0], b[1] = byte(v>>8), byte(v)
}

func put32(b []byte, v uint32) {
	b[0], b[1], b[2], b[3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
}

func TestHintingTables(t *testing.T) {
	tbl, err := HintingTables(&ScalableFont{Binary: buildTestFont()})
	if err != nil {
		t.Fatalf("cannot parse test font: %v", err)
	}
	if len(tbl.Fpgm) != 4 {
		t.Errorf("expected fpgm to have 4 bytes, has %d", len(tbl.Fpgm))
	}
	if len(tbl.Prep) != 3 {
		t.Errorf("expected prep to have 3 bytes, has %d", len(tbl.Prep))
	}
	if len(tbl.CVT) != 3 || tbl.CVT[1] != 100 || tbl.CVT[2] != -64 {
		t.Errorf("expected CVT to be [0 100 -64], is %v", tbl.CVT)
	}
	if tbl.Maxp.NumGlyphs != 3 {
		t.Errorf("expected 3 glyphs, have %d", tbl.Maxp.NumGlyphs)
	}
	if tbl.Maxp.MaxTwilightPoints != 2 {
		t.Errorf("expected maxp twilight count to be 2, is %d", tbl.Maxp.MaxTwilightPoints)
	}
	if tbl.Maxp.MaxStackElements != 64 {
		t.Errorf("expected maxp stack depth to be 64, is %d", tbl.Maxp.MaxStackElements)
	}
}

func TestGlyphPrograms(t *testing.T) {
	tbl, err := HintingTables(&ScalableFont{Binary: buildTestFont()})
	if err != nil {
		t.Fatalf("cannot parse test font: %v", err)
	}
	instr, points, contours, err := tbl.GlyphProgram(0)
	if err != nil {
		t.Fatalf("glyph 0: %v", err)
	}
	if len(instr) != 3 || instr[0] != 0xB0 {
		t.Errorf("expected glyph 0 to have 3 instruction bytes, has %v", instr)
	}
	if points != 4 || contours != 1 {
		t.Errorf("expected glyph 0 to have 4 points in 1 contour, has %d in %d", points, contours)
	}
	instr, points, contours, err = tbl.GlyphProgram(1)
	if err != nil {
		t.Fatalf("glyph 1: %v", err)
	}
	if len(instr) != 2 || instr[0] != 0x4B {
		t.Errorf("expected glyph 1 to have 2 instruction bytes, has %v", instr)
	}
	if points != 8 || contours != 2 {
		t.Errorf("expected composite maxima 8/2 for glyph 1, have %d/%d", points, contours)
	}
	instr, _, _, err = tbl.GlyphProgram(2)
	if err != nil || instr != nil {
		t.Errorf("expected glyph 2 to be empty, has %v (err %v)", instr, err)
	}
	if _, _, _, err = tbl.GlyphProgram(3); err == nil {
		t.Errorf("expected out-of-range glyph index to be flagged")
	}
}

func TestFontNames(t *testing.T) {
	tbl, err := HintingTables(&ScalableFont{Binary: buildTestFont()})
	if err != nil {
		t.Fatalf("cannot parse test font: %v", err)
	}
	found := false
	for id, value := range tbl.Names() {
		if int(id) == 4 {
			found = true
			if value != "Test" {
				t.Errorf("expected full font name to be 'Test', is %q", value)
			}
		}
	}
	if !found {
		t.Errorf("expected a full font name entry in table name")
	}
}
