package fontload

import "fmt"

// The x/image sfnt package exposes glyph outlines but not raw table
// contents, so the tables relevant for hint analysis are cut out of the
// binary by hand. https://www.microsoft.com/typography/otspec/otff.htm:
// the Offset Table is 12 bytes, followed by 16-byte table records.

const (
	offsetTableSize = 12
	tableRecordSize = 16
)

// MaxProfile carries the 'maxp' version 1.0 entries the hint analysis
// checks reported maxima against. Version 0.5 tables (CFF outlines) fill
// NumGlyphs only.
type MaxProfile struct {
	NumGlyphs             int
	MaxPoints             int
	MaxContours           int
	MaxCompositePoints    int
	MaxCompositeContours  int
	MaxTwilightPoints     int
	MaxStorage            int
	MaxFunctionDefs       int
	MaxInstructionDefs    int
	MaxStackElements      int
	MaxSizeOfInstructions int
}

// FontTables is the slice of an SFNT file the hint analysis operates on:
// the three instruction streams' containers, the control value table, and
// enough of 'loca'/'glyf' to find per-glyph instructions. Fpgm and Prep
// are empty for fonts without hinting.
type FontTables struct {
	Fpgm     []byte
	Prep     []byte
	CVT      []int64
	Maxp     MaxProfile
	name     []byte
	glyf     []byte
	loca     []byte
	longLoca bool
}

func errFontFormat(x string) error {
	return fmt.Errorf("OpenType font format: %s", x)
}

// HintingTables locates the hint-relevant tables of a font. Missing
// optional tables ('fpgm', 'prep', 'cvt ', 'glyf') leave their fields
// empty; a missing or truncated 'maxp' is an error.
func HintingTables(f *ScalableFont) (*FontTables, error) {
	if f == nil || len(f.Binary) < offsetTableSize {
		return nil, errFontFormat("no font data")
	}
	src := f.Binary
	fontType := u32(src)
	if !(fontType == 0x4f54544f || // OTTO
		fontType == 0x00010000 || // TrueType
		fontType == 0x74727565) { // true
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", fontType))
	}
	tableCount := int(u16(src[4:6]))
	recordsEnd := offsetTableSize + tableCount*tableRecordSize
	if recordsEnd > len(src) {
		return nil, errFontFormat("table record entries")
	}
	tables := make(map[string][]byte, tableCount)
	for b := src[offsetTableSize:recordsEnd]; len(b) > 0; b = b[tableRecordSize:] {
		tag := string(b[0:4])
		off, size := int(u32(b[8:12])), int(u32(b[12:16]))
		if off < 0 || size < 0 || off+size > len(src) {
			return nil, errFontFormat(fmt.Sprintf("table %s: bounds [%d:%d] exceed font size %d",
				tag, off, off+size, len(src)))
		}
		tables[tag] = src[off : off+size]
	}
	t := &FontTables{
		Fpgm: tables["fpgm"],
		Prep: tables["prep"],
		name: tables["name"],
		glyf: tables["glyf"],
		loca: tables["loca"],
	}
	if err := t.parseMaxP(tables["maxp"]); err != nil {
		return nil, err
	}
	if cvt := tables["cvt "]; len(cvt) >= 2 {
		t.CVT = make([]int64, len(cvt)/2)
		for i := range t.CVT {
			t.CVT[i] = int64(int16(u16(cvt[2*i:])))
		}
	}
	if head := tables["head"]; len(head) >= 52 {
		t.longLoca = u16(head[50:52]) == 1
	}
	return t, nil
}

// maxp version 1.0 is required for TrueType outlines; 0.5 carries the
// glyph count only.
func (t *FontTables) parseMaxP(b []byte) error {
	if len(b) < 6 {
		return errFontFormat("maxp table incomplete")
	}
	t.Maxp.NumGlyphs = int(u16(b[4:6]))
	if u32(b) != 0x00010000 {
		return nil
	}
	if len(b) < 32 {
		return errFontFormat("maxp table incomplete")
	}
	t.Maxp.MaxPoints = int(u16(b[6:8]))
	t.Maxp.MaxContours = int(u16(b[8:10]))
	t.Maxp.MaxCompositePoints = int(u16(b[10:12]))
	t.Maxp.MaxCompositeContours = int(u16(b[12:14]))
	t.Maxp.MaxTwilightPoints = int(u16(b[16:18]))
	t.Maxp.MaxStorage = int(u16(b[18:20]))
	t.Maxp.MaxFunctionDefs = int(u16(b[20:22]))
	t.Maxp.MaxInstructionDefs = int(u16(b[22:24]))
	t.Maxp.MaxStackElements = int(u16(b[24:26]))
	t.Maxp.MaxSizeOfInstructions = int(u16(b[26:28]))
	return nil
}

// glyf composite component flags
const (
	flagArg1And2AreWords  = 0x0001
	flagMoreComponents    = 0x0020
	flagWeHaveAScale      = 0x0008
	flagWeHaveXAndYScale  = 0x0040
	flagWeHaveTwoByTwo    = 0x0080
	flagWeHaveInstruction = 0x0100
)

// GlyphProgram returns the instruction stream of one glyph together with
// its point and contour counts. Glyphs without an outline (or without
// instructions) return an empty stream. For composite glyphs the counts
// are the 'maxp' composite maxima, since the actual flattened counts are
// not known without resolving components.
func (t *FontTables) GlyphProgram(gid int) (instr []byte, points, contours int, err error) {
	if gid < 0 || gid >= t.Maxp.NumGlyphs {
		return nil, 0, 0, fmt.Errorf("glyph index out of range: %d", gid)
	}
	if len(t.loca) == 0 || len(t.glyf) == 0 {
		return nil, 0, 0, nil
	}
	start, end, err := t.locaEntry(gid)
	if err != nil {
		return nil, 0, 0, err
	}
	if start >= end { // empty glyph
		return nil, 0, 0, nil
	}
	if end > len(t.glyf) || end-start < 10 {
		return nil, 0, 0, errFontFormat(fmt.Sprintf("glyf entry %d out of bounds", gid))
	}
	g := t.glyf[start:end]
	numContours := int(int16(u16(g)))
	if numContours < 0 {
		return t.compositeInstructions(gid, g)
	}
	endPtsEnd := 10 + 2*numContours
	if endPtsEnd+2 > len(g) {
		return nil, 0, 0, errFontFormat(fmt.Sprintf("glyf entry %d truncated", gid))
	}
	if numContours > 0 {
		points = int(u16(g[endPtsEnd-2:])) + 1
	}
	ilen := int(u16(g[endPtsEnd:]))
	if endPtsEnd+2+ilen > len(g) {
		return nil, 0, 0, errFontFormat(fmt.Sprintf("glyf entry %d truncated", gid))
	}
	return g[endPtsEnd+2 : endPtsEnd+2+ilen], points, numContours, nil
}

func (t *FontTables) compositeInstructions(gid int, g []byte) ([]byte, int, int, error) {
	points := t.Maxp.MaxCompositePoints
	contours := t.Maxp.MaxCompositeContours
	pos, haveInstr := 10, false
	for {
		if pos+4 > len(g) {
			return nil, 0, 0, errFontFormat(fmt.Sprintf("glyf entry %d truncated", gid))
		}
		flags := u16(g[pos:])
		pos += 4 // flags and glyph index
		if flags&flagArg1And2AreWords != 0 {
			pos += 4
		} else {
			pos += 2
		}
		switch {
		case flags&flagWeHaveAScale != 0:
			pos += 2
		case flags&flagWeHaveXAndYScale != 0:
			pos += 4
		case flags&flagWeHaveTwoByTwo != 0:
			pos += 8
		}
		haveInstr = haveInstr || flags&flagWeHaveInstruction != 0
		if flags&flagMoreComponents == 0 {
			break
		}
	}
	if !haveInstr {
		return nil, points, contours, nil
	}
	if pos+2 > len(g) {
		return nil, 0, 0, errFontFormat(fmt.Sprintf("glyf entry %d truncated", gid))
	}
	ilen := int(u16(g[pos:]))
	if pos+2+ilen > len(g) {
		return nil, 0, 0, errFontFormat(fmt.Sprintf("glyf entry %d truncated", gid))
	}
	return g[pos+2 : pos+2+ilen], points, contours, nil
}

func (t *FontTables) locaEntry(gid int) (start, end int, err error) {
	if t.longLoca {
		if (gid+2)*4 > len(t.loca) {
			return 0, 0, errFontFormat("loca table incomplete")
		}
		return int(u32(t.loca[gid*4:])), int(u32(t.loca[(gid+1)*4:])), nil
	}
	if (gid+2)*2 > len(t.loca) {
		return 0, 0, errFontFormat("loca table incomplete")
	}
	// short offsets store half the actual value
	return int(u16(t.loca[gid*2:])) * 2, int(u16(t.loca[(gid+1)*2:])) * 2, nil
}

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
