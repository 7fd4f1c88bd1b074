package hint

import (
	"testing"

	"github.com/npillmayer/hinting"
)

func TestRoundToGrid(t *testing.T) {
	cases := []struct{ in, want int64 }{
		{40, 64},
		{32, 64},
		{31, 0},
		{64, 64},
		{100, 128},
		{0, 0},
	}
	for _, c := range cases {
		st, _ := runHints(t, []byte{0xB8, byte(c.in >> 8), byte(c.in), 0x68})
		expectTop(t, st, c.want)
	}
}

func TestRoundNegative(t *testing.T) {
	// -40 rounds to -64: negative values round symmetrically
	st, _ := runHints(t, []byte{0xB8, 0xFF, 0xD8, 0x68})
	expectTop(t, st, -64)
}

func TestRoundModes(t *testing.T) {
	cases := []struct {
		mode byte
		in   int64
		want int64
	}{
		{0x19, 40, 32},  // RTHG: to half grid
		{0x3D, 40, 32},  // RTDG: to double grid
		{0x7D, 40, 0},   // RDTG: down to grid
		{0x7C, 40, 64},  // RUTG: up to grid
		{0x7C, 64, 64},  // RUTG leaves grid values alone
		{0x7A, 40, 40},  // ROFF passes through
		{0x7A, -13, -13},
	}
	for _, c := range cases {
		st, _ := runHints(t, []byte{
			c.mode,
			0xB8, byte(c.in >> 8), byte(c.in),
			0x68, // ROUND[gray]
		})
		v, _ := popValue(t, st)
		if n, ok := v.ToNumber(); !ok || n != c.want {
			t.Errorf("expected mode 0x%02X to round %d to %d, is %v", c.mode, c.in, c.want, v)
		}
	}
}

func TestNRoundPassesThrough(t *testing.T) {
	st, _ := runHints(t, []byte{0xB0, 40, 0x6C})
	expectTop(t, st, 40)
}

func TestRoundReservedColor(t *testing.T) {
	st, coll := runHints(t, []byte{0xB0, 40, 0x6B})
	if len(coll.ByCode("E6060")) != 1 {
		t.Errorf("expected the reserved-color error, have %v", coll.Diagnostics)
	}
	// the value is still rounded, as if gray
	expectTop(t, st, 64)
}

func TestSROUNDSelector(t *testing.T) {
	// period = grid, phase = 0, threshold = period/2
	st, coll := runHints(t, []byte{0xB0, 0x48, 0x76})
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, have %v", coll.Diagnostics)
	}
	rs := st.Graphics.Round()
	if n, _ := rs.Period.ToNumber(); n != 64 {
		t.Errorf("expected period 64, is %v", rs.Period)
	}
	if n, _ := rs.Phase.ToNumber(); n != 0 {
		t.Errorf("expected phase 0, is %v", rs.Phase)
	}
	if n, _ := rs.Threshold.ToNumber(); n != 32 {
		t.Errorf("expected threshold 32, is %v", rs.Threshold)
	}

	// half-grid period with phase period/2
	st, _ = runHints(t, []byte{0xB0, 0x28, 0x76})
	rs = st.Graphics.Round()
	if n, _ := rs.Period.ToNumber(); n != 32 {
		t.Errorf("expected period 32, is %v", rs.Period)
	}
	if n, _ := rs.Phase.ToNumber(); n != 16 {
		t.Errorf("expected phase 16, is %v", rs.Phase)
	}

	// S45ROUND uses the diagonal grid
	st, _ = runHints(t, []byte{0xB0, 0x48, 0x77})
	rs = st.Graphics.Round()
	if n, _ := rs.Period.ToNumber(); n != 45 {
		t.Errorf("expected period 45, is %v", rs.Period)
	}
}

func TestSROUNDReservedPeriod(t *testing.T) {
	_, coll := runHints(t, []byte{0xB0, 0xC0, 0x76})
	bad := coll.ByCode("E6060")
	if len(bad) != 1 || bad[0].Severity != hinting.SeverityError {
		t.Errorf("expected the reserved-period error, have %v", coll.Diagnostics)
	}
}

func TestOddEven(t *testing.T) {
	// 96 rounds to 128 = 2 pixels, which is even
	st, _ := runHints(t, []byte{0xB0, 96, 0x56}) // ODD
	expectTop(t, st, 0)
	st, _ = runHints(t, []byte{0xB0, 96, 0x57}) // EVEN
	expectTop(t, st, 1)
}
