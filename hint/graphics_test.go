package hint

import (
	"testing"

	"github.com/npillmayer/hinting/triple"
)

func TestGraphicsStateDefaults(t *testing.T) {
	gs := NewGraphicsState()
	for i := 0; i < 3; i++ {
		if n, _ := gs.ZonePointer(i).ToNumber(); n != 1 {
			t.Errorf("expected zone pointer %d to default to 1, is %v", i, gs.ZonePointer(i))
		}
		if n, _ := gs.ReferencePoint(i).ToNumber(); n != 0 {
			t.Errorf("expected reference point %d to default to 0, is %v", i, gs.ReferencePoint(i))
		}
	}
	if !gs.FreedomVector().IsXAxis() || !gs.ProjectionVector().IsXAxis() {
		t.Errorf("expected the default vectors to point along x")
	}
	if n, _ := gs.MinimumDistance().ToNumber(); n != 64 {
		t.Errorf("expected minimum distance of one pixel, is %v", gs.MinimumDistance())
	}
	if n, _ := gs.CVTCutIn().ToNumber(); n != 68 {
		t.Errorf("expected CVT cut-in 17/16 pixel, is %v", gs.CVTCutIn())
	}
	if n, _ := gs.SingleWidthCutIn().ToNumber(); n != 64 {
		t.Errorf("expected single width cut-in of one pixel, is %v", gs.SingleWidthCutIn())
	}
	if n, _ := gs.SingleWidthValue().ToNumber(); n != 0 {
		t.Errorf("expected single width value 0, is %v", gs.SingleWidthValue())
	}
	if len(gs.TakeDirty()) != 0 {
		t.Errorf("expected a fresh state to have no dirty registers")
	}
}

func TestDirtyTracking(t *testing.T) {
	gs := NewGraphicsState()
	gs.SetLoop(triple.FromValue(basisInt, 3))
	gs.SetZonePointer(2, triple.FromValue(basisInt, 0))
	dirty := gs.TakeDirty()
	if len(dirty) != 2 || dirty[0] != RegZonePointer2 || dirty[1] != RegLoop {
		t.Errorf("expected [zonePointer2, loop] dirty, have %v", dirty)
	}
	if len(gs.TakeDirty()) != 0 {
		t.Errorf("expected TakeDirty to reset the set")
	}
	gs.ResetLoop()
	if len(gs.TakeDirty()) != 0 {
		t.Errorf("expected the implicit loop reset not to mark the register")
	}
	gs.SetProjectionVector(yAxis())
	dirty = gs.TakeDirty()
	if len(dirty) != 2 || dirty[0] != RegProjectionVector || dirty[1] != RegDualVector {
		t.Errorf("expected the projection vector to drag the dual vector, have %v", dirty)
	}
}

func TestGraphicsCombine(t *testing.T) {
	a := NewGraphicsState()
	b := NewGraphicsState()
	a.SetReferencePoint(0, triple.FromValue(basisInt, 3))
	b.SetReferencePoint(0, triple.FromValue(basisInt, 5))
	a.Combine(b)
	rp := a.ReferencePoint(0)
	if !rp.Contains(3) || !rp.Contains(5) || rp.Contains(0) {
		t.Errorf("expected combined RP0 to be {3, 5}, is %v", rp)
	}
	if n, _ := a.ReferencePoint(1).ToNumber(); n != 0 {
		t.Errorf("expected untouched registers to stay put, RP1 is %v", a.ReferencePoint(1))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := NewGraphicsState()
	c := a.Clone()
	c.SetLoop(triple.FromValue(basisInt, 9))
	if n, _ := a.Loop().ToNumber(); n != 1 {
		t.Errorf("expected the original loop register to stay 1, is %v", a.Loop())
	}
	if len(a.TakeDirty()) != 0 {
		t.Errorf("expected the clone's dirty set to be separate")
	}
}

func TestResetPerGlyph(t *testing.T) {
	gs := NewGraphicsState()
	gs.SetZonePointer(0, triple.FromValue(basisInt, 0))
	gs.SetReferencePoint(0, triple.FromValue(basisInt, 7))
	gs.SetFreedomVector(yAxis())
	gs.SetCVTCutIn(triple.FromValue(basisPixel, 100))
	gs.ResetPerGlyph()
	if n, _ := gs.ZonePointer(0).ToNumber(); n != 1 {
		t.Errorf("expected zone pointer 0 to reset, is %v", gs.ZonePointer(0))
	}
	if n, _ := gs.ReferencePoint(0).ToNumber(); n != 0 {
		t.Errorf("expected reference point 0 to reset, is %v", gs.ReferencePoint(0))
	}
	if !gs.FreedomVector().IsXAxis() {
		t.Errorf("expected the freedom vector to reset to x")
	}
	if n, _ := gs.CVTCutIn().ToNumber(); n != 100 {
		t.Errorf("expected the CVT cut-in to survive the glyph reset, is %v", gs.CVTCutIn())
	}
	if len(gs.TakeDirty()) != 0 {
		t.Errorf("expected the reset to clear the dirty set")
	}
}
