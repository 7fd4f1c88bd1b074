package history

import "testing"

func TestPushIdentity(t *testing.T) {
	a := NewPush("fpgm", 12, 5)
	b := NewPush("fpgm", 12, 5)
	c := NewPush("fpgm", 12, 6)
	if a.Key() != b.Key() {
		t.Errorf("expected equal pushes to share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Errorf("expected distinct slots to yield distinct keys")
	}
	if a.Kind() != KindPush {
		t.Errorf("expected kind push, is %v", a.Kind())
	}
}

func TestOpLeaves(t *testing.T) {
	p0 := NewPush("prep", 3, 0)
	p1 := NewPush("prep", 3, 1)
	add := NewOp("prep", 7, 0x60, "ADD", p0, p1)
	mul := NewOp("prep", 9, 0x63, "MUL", add, p0) // p0 feeds two consumers
	var leaves []Entry
	for l := range mul.Leaves() {
		leaves = append(leaves, l)
	}
	if len(leaves) != 2 {
		t.Fatalf("expected 2 distinct leaves under MUL, have %d", len(leaves))
	}
	if leaves[0].Key() != p0.Key() || leaves[1].Key() != p1.Key() {
		t.Errorf("expected leaves in depth-first order p0, p1")
	}
	if len(mul.Inputs()) != 2 || mul.Inputs()[0].Kind() != KindOp {
		t.Errorf("expected MUL inputs to be (ADD result, push)")
	}
}

func TestGroupFlattening(t *testing.T) {
	p0 := NewPush("glyf", 0, 0)
	p1 := NewPush("glyf", 0, 1)
	p2 := NewPush("glyf", 0, 2)
	inner := NewGroup(p0, p1)
	outer := NewGroup(inner, p2, p0) // p0 duplicated
	g, ok := outer.(*Group)
	if !ok {
		t.Fatalf("expected a Group, got %T", outer)
	}
	if len(g.Members()) != 3 {
		t.Errorf("expected 3 distinct members after flattening, have %d", len(g.Members()))
	}
	for _, m := range g.Members() {
		if m.Kind() == KindGroup {
			t.Errorf("groups must be flat, found nested group")
		}
	}
}

func TestGroupCollapse(t *testing.T) {
	p := NewPush("glyf", 1, 0)
	if e := NewGroup(p, p); e.Kind() != KindPush {
		t.Errorf("expected single-member group to collapse to the member, is %v", e.Kind())
	}
	if e := NewGroup(); e != nil {
		t.Errorf("expected empty group to be nil, is %v", e)
	}
}

func TestCombine(t *testing.T) {
	p0 := NewPush("prep", 0, 0)
	p1 := NewPush("prep", 0, 1)
	if Combine(nil, p0) != p0 || Combine(p0, nil) != p0 {
		t.Errorf("expected nil to act as identity in Combine")
	}
	if Combine(p0, NewPush("prep", 0, 0)) != p0 {
		t.Errorf("expected equal entries to combine without grouping")
	}
	if Combine(p0, p1).Kind() != KindGroup {
		t.Errorf("expected distinct entries to combine into a group")
	}
}

func TestCombineMaps(t *testing.T) {
	p0 := NewPush("prep", 0, 0)
	p1 := NewPush("prep", 0, 1)
	p2 := NewPush("prep", 0, 2)
	dst := map[int]Entry{10: p0, 14: p1}
	src := map[int]Entry{10: nil, 14: p2, 16: p0}
	CombineMaps(dst, src)
	if dst[10] != p0 {
		t.Errorf("expected nil source entry to leave slot 10 untouched")
	}
	if dst[14].Kind() != KindGroup {
		t.Errorf("expected slot 14 to hold a group, is %v", dst[14].Kind())
	}
	if dst[16] != p0 {
		t.Errorf("expected slot 16 to adopt the source entry")
	}
}
