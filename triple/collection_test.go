package triple

import "testing"

func TestCollectionCoalescing(t *testing.T) {
	c := FromValues(1, 1, 2, 3)
	if len(c.Triples()) != 1 {
		t.Errorf("expected {1,2,3} to coalesce into one Triple, is %v", c)
	}
	if n, _ := c.Len(); n != 3 {
		t.Errorf("expected 3 members in %v, have %d", c, n)
	}
	c = NewCollection(1, New(0, 10, 2), New(10, 20, 2), New(4, 8, 2))
	if len(c.Triples()) != 1 {
		t.Errorf("expected overlapping even ranges to merge, is %v", c)
	}
	c = NewCollection(1, NewOpenStop(5, 3), New(2, 8, 3))
	if len(c.Triples()) != 1 {
		t.Errorf("expected (2,8,3) to extend (5,*,3), is %v", c)
	}
	if !c.Contains(2) || !c.Contains(50) || c.Contains(-1) {
		t.Errorf("merged open collection has wrong members: %v", c)
	}
}

func TestSingletonCollapse(t *testing.T) {
	c := NewCollection(1, New(5, 6, 1))
	n, ok := c.ToNumber()
	if !ok || n != 5 {
		t.Errorf("expected singleton %v to collapse to 5, got %d (ok=%v)", c, n, ok)
	}
	if !FromValue(1, 5).Equal(c) {
		t.Errorf("expected FromValue(5) to round-trip through %v", c)
	}
	if _, ok := FromValues(1, 5, 6).ToNumber(); ok {
		t.Errorf("expected {5,6} not to collapse to a number")
	}
}

func TestCollectionAdd(t *testing.T) {
	a := FromValues(1, 1, 3)
	b := FromValues(1, 10, 20)
	sum := a.Add(b)
	got, ok := sum.Enumerate(16)
	want := []int64{11, 13, 21, 23}
	if !ok || len(got) != len(want) {
		t.Fatalf("expected {1,3}+{10,20} to have 4 members, is %v", sum)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected member %d of %v to be %d, is %d", i, sum, want[i], got[i])
		}
	}
	if !Empty(1).Add(b).IsEmpty() {
		t.Errorf("expected an empty operand to yield an empty sum")
	}
	if !b.Sub(Empty(1)).IsEmpty() {
		t.Errorf("expected an empty operand to yield an empty difference")
	}
}

func TestCollectionSubClosure(t *testing.T) {
	a := NewCollection(1, New(0, 50, 5))
	b := NewCollection(1, New(1, 20, 3))
	diff := a.Sub(b)
	av, _ := a.Enumerate(64)
	bv, _ := b.Enumerate(64)
	reachable := map[int64]bool{}
	for _, x := range av {
		for _, y := range bv {
			reachable[x-y] = true
		}
	}
	for v := range reachable {
		if !diff.Contains(v) {
			t.Errorf("expected %v to contain %d", diff, v)
		}
	}
	got, ok := diff.Enumerate(4096)
	if !ok {
		t.Fatalf("expected bounded difference, is %v", diff)
	}
	for _, v := range got {
		if !reachable[v] {
			t.Errorf("difference %v contains unreachable value %d", diff, v)
		}
	}
}

func TestCollectionAbs(t *testing.T) {
	c := FromValues(1, -7, -2, 0, 3)
	abs := c.Abs()
	got, ok := abs.Enumerate(16)
	want := []int64{0, 2, 3, 7}
	if !ok || len(got) != len(want) {
		t.Fatalf("expected |{-7,-2,0,3}| to have 4 members, is %v", abs)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected member %d of %v to be %d, is %d", i, abs, want[i], got[i])
		}
	}
}

func TestCollectionXor(t *testing.T) {
	a := FromValues(1, 1, 2, 3)
	b := FromValues(1, 4, 5)
	x := a.Xor(b)
	want := map[int64]bool{5: true, 4: true, 6: true, 7: true}
	got, ok := x.Enumerate(16)
	if !ok {
		t.Fatalf("expected bounded xor, is %v", x)
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("xor %v contains unreachable value %d", x, v)
		}
	}
	for v := range want {
		if !x.Contains(v) {
			t.Errorf("expected %v to contain %d", x, v)
		}
	}
	// large bounded operands widen to the common bit length
	wide := NewCollection(1, New(0, 1000, 1)).Xor(NewCollection(1, New(0, 1000, 1)))
	if !wide.Contains(1023) || wide.Contains(1024) {
		t.Errorf("expected widened xor to span exactly 10 bits, is %v", wide)
	}
}

func TestChangedBasisRoundTrip(t *testing.T) {
	c := FromValues(1, -3, 0, 2, 7)
	back := c.ChangedBasis(64).ChangedBasis(1)
	if !back.Equal(c) {
		t.Errorf("expected basis round-trip of %v to be lossless, is %v", c, back)
	}
	up := c.ChangedBasis(64)
	if up.Basis() != 64 || !up.Contains(128) {
		t.Errorf("expected %v scaled to 26.6 to contain 128, is %v", c, up)
	}
}

func TestChangedBasisTruncation(t *testing.T) {
	c := FromValues(64, 65, -65, 64)
	down := c.ChangedBasis(1)
	got, ok := down.Enumerate(8)
	want := []int64{-1, 1} // 65/64 and -65/64 truncate toward zero, 64/64 is 1
	if !ok || len(got) != len(want) {
		t.Fatalf("expected truncated collection %v to be {-1,1}, is %v", c, down)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected member %d of %v to be %d, is %d", i, down, want[i], got[i])
		}
	}
}

func TestCollectionDiv(t *testing.T) {
	q := FromValues(1, 10, 21).Div(FromValue(1, 2))
	got, ok := q.Enumerate(8)
	if !ok || len(got) != 2 || got[0] != 5 || got[1] != 10 {
		t.Errorf("expected {10,21}/{2} to be {5,10}, is %v", q)
	}
	// zero divisors are skipped; the caller decides whether that is an error
	q = FromValue(1, 10).Div(FromValues(1, 0, 2))
	if n, ok := q.ToNumber(); !ok || n != 5 {
		t.Errorf("expected {10}/{0,2} to be {5}, is %v", q)
	}
	q = FromValue(1, -7).Div(FromValue(1, 2))
	if n, _ := q.ToNumber(); n != -3 {
		t.Errorf("expected -7/2 to truncate toward zero to -3, is %v", q)
	}
}

func TestEncompassedBooleans(t *testing.T) {
	if f, tr := FromValues(1, 0, 1).EncompassedBooleans(); !f || !tr {
		t.Errorf("expected {0,1} to encompass both booleans")
	}
	if f, tr := Any(1).EncompassedBooleans(); !f || !tr {
		t.Errorf("expected the unconstrained collection to encompass both booleans")
	}
	if f, tr := FromValue(1, 5).EncompassedBooleans(); f || !tr {
		t.Errorf("expected nonzero {5} to encompass only true")
	}
	if f, tr := FromValue(1, 0).EncompassedBooleans(); !f || tr {
		t.Errorf("expected {0} to encompass only false")
	}
	if f, tr := FromValues(1, 0, 5).EncompassedBooleans(); !f || !tr {
		t.Errorf("expected {0,5} to encompass both booleans")
	}
	if f, tr := NewCollection(1).EncompassedBooleans(); f || tr {
		t.Errorf("expected the empty collection to encompass neither boolean")
	}
}

func TestCollectionCompare(t *testing.T) {
	lt := FromValues(1, 1, 2).CompareLess(FromValue(1, 5))
	if n, ok := lt.ToNumber(); !ok || n != 1 {
		t.Errorf("expected {1,2} < {5} to be definitely true, is %v", lt)
	}
	gt := FromValues(1, 1, 2).CompareGreater(FromValue(1, 5))
	if n, ok := gt.ToNumber(); !ok || n != 0 {
		t.Errorf("expected {1,2} > {5} to be definitely false, is %v", gt)
	}
	eq := FromValue(1, 3).CompareEqual(FromValue(1, 3))
	if n, ok := eq.ToNumber(); !ok || n != 1 {
		t.Errorf("expected {3} == {3} to be definitely true, is %v", eq)
	}
	mixed := FromValues(1, 1, 5).CompareLess(FromValue(1, 3))
	if f, tr := mixed.EncompassedBooleans(); !f || !tr {
		t.Errorf("expected {1,5} < {3} to be undetermined, is %v", mixed)
	}
}

func TestMinimumMaximum(t *testing.T) {
	lo := FromValues(1, 1, 10).Minimum(FromValue(1, 5))
	got, ok := lo.Enumerate(8)
	if !ok || len(got) != 2 || got[0] != 1 || got[1] != 5 {
		t.Errorf("expected min({1,10},{5}) to be {1,5}, is %v", lo)
	}
	hi := FromValues(1, 1, 10).Maximum(FromValue(1, 5))
	got, ok = hi.Enumerate(8)
	if !ok || len(got) != 2 || got[0] != 5 || got[1] != 10 {
		t.Errorf("expected max({1,10},{5}) to be {5,10}, is %v", hi)
	}
}

func TestMinMaxBounds(t *testing.T) {
	c := NewCollection(1, NewOpenStop(5, 3))
	if v, ok := c.Min(); !ok || v != 5 {
		t.Errorf("expected min of (5,*,3) to be 5, is %d (ok=%v)", v, ok)
	}
	if _, ok := c.Max(); ok {
		t.Errorf("expected max of (5,*,3) to be unbounded")
	}
	if !c.IsOpen() {
		t.Errorf("expected (5,*,3) collection to report open")
	}
}

func TestSignedParts(t *testing.T) {
	neg, nonneg := FromValues(1, -5, -1, 0, 4).SignedParts()
	if n, _ := neg.Len(); n != 2 {
		t.Errorf("expected 2 negative members, is %v", neg)
	}
	if !nonneg.Contains(0) || !nonneg.Contains(4) || nonneg.Contains(-1) {
		t.Errorf("nonnegative part has wrong members: %v", nonneg)
	}
}
