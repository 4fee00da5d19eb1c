package metavars

import "testing"

func bounded(lo, hi int64) Interval { return Interval{Low: lo, High: hi, HasLow: true, HasHigh: true} }

func TestIntegerSetUnionMergesAdjacent(t *testing.T) {
	s := NewIntegerSet(bounded(1, 3), bounded(4, 6))
	if got := len(s.Intervals()); got != 1 {
		t.Fatalf("expected adjacent intervals to merge into one, got %d: %s", got, s)
	}
	if !s.Contains(1) || !s.Contains(6) || s.Contains(7) {
		t.Errorf("merged interval bounds wrong: %s", s)
	}
}

func TestIntegerSetUnionKeepsDisjoint(t *testing.T) {
	s := NewIntegerSet(bounded(1, 2), bounded(10, 20))
	if got := len(s.Intervals()); got != 2 {
		t.Fatalf("expected two disjoint intervals, got %d: %s", got, s)
	}
}

func TestIntegerSetIntersect(t *testing.T) {
	a := NewIntegerSet(bounded(0, 10))
	b := NewIntegerSet(bounded(5, 15))
	got := a.Intersect(b)
	if !got.Contains(5) || !got.Contains(10) || got.Contains(4) || got.Contains(11) {
		t.Errorf("intersect wrong: %s", got)
	}
}

func TestIntegerSetSubtract(t *testing.T) {
	a := NewIntegerSet(bounded(0, 10))
	b := NewIntegerSet(bounded(3, 5))
	got := a.Subtract(b)
	for _, v := range []int64{0, 1, 2, 6, 7, 10} {
		if !got.Contains(v) {
			t.Errorf("expected %d to remain after subtracting [3,5], set is %s", v, got)
		}
	}
	for _, v := range []int64{3, 4, 5} {
		if got.Contains(v) {
			t.Errorf("expected %d to be removed, set is %s", v, got)
		}
	}
}

func TestIntegerSetSupersetOf(t *testing.T) {
	if !FullIntegerSet().SupersetOf(SingletonIntegerSet(42)) {
		t.Error("full set must be a superset of any singleton")
	}
	if SingletonIntegerSet(1).SupersetOf(SingletonIntegerSet(2)) {
		t.Error("{1} is not a superset of {2}")
	}
}

func TestIntegerSetUnboundedTouchesMaxInt64(t *testing.T) {
	// Regression: an interval ending at math.MaxInt64 must still be
	// recognized as touching/overlapping an adjacent unbounded-above
	// interval instead of overflowing the +1 adjacency check.
	a := IntegerSet{intervals: []Interval{{HasLow: true, Low: 0, HasHigh: true, High: 1<<63 - 1}}}
	b := IntegerSet{intervals: []Interval{{HasLow: true, Low: 1 << 62, HasHigh: false}}}
	merged := a.Union(b)
	if got := len(merged.Intervals()); got != 1 {
		t.Fatalf("expected merge into a single unbounded interval, got %d: %s", got, merged)
	}
}

func TestIntegerSetContainsUnboundedBelow(t *testing.T) {
	s := IntegerSet{intervals: []Interval{{HasHigh: true, High: -1}}}
	if !s.Contains(-100) {
		t.Error("unbounded-below interval should contain very negative values")
	}
	if s.Contains(0) {
		t.Error("interval ending at -1 should not contain 0")
	}
}
