package metavars

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Interval is a closed interval over ℤ. HasLow/HasHigh false means the
// corresponding bound is unbounded (-∞ / +∞).
type Interval struct {
	Low, High       int64
	HasLow, HasHigh bool
}

func (iv Interval) contains(v int64) bool {
	if iv.HasLow && v < iv.Low {
		return false
	}
	if iv.HasHigh && v > iv.High {
		return false
	}
	return true
}

func (iv Interval) String() string {
	lo := "-inf"
	if iv.HasLow {
		lo = fmt.Sprintf("%d", iv.Low)
	}
	hi := "+inf"
	if iv.HasHigh {
		hi = fmt.Sprintf("%d", iv.High)
	}
	return fmt.Sprintf("[%s, %s]", lo, hi)
}

// touchesOrOverlaps reports whether an interval ending at (high, hasHigh)
// overlaps or is adjacent to one starting at low, without overflowing when
// high is math.MaxInt64.
func touchesOrOverlaps(high int64, hasHigh bool, low int64) bool {
	if !hasHigh || high == math.MaxInt64 {
		return true
	}
	return high+1 >= low
}

// IntegerSet is a canonicalized union of disjoint closed intervals over ℤ
// (§4.A, "IntegerSet"): sorted by Low, non-overlapping, with adjacent
// intervals merged.
type IntegerSet struct {
	intervals []Interval
}

func EmptyIntegerSet() IntegerSet { return IntegerSet{} }

func FullIntegerSet() IntegerSet {
	return IntegerSet{intervals: []Interval{{}}} // unbounded both sides
}

func SingletonIntegerSet(v int64) IntegerSet {
	return IntegerSet{intervals: []Interval{{Low: v, High: v, HasLow: true, HasHigh: true}}}
}

// NewIntegerSet builds a canonicalized set from arbitrary, possibly
// overlapping, unsorted intervals.
func NewIntegerSet(intervals ...Interval) IntegerSet {
	return IntegerSet{}.Union(IntegerSet{intervals: append([]Interval(nil), intervals...)})
}

func (s IntegerSet) IsEmpty() bool { return len(s.intervals) == 0 }

// Contains performs a binary search on interval starts.
func (s IntegerSet) Contains(v int64) bool {
	i := sort.Search(len(s.intervals), func(i int) bool {
		return !s.intervals[i].HasLow || s.intervals[i].Low > v
	})
	// i is the index of the first interval starting after v (or without a
	// lower bound, which always starts "after" nothing); the interval that
	// could contain v is i-1, unless the first interval is unbounded below
	// in which case it's index 0 regardless.
	if i > 0 {
		if s.intervals[i-1].contains(v) {
			return true
		}
	}
	if len(s.intervals) > 0 && !s.intervals[0].HasLow && s.intervals[0].contains(v) {
		return true
	}
	return false
}

// Value returns the singleton integer iff the set is a single one-element
// interval.
func (s IntegerSet) Value() (int64, bool) {
	if len(s.intervals) == 1 {
		iv := s.intervals[0]
		if iv.HasLow && iv.HasHigh && iv.Low == iv.High {
			return iv.Low, true
		}
	}
	return 0, false
}

func (s IntegerSet) Intervals() []Interval {
	return append([]Interval(nil), s.intervals...)
}

// Union merges two interval sets via a classical sweep, re-canonicalizing
// the result (sorted, non-overlapping, adjacent intervals merged).
func (s IntegerSet) Union(o IntegerSet) IntegerSet {
	all := append(append([]Interval(nil), s.intervals...), o.intervals...)
	sort.Slice(all, func(i, j int) bool {
		if all[i].HasLow != all[j].HasLow {
			return !all[i].HasLow // unbounded-low sorts first
		}
		return all[i].Low < all[j].Low
	})
	var out []Interval
	for _, iv := range all {
		if len(out) == 0 {
			out = append(out, iv)
			continue
		}
		last := &out[len(out)-1]
		if touchesOrOverlaps(last.High, last.HasHigh, lowOf(iv)) {
			if !last.HasHigh {
				continue // last already extends to +inf
			}
			if !iv.HasHigh {
				last.HasHigh = false
				continue
			}
			if iv.High > last.High {
				last.High = iv.High
			}
			continue
		}
		out = append(out, iv)
	}
	return IntegerSet{intervals: out}
}

func lowOf(iv Interval) int64 {
	if !iv.HasLow {
		return math.MinInt64
	}
	return iv.Low
}

// Intersect computes the pairwise intersection of two canonicalized sets.
func (s IntegerSet) Intersect(o IntegerSet) IntegerSet {
	var out []Interval
	i, j := 0, 0
	for i < len(s.intervals) && j < len(o.intervals) {
		a, b := s.intervals[i], o.intervals[j]
		lo, hasLo := maxLow(a, b)
		hi, hasHi, ok := minHigh(a, b)
		if ok && (!hasLo || !hasHi || lo <= hi) {
			out = append(out, Interval{Low: lo, HasLow: hasLo, High: hi, HasHigh: hasHi})
		}
		// advance the interval that ends first
		if !a.HasHigh {
			j++
		} else if !b.HasHigh {
			i++
		} else if a.High < b.High {
			i++
		} else {
			j++
		}
	}
	return IntegerSet{}.Union(IntegerSet{intervals: out})
}

func maxLow(a, b Interval) (int64, bool) {
	if !a.HasLow {
		return b.Low, b.HasLow
	}
	if !b.HasLow {
		return a.Low, a.HasLow
	}
	if a.Low > b.Low {
		return a.Low, true
	}
	return b.Low, true
}

func minHigh(a, b Interval) (int64, bool, bool) {
	if !a.HasHigh && !b.HasHigh {
		return 0, false, true
	}
	if !a.HasHigh {
		return b.High, true, true
	}
	if !b.HasHigh {
		return a.High, true, true
	}
	if a.High < b.High {
		return a.High, true, true
	}
	return b.High, true, true
}

// Subtract removes every value in o from s.
func (s IntegerSet) Subtract(o IntegerSet) IntegerSet {
	result := s
	for _, iv := range o.intervals {
		result = result.subtractOne(iv)
	}
	return result
}

func (s IntegerSet) subtractOne(rm Interval) IntegerSet {
	var out []Interval
	for _, iv := range s.intervals {
		// No overlap: keep as-is.
		if !overlaps(iv, rm) {
			out = append(out, iv)
			continue
		}
		// Left remainder: [iv.Low, rm.Low - 1]
		if rm.HasLow && (!iv.HasLow || iv.Low < rm.Low) {
			left := Interval{HasLow: iv.HasLow, Low: iv.Low, HasHigh: true, High: rm.Low - 1}
			if left.HasLow && left.Low > left.High {
				// empty, drop
			} else {
				out = append(out, left)
			}
		}
		// Right remainder: [rm.High + 1, iv.High]
		if rm.HasHigh && (!iv.HasHigh || iv.High > rm.High) {
			right := Interval{HasLow: true, Low: rm.High + 1, HasHigh: iv.HasHigh, High: iv.High}
			if right.HasHigh && right.Low > right.High {
				// empty, drop
			} else {
				out = append(out, right)
			}
		}
	}
	return IntegerSet{}.Union(IntegerSet{intervals: out})
}

func overlaps(a, b Interval) bool {
	if a.HasLow && b.HasHigh && a.Low > b.High {
		return false
	}
	if b.HasLow && a.HasHigh && b.Low > a.High {
		return false
	}
	return true
}

// SupersetOf ≡ o.Subtract(self).IsEmpty() (§4.A).
func (s IntegerSet) SupersetOf(o IntegerSet) bool {
	return o.Subtract(s).IsEmpty()
}

func (s IntegerSet) String() string {
	if s.IsEmpty() {
		return "{}"
	}
	parts := make([]string, len(s.intervals))
	for i, iv := range s.intervals {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " ∪ ")
}
