package metavars

import (
	"math/rand"
	"testing"

	"github.com/jvanstraten/typeinfer/tests/fuzz/generators"
)

func deterministicRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// FuzzIntegerSetUnionCanonicalizes checks that Union always produces a
// canonical IntegerSet: sorted, non-overlapping, non-adjacent intervals,
// regardless of how scrambled or overlapping the input intervals were.
// Grounded on the teacher's own avoidance of a third-party property
// library (tests/fuzz/generators feeds Go's native testing.F instead).
func FuzzIntegerSetUnionCanonicalizes(f *testing.F) {
	f.Add(int64(1), int64(7))
	f.Add(int64(42), int64(3))

	f.Fuzz(func(t *testing.T, seed int64, count int64) {
		n := int(count % 12)
		if n < 0 {
			n = -n
		}
		src := &generators.RandSource{Rand: deterministicRand(seed)}
		raw := generators.IntervalSet(src, n)

		set := EmptyIntegerSet()
		for _, r := range raw {
			set = set.Union(NewIntegerSet(Interval{Low: r.Low, High: r.High, HasLow: r.HasLow, HasHigh: r.HasHigh}))
		}

		intervals := set.Intervals()
		for i := 1; i < len(intervals); i++ {
			prev, cur := intervals[i-1], intervals[i]
			if prev.HasHigh && cur.HasLow && prev.High+1 >= cur.Low {
				t.Fatalf("Union left overlapping/adjacent intervals: %v then %v", prev, cur)
			}
			if !prev.HasHigh {
				t.Fatalf("an unbounded-above interval must be last, found at index %d of %d", i-1, len(intervals))
			}
		}
	})
}
