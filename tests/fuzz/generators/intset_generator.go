// Package generators hand-rolls random-input generators for the
// type-inference engine's property tests, the same way the teacher avoids
// a third-party fuzzing/property library and instead drives
// tests/fuzz/targets off its own tests/fuzz/generators package.
package generators

import "math/rand"

// RandomSource abstracts the source of randomness, so the same generator
// logic can run off either math/rand (ordinary tests) or raw bytes (a Go
// native fuzz corpus entry), mirroring generators.RandSource/ByteSource.
type RandomSource interface {
	Intn(n int) int
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// RawInterval is a plain (low, high, hasLow, hasHigh) tuple, generator
// output decoupled from internal/metavars.Interval so this package needs
// no dependency on it.
type RawInterval struct {
	Low, High      int64
	HasLow, HasHigh bool
}

// IntervalSet generates n possibly-overlapping, possibly-unbounded
// intervals drawn from a bounded range, the raw material for
// IntegerSet.Union canonicalization property tests.
func IntervalSet(src RandomSource, n int) []RawInterval {
	out := make([]RawInterval, 0, n)
	for i := 0; i < n; i++ {
		a := int64(src.Intn(2001) - 1000)
		b := int64(src.Intn(2001) - 1000)
		if a > b {
			a, b = b, a
		}
		hasLow := src.Intn(5) != 0
		hasHigh := src.Intn(5) != 0
		out = append(out, RawInterval{Low: a, High: b, HasLow: hasLow, HasHigh: hasHigh})
	}
	return out
}
