package types

import "math"

// Target exposure levels on the 0-100 scale.
const (
	SignalFlat float64 = 0
	SignalLong float64 = 100
)

// SignalSeries is a per-bar target exposure series aligned 1:1 with a
// PriceSeries. Entries are values in [0, 100]; NaN marks a warmup bar where
// the generator has no opinion yet and the engine must hold its position.
type SignalSeries []float64

// HasValue reports whether the signal at index i is defined.
func (s SignalSeries) HasValue(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}
