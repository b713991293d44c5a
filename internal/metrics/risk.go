package metrics

import (
	"math"
	"sort"
)

// ConfidenceLevels are the levels reported for VaR and CVaR.
var ConfidenceLevels = []float64{0.99, 0.95, 0.90}

// Percentile computes the p-th percentile (0..100) of values with linear
// interpolation between adjacent order statistics.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}

	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)

	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ValueAtRisk is the loss threshold not exceeded with the given confidence:
// the (1-level) percentile of the daily returns, negated so that a positive
// number means a loss.
func ValueAtRisk(returns []float64, level float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	return -Percentile(returns, (1-level)*100)
}

// ConditionalValueAtRisk is the expected loss given the VaR threshold is
// breached: the mean of all returns at or below the (1-level) percentile,
// negated like ValueAtRisk.
func ConditionalValueAtRisk(returns []float64, level float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	threshold := Percentile(returns, (1-level)*100)

	sum := 0.0
	count := 0

	for _, r := range returns {
		if r <= threshold {
			sum += r
			count++
		}
	}

	if count == 0 {
		return math.NaN()
	}

	return -sum / float64(count)
}
