package indicator

// EMA returns the exponential moving average of values with smoothing factor
// 2/(span+1), seeded with the first value and no bias adjustment. The result
// is defined from the first entry onward.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}
