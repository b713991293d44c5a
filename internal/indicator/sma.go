// Package indicator implements the technical indicator primitives used by the
// signal generators and the metrics calculator. All functions are pure
// transformations over price or return slices: the caller materializes the
// full series first and warmup entries are reported as NaN so that consumers
// can distinguish "no value yet" from a real zero.
package indicator

import "math"

// SMA returns the simple moving average of values over the given window.
// The first window-1 entries are NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window < 1 || window > len(values) {
		return out
	}

	sum := 0.0

	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}

	return out
}

// RollingStd returns the rolling sample standard deviation (ddof=1) of values
// over the given window. The first window-1 entries are NaN; a window of 1
// yields zeros after the first entry is available.
func RollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window < 1 || window > len(values) {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		out[i] = sampleStd(values[i-window+1 : i+1])
	}

	return out
}

// Mean returns the arithmetic mean of values, NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStd computes the ddof=1 standard deviation. A single observation has
// no dispersion estimate and yields 0.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)
	sum := 0.0

	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}

	return math.Sqrt(sum / float64(len(values)-1))
}

// SampleStd returns the ddof=1 standard deviation of values.
func SampleStd(values []float64) float64 {
	return sampleStd(values)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}
