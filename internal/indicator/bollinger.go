package indicator

// BollingerBands returns the middle band (SMA), upper band (SMA + mult*std)
// and lower band (SMA - mult*std) over the given window. The first window-1
// entries of each band are NaN.
func BollingerBands(values []float64, window int, mult float64) (middle, upper, lower []float64) {
	middle = SMA(values, window)
	std := RollingStd(values, window)

	upper = make([]float64, len(values))
	lower = make([]float64, len(values))

	for i := range values {
		upper[i] = middle[i] + mult*std[i]
		lower[i] = middle[i] - mult*std[i]
	}

	return middle, upper, lower
}
