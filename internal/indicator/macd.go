package indicator

// MACD returns the MACD line (fast EMA minus slow EMA) and its signal line
// (EMA of the MACD line over signalSpan). Both are defined from bar 0.
func MACD(values []float64, fastSpan, slowSpan, signalSpan int) (macd, signal []float64) {
	fast := EMA(values, fastSpan)
	slow := EMA(values, slowSpan)

	macd = make([]float64, len(values))
	for i := range values {
		macd[i] = fast[i] - slow[i]
	}

	signal = EMA(macd, signalSpan)

	return macd, signal
}
