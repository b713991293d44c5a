package indicator

// RSI returns the relative strength index over rolling simple means of the
// gains and losses of daily deltas. The first window entries are NaN (the
// delta at bar 0 is undefined). A zero mean loss saturates the RSI to 100
// instead of dividing by zero.
func RSI(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window < 1 || window >= len(values) {
		return out
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))

	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	gainSum := 0.0
	lossSum := 0.0

	for i := 1; i < len(values); i++ {
		gainSum += gains[i]
		lossSum += losses[i]

		if i > window {
			gainSum -= gains[i-window]
			lossSum -= losses[i-window]
		}

		if i < window {
			continue
		}

		meanGain := gainSum / float64(window)
		meanLoss := lossSum / float64(window)

		if meanLoss == 0 {
			out[i] = 100
			continue
		}

		rs := meanGain / meanLoss
		out[i] = 100 - 100/(1+rs)
	}

	return out
}
