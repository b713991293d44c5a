package strategy

import (
	"github.com/helmsman-lab/helmsman-trading/internal/indicator"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

// MACDParams configures the MACD cross strategy.
type MACDParams struct {
	FastSpan   int `yaml:"fast_span" json:"fast_span" validate:"required,gt=0,ltfield=SlowSpan"`
	SlowSpan   int `yaml:"slow_span" json:"slow_span" validate:"required,gt=0"`
	SignalSpan int `yaml:"signal_span" json:"signal_span" validate:"required,gt=0"`
}

// DefaultMACDParams returns the default MACD parameters.
func DefaultMACDParams() MACDParams {
	return MACDParams{
		FastSpan:   12,
		SlowSpan:   26,
		SignalSpan: 9,
	}
}

// generateMACD goes fully long while the MACD line is above its signal line
// and flat otherwise. EMAs are seeded with the first value, so the series is
// defined from bar 0.
func generateMACD(closes []float64, params MACDParams) types.SignalSeries {
	macd, signal := indicator.MACD(closes, params.FastSpan, params.SlowSpan, params.SignalSpan)

	signals := make(types.SignalSeries, len(closes))
	for i := range closes {
		if macd[i] > signal[i] {
			signals[i] = types.SignalLong
		} else {
			signals[i] = types.SignalFlat
		}
	}

	return signals
}
