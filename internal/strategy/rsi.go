package strategy

import (
	"math"

	"github.com/helmsman-lab/helmsman-trading/internal/indicator"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

// RSIParams configures the RSI threshold strategy.
type RSIParams struct {
	Window     int     `yaml:"window" json:"window" validate:"required,gt=0"`
	Oversold   float64 `yaml:"oversold" json:"oversold" validate:"required,gt=0,ltfield=Overbought"`
	Overbought float64 `yaml:"overbought" json:"overbought" validate:"required,lt=100"`
}

// DefaultRSIParams returns the default RSI parameters.
func DefaultRSIParams() RSIParams {
	return RSIParams{
		Window:     14,
		Oversold:   30,
		Overbought: 70,
	}
}

// generateRSI starts each defined bar flat, overwrites with long where the
// RSI is below the oversold level, then with flat where it is above the
// overbought level (the overbought write wins if both could apply).
func generateRSI(closes []float64, params RSIParams) types.SignalSeries {
	rsi := indicator.RSI(closes, params.Window)

	signals := make(types.SignalSeries, len(closes))
	for i := range closes {
		if math.IsNaN(rsi[i]) {
			signals[i] = math.NaN()
			continue
		}

		signals[i] = types.SignalFlat
		if rsi[i] < params.Oversold {
			signals[i] = types.SignalLong
		}

		if rsi[i] > params.Overbought {
			signals[i] = types.SignalFlat
		}
	}

	return signals
}
