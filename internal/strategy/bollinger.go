package strategy

import (
	"math"

	"github.com/helmsman-lab/helmsman-trading/internal/indicator"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

// BollingerParams configures the Bollinger breakout strategy.
type BollingerParams struct {
	Window  int     `yaml:"window" json:"window" validate:"required,gt=0"`
	StdMult float64 `yaml:"std_mult" json:"std_mult" validate:"required,gt=0"`
}

// DefaultBollingerParams returns the default Bollinger parameters.
func DefaultBollingerParams() BollingerParams {
	return BollingerParams{
		Window:  20,
		StdMult: 2.0,
	}
}

// generateBollinger goes long on a close below the lower band and flat on a
// close above the upper band; bars between the bands stay flat (same
// overwrite order as the RSI strategy).
func generateBollinger(closes []float64, params BollingerParams) types.SignalSeries {
	_, upper, lower := indicator.BollingerBands(closes, params.Window, params.StdMult)

	signals := make(types.SignalSeries, len(closes))
	for i := range closes {
		if math.IsNaN(upper[i]) || math.IsNaN(lower[i]) {
			signals[i] = math.NaN()
			continue
		}

		signals[i] = types.SignalFlat
		if closes[i] < lower[i] {
			signals[i] = types.SignalLong
		}

		if closes[i] > upper[i] {
			signals[i] = types.SignalFlat
		}
	}

	return signals
}
