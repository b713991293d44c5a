package strategy

import (
	"math"

	"github.com/helmsman-lab/helmsman-trading/internal/indicator"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

// MACrossParams configures the moving-average cross strategy.
type MACrossParams struct {
	FastWindow int `yaml:"fast_window" json:"fast_window" validate:"required,gt=0,ltfield=SlowWindow"`
	SlowWindow int `yaml:"slow_window" json:"slow_window" validate:"required,gt=0"`
}

// DefaultMACrossParams returns the default moving-average cross parameters.
func DefaultMACrossParams() MACrossParams {
	return MACrossParams{
		FastWindow: 5,
		SlowWindow: 20,
	}
}

// generateMACross goes fully long while the fast simple moving average is
// above the slow one and flat otherwise.
func generateMACross(closes []float64, params MACrossParams) types.SignalSeries {
	fast := indicator.SMA(closes, params.FastWindow)
	slow := indicator.SMA(closes, params.SlowWindow)

	signals := make(types.SignalSeries, len(closes))
	for i := range closes {
		if math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			signals[i] = math.NaN()
			continue
		}

		if fast[i] > slow[i] {
			signals[i] = types.SignalLong
		} else {
			signals[i] = types.SignalFlat
		}
	}

	return signals
}
