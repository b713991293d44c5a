package metrics

import (
	"math"
	"time"

	"github.com/helmsman-lab/helmsman-trading/internal/indicator"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

// DefaultRollingWindows are the window sizes reported by ComputeRolling.
var DefaultRollingWindows = []int{20, 60, 120}

// RollingSeries carries the rolling statistics for one window size, aligned
// 1:1 with the daily return series. Warmup entries are NaN.
type RollingSeries struct {
	Window     int         `yaml:"window" json:"window"`
	Dates      []time.Time `yaml:"dates" json:"dates"`
	Return     []float64   `yaml:"return" json:"return"`
	Volatility []float64   `yaml:"volatility" json:"volatility"`
	Sharpe     []float64   `yaml:"sharpe" json:"sharpe"`
}

// RollingWindow computes annualized rolling return, volatility and Sharpe
// over the daily return series for one window size.
func RollingWindow(curve types.EquityCurve, window int) RollingSeries {
	returns := curve.DailyReturns()
	dates := curve.ReturnDates()

	out := RollingSeries{
		Window:     window,
		Dates:      dates,
		Return:     make([]float64, len(returns)),
		Volatility: make([]float64, len(returns)),
		Sharpe:     make([]float64, len(returns)),
	}

	means := indicator.SMA(returns, window)
	stds := indicator.RollingStd(returns, window)

	for i := range returns {
		out.Return[i] = means[i] * TradingDaysPerYear
		out.Volatility[i] = stds[i] * math.Sqrt(TradingDaysPerYear)

		if math.IsNaN(out.Volatility[i]) || out.Volatility[i] == 0 {
			out.Sharpe[i] = math.NaN()

			continue
		}

		out.Sharpe[i] = (out.Return[i] - RiskFreeRate) / out.Volatility[i]
	}

	return out
}

// ComputeRolling computes RollingWindow for each of the default windows.
func ComputeRolling(curve types.EquityCurve) []RollingSeries {
	out := make([]RollingSeries, 0, len(DefaultRollingWindows))
	for _, window := range DefaultRollingWindows {
		out = append(out, RollingWindow(curve, window))
	}

	return out
}
