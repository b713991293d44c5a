// Package metrics computes performance and risk statistics over a finished
// equity curve. Every function is a pure transformation; statistics that are
// numerically undefined for the given input (zero volatility, empty return
// series) come back as NaN rather than an error.
package metrics

import (
	"math"

	"github.com/helmsman-lab/helmsman-trading/internal/indicator"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

const (
	// TradingDaysPerYear is the annualization base for daily observations.
	TradingDaysPerYear = 252

	// RiskFreeRate is the annual risk-free rate used by Sharpe and Sortino.
	RiskFreeRate = 0.03
)

// Summary is the scalar statistic bundle of one backtest run.
type Summary struct {
	TotalReturn      float64 `yaml:"total_return" json:"total_return"`
	AnnualReturn     float64 `yaml:"annual_return" json:"annual_return"`
	AnnualVolatility float64 `yaml:"annual_volatility" json:"annual_volatility"`
	SharpeRatio      float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	SortinoRatio     float64 `yaml:"sortino_ratio" json:"sortino_ratio"`
	MaxDrawdown      float64 `yaml:"max_drawdown" json:"max_drawdown"`
	CalmarRatio      float64 `yaml:"calmar_ratio" json:"calmar_ratio"`
	WinRate          float64 `yaml:"win_rate" json:"win_rate"`

	VaR99  float64 `yaml:"var_99" json:"var_99"`
	VaR95  float64 `yaml:"var_95" json:"var_95"`
	VaR90  float64 `yaml:"var_90" json:"var_90"`
	CVaR99 float64 `yaml:"cvar_99" json:"cvar_99"`
	CVaR95 float64 `yaml:"cvar_95" json:"cvar_95"`
	CVaR90 float64 `yaml:"cvar_90" json:"cvar_90"`
}

// Compute derives the full summary from an equity curve.
func Compute(curve types.EquityCurve) Summary {
	values := curve.Values()
	returns := curve.DailyReturns()

	summary := Summary{
		TotalReturn:      TotalReturn(values),
		AnnualReturn:     AnnualReturn(values),
		AnnualVolatility: AnnualVolatility(returns),
		SharpeRatio:      math.NaN(),
		SortinoRatio:     SortinoRatio(values, returns),
		MaxDrawdown:      MaxDrawdown(values),
		CalmarRatio:      math.NaN(),
		WinRate:          WinRate(returns),
		VaR99:            ValueAtRisk(returns, 0.99),
		VaR95:            ValueAtRisk(returns, 0.95),
		VaR90:            ValueAtRisk(returns, 0.90),
		CVaR99:           ConditionalValueAtRisk(returns, 0.99),
		CVaR95:           ConditionalValueAtRisk(returns, 0.95),
		CVaR90:           ConditionalValueAtRisk(returns, 0.90),
	}

	summary.SharpeRatio = SharpeRatio(summary.AnnualReturn, summary.AnnualVolatility)
	summary.CalmarRatio = CalmarRatio(summary.AnnualReturn, summary.MaxDrawdown)

	return summary
}

// TotalReturn is equity_last/equity_first - 1.
func TotalReturn(values []float64) float64 {
	if len(values) == 0 || values[0] == 0 {
		return math.NaN()
	}

	return values[len(values)-1]/values[0] - 1
}

// AnnualReturn compounds the total return over 252 trading days per year,
// using the number of daily return observations as the holding period.
func AnnualReturn(values []float64) float64 {
	if len(values) < 2 || values[0] <= 0 {
		return math.NaN()
	}

	growth := values[len(values)-1] / values[0]
	if growth <= 0 {
		return math.NaN()
	}

	periods := float64(len(values) - 1)

	return math.Pow(growth, TradingDaysPerYear/periods) - 1
}

// AnnualVolatility is the sample standard deviation of daily returns scaled
// by sqrt(252).
func AnnualVolatility(returns []float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	return indicator.SampleStd(returns) * math.Sqrt(TradingDaysPerYear)
}

// SharpeRatio is the annualized excess return over annualized volatility.
// Zero volatility makes the ratio undefined.
func SharpeRatio(annualReturn, annualVolatility float64) float64 {
	if math.IsNaN(annualReturn) || math.IsNaN(annualVolatility) || annualVolatility == 0 {
		return math.NaN()
	}

	return (annualReturn - RiskFreeRate) / annualVolatility
}

// SortinoRatio replaces the Sharpe denominator with the annualized standard
// deviation of the negative daily returns only.
func SortinoRatio(values, returns []float64) float64 {
	annualReturn := AnnualReturn(values)
	if math.IsNaN(annualReturn) {
		return math.NaN()
	}

	downside := make([]float64, 0, len(returns))
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	if len(downside) == 0 {
		return math.NaN()
	}

	downsideVol := indicator.SampleStd(downside) * math.Sqrt(TradingDaysPerYear)
	if downsideVol == 0 {
		return math.NaN()
	}

	return (annualReturn - RiskFreeRate) / downsideVol
}

// MaxDrawdown is the deepest peak-to-trough decline of the equity curve,
// reported as a non-positive fraction. A monotonically rising curve yields 0.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	peak := values[0]
	maxDrawdown := 0.0

	for _, v := range values {
		if v > peak {
			peak = v
		}

		drawdown := v/peak - 1
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}

// Drawdown returns the per-bar drawdown series equity_t/running_max - 1.
func Drawdown(values []float64) []float64 {
	out := make([]float64, len(values))
	peak := math.Inf(-1)

	for i, v := range values {
		if v > peak {
			peak = v
		}

		out[i] = v/peak - 1
	}

	return out
}

// CalmarRatio is the annualized return over the absolute max drawdown. A
// drawdown of zero makes the ratio undefined.
func CalmarRatio(annualReturn, maxDrawdown float64) float64 {
	if math.IsNaN(annualReturn) || math.IsNaN(maxDrawdown) || maxDrawdown == 0 {
		return math.NaN()
	}

	return annualReturn / math.Abs(maxDrawdown)
}

// WinRate is the fraction of non-zero daily returns that are positive.
func WinRate(returns []float64) float64 {
	wins := 0
	decided := 0

	for _, r := range returns {
		if r == 0 {
			continue
		}

		decided++
		if r > 0 {
			wins++
		}
	}

	if decided == 0 {
		return math.NaN()
	}

	return float64(wins) / float64(decided)
}
