package types

import "time"

// EquityPoint is one total-account-value observation.
type EquityPoint struct {
	Date  time.Time `csv:"date" yaml:"date" json:"date"`
	Value float64   `csv:"value" yaml:"value" json:"value"`
}

// EquityCurve is aligned 1:1 with the price series of a run, one point per
// bar. It is built incrementally by the engine and read-only downstream.
type EquityCurve []EquityPoint

// Values returns the equity column.
func (e EquityCurve) Values() []float64 {
	values := make([]float64, len(e))
	for i, point := range e {
		values[i] = point.Value
	}

	return values
}

// DailyReturns derives the simple daily return series r_t = v_t/v_{t-1} - 1.
// The result has length len(e)-1; an empty or single-point curve yields an
// empty slice, never nil panics.
func (e EquityCurve) DailyReturns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}

	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		returns = append(returns, e[i].Value/e[i-1].Value-1)
	}

	return returns
}

// ReturnDates returns the dates aligned with DailyReturns (the date each
// return was realized on).
func (e EquityCurve) ReturnDates() []time.Time {
	if len(e) < 2 {
		return []time.Time{}
	}

	dates := make([]time.Time, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		dates = append(dates, e[i].Date)
	}

	return dates
}

// BacktestResult is the immutable output bundle of one backtest run.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID     string `yaml:"id" json:"id"`
	Symbol string `yaml:"symbol" json:"symbol"`
	// EquityCurve has one point per input bar.
	EquityCurve EquityCurve `yaml:"equity_curve" json:"equity_curve"`
	// Trades holds the accepted trades in execution order. Empty, never nil.
	Trades []Trade `yaml:"trades" json:"trades"`
}
