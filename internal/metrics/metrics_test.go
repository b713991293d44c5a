package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func curveFromValues(values []float64) types.EquityCurve {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	curve := make(types.EquityCurve, len(values))

	for i, v := range values {
		curve[i] = types.EquityPoint{Date: base.AddDate(0, 0, i), Value: v}
	}

	return curve
}

func (suite *MetricsTestSuite) TestTotalReturn() {
	suite.InDelta(0.10, TotalReturn([]float64{100, 105, 110}), 1e-12)
	suite.InDelta(0, TotalReturn([]float64{100}), 1e-12)
	suite.True(math.IsNaN(TotalReturn(nil)))
}

func (suite *MetricsTestSuite) TestAnnualReturnCompounds() {
	// One daily period of +10% compounds to 1.1^252 - 1 per year.
	suite.InDelta(math.Pow(1.1, 252)-1, AnnualReturn([]float64{100, 110}), 1e-6)
	suite.True(math.IsNaN(AnnualReturn([]float64{100})))
}

func (suite *MetricsTestSuite) TestMaxDrawdown() {
	suite.InDelta(-0.25, MaxDrawdown([]float64{100, 120, 90, 100}), 1e-12)
	suite.InDelta(0, MaxDrawdown([]float64{100, 110, 120}), 1e-12)
	suite.True(math.IsNaN(MaxDrawdown(nil)))
}

func (suite *MetricsTestSuite) TestDrawdownSeries() {
	dd := Drawdown([]float64{100, 120, 90, 100})
	suite.InDelta(0, dd[0], 1e-12)
	suite.InDelta(0, dd[1], 1e-12)
	suite.InDelta(-0.25, dd[2], 1e-12)
	suite.InDelta(100.0/120.0-1, dd[3], 1e-12)
}

func (suite *MetricsTestSuite) TestDrawdownBounds() {
	values := []float64{100, 130, 80, 140, 60, 90}
	dd := MaxDrawdown(values)
	suite.LessOrEqual(dd, 0.0)
	suite.GreaterOrEqual(dd, -1.0)
}

func (suite *MetricsTestSuite) TestWinRateIgnoresFlatDays() {
	// Returns: +10%, 0%, ~-9.9%; only the two non-zero days count.
	curve := curveFromValues([]float64{100, 110, 110, 99.1})
	suite.InDelta(0.5, WinRate(curve.DailyReturns()), 1e-12)
}

func (suite *MetricsTestSuite) TestWinRateUndefinedForFlatSeries() {
	curve := curveFromValues([]float64{100, 100, 100})
	suite.True(math.IsNaN(WinRate(curve.DailyReturns())))
}

func (suite *MetricsTestSuite) TestPercentileLinearInterpolation() {
	values := []float64{3, 1, 4, 2}
	suite.InDelta(1.75, Percentile(values, 25), 1e-12)
	suite.InDelta(2.5, Percentile(values, 50), 1e-12)
	suite.InDelta(1, Percentile(values, 0), 1e-12)
	suite.InDelta(4, Percentile(values, 100), 1e-12)
	suite.True(math.IsNaN(Percentile(nil, 50)))
}

func (suite *MetricsTestSuite) TestValueAtRisk() {
	returns := []float64{-0.05, -0.02, 0.01, 0.03, 0.04}

	// 5th percentile of 5 points interpolates between the two worst days.
	suite.InDelta(0.044, ValueAtRisk(returns, 0.95), 1e-12)
	suite.InDelta(0.05, ConditionalValueAtRisk(returns, 0.95), 1e-12)

	suite.True(math.IsNaN(ValueAtRisk(nil, 0.95)))
	suite.True(math.IsNaN(ConditionalValueAtRisk(nil, 0.95)))
}

func (suite *MetricsTestSuite) TestSortinoUndefinedWithoutLosses() {
	values := []float64{100, 101, 102, 103}
	curve := curveFromValues(values)
	suite.True(math.IsNaN(SortinoRatio(values, curve.DailyReturns())))
}

func (suite *MetricsTestSuite) TestSortinoFiniteWithLosses() {
	values := []float64{100, 104, 101, 106, 102, 108}
	curve := curveFromValues(values)
	sortino := SortinoRatio(values, curve.DailyReturns())
	suite.False(math.IsNaN(sortino))
}

func (suite *MetricsTestSuite) TestFlatSeriesSummary() {
	summary := Compute(curveFromValues([]float64{100, 100, 100, 100}))

	suite.InDelta(0, summary.TotalReturn, 1e-12)
	suite.InDelta(0, summary.AnnualReturn, 1e-12)
	suite.InDelta(0, summary.AnnualVolatility, 1e-12)
	suite.InDelta(0, summary.MaxDrawdown, 1e-12)
	suite.True(math.IsNaN(summary.SharpeRatio))
	suite.True(math.IsNaN(summary.SortinoRatio))
	suite.True(math.IsNaN(summary.CalmarRatio))
	suite.True(math.IsNaN(summary.WinRate))
}

func (suite *MetricsTestSuite) TestSummaryInternalConsistency() {
	values := []float64{100, 103, 101, 105, 102, 107, 104, 110, 106, 112}
	summary := Compute(curveFromValues(values))

	suite.InDelta((summary.AnnualReturn-RiskFreeRate)/summary.AnnualVolatility, summary.SharpeRatio, 1e-9)
	suite.InDelta(summary.AnnualReturn/math.Abs(summary.MaxDrawdown), summary.CalmarRatio, 1e-9)
	suite.GreaterOrEqual(summary.VaR99, summary.VaR95)
	suite.GreaterOrEqual(summary.CVaR95, summary.VaR95)
}

func (suite *MetricsTestSuite) TestRollingWindowWarmup() {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100 + float64(i)
	}

	rolling := RollingWindow(curveFromValues(values), 20)
	suite.Equal(20, rolling.Window)
	suite.Len(rolling.Return, 29)

	for i := 0; i < 19; i++ {
		suite.True(math.IsNaN(rolling.Return[i]))
		suite.True(math.IsNaN(rolling.Volatility[i]))
		suite.True(math.IsNaN(rolling.Sharpe[i]))
	}

	suite.False(math.IsNaN(rolling.Return[19]))
	suite.False(math.IsNaN(rolling.Volatility[19]))
}

func (suite *MetricsTestSuite) TestRollingFlatCurveHasNoSharpe() {
	// Constant equity: rolling volatility is exactly 0, Sharpe undefined.
	values := make([]float64, 25)
	for i := range values {
		values[i] = 100
	}

	rolling := RollingWindow(curveFromValues(values), 20)
	last := len(rolling.Return) - 1
	suite.InDelta(0, rolling.Return[last], 1e-12)
	suite.InDelta(0, rolling.Volatility[last], 1e-12)
	suite.True(math.IsNaN(rolling.Sharpe[last]))
}

func (suite *MetricsTestSuite) TestComputeRollingUsesDefaultWindows() {
	values := make([]float64, 130)
	for i := range values {
		values[i] = 100 + float64(i%5)
	}

	rolling := ComputeRolling(curveFromValues(values))
	suite.Require().Len(rolling, 3)
	suite.Equal(20, rolling[0].Window)
	suite.Equal(60, rolling[1].Window)
	suite.Equal(120, rolling[2].Window)
}

func (suite *MetricsTestSuite) TestMonthlyReturns() {
	base := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	curve := types.EquityCurve{
		{Date: base, Value: 100},
		{Date: base.AddDate(0, 0, 1), Value: 110},               // Jan: +10%
		{Date: base.AddDate(0, 0, 2), Value: 121},               // Feb 1: +10%
		{Date: base.AddDate(0, 0, 3), Value: 121 * 1.05},        // Feb 2: +5%
		{Date: base.AddDate(0, 0, 33), Value: 121 * 1.05 * 0.9}, // Mar: -10%
	}

	monthly := MonthlyReturns(curve)
	suite.Require().Len(monthly, 3)

	suite.Equal(2024, monthly[0].Year)
	suite.Equal(time.January, monthly[0].Month)
	suite.InDelta(0.10, monthly[0].Return, 1e-9)

	suite.Equal(time.February, monthly[1].Month)
	suite.InDelta(0.15, monthly[1].Return, 1e-9)

	suite.Equal(time.March, monthly[2].Month)
	suite.InDelta(-0.10, monthly[2].Return, 1e-9)
}

func (suite *MetricsTestSuite) TestMonthlyReturnsEmptyCurve() {
	suite.Empty(MonthlyReturns(types.EquityCurve{}))
}
