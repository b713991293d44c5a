package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type StatisticsTestSuite struct {
	suite.Suite
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) TestDailyReturns() {
	curve := EquityCurve{
		{Date: day(0), Value: 10000},
		{Date: day(1), Value: 10100},
		{Date: day(2), Value: 9999},
	}

	returns := curve.DailyReturns()
	suite.Len(returns, 2)
	suite.InDelta(0.01, returns[0], 1e-12)
	suite.InDelta(9999.0/10100.0-1, returns[1], 1e-12)

	dates := curve.ReturnDates()
	suite.Equal([]time.Time{day(1), day(2)}, dates)
}

func (suite *StatisticsTestSuite) TestDailyReturnsDegenerate() {
	suite.Empty(EquityCurve{}.DailyReturns())
	suite.Empty(EquityCurve{{Date: day(0), Value: 10000}}.DailyReturns())
}

func (suite *StatisticsTestSuite) TestComputeLedgerStats() {
	series := PriceSeries{
		Symbol: "AAPL",
		Bars: []Bar{
			flatBar(day(0), 100),
			flatBar(day(1), 110),
		},
	}
	result := BacktestResult{
		ID:     "run-1",
		Symbol: "AAPL",
		EquityCurve: EquityCurve{
			{Date: day(0), Value: 10000},
			{Date: day(1), Value: 10900},
		},
		Trades: []Trade{
			{OrderID: "a", Date: day(1), Side: TradeSideBuy, Price: 100, Volume: 90, Amount: 9000, Commission: 9, Profit: 891},
			{OrderID: "b", Date: day(1), Side: TradeSideSell, Price: 110, Volume: 90, Amount: 9900, Commission: 9.9, Profit: -9.9},
		},
	}

	stats := ComputeLedgerStats(result, series)
	suite.Equal("run-1", stats.ID)
	suite.Equal("AAPL", stats.Symbol)
	suite.Equal(2, stats.TradeResult.NumberOfTrades)
	suite.Equal(1, stats.TradeResult.NumberOfWinningTrades)
	suite.Equal(1, stats.TradeResult.NumberOfLosingTrades)
	suite.InDelta(891, stats.TradeResult.MaxSingleWin, 1e-9)
	suite.InDelta(-9.9, stats.TradeResult.MaxSingleLoss, 1e-9)
	suite.InDelta(881.1, stats.TradePnl.RealizedPnL, 1e-9)
	suite.InDelta(900, stats.TradePnl.TotalPnL, 1e-9)
	suite.InDelta(18.9, stats.TradePnl.UnrealizedPnL, 1e-9)
	suite.InDelta(18.9, stats.TotalFees, 1e-9)
	// Buy and hold: 10000 * (110/100 - 1)
	suite.InDelta(1000, stats.BuyAndHoldPnl, 1e-9)
}

func (suite *StatisticsTestSuite) TestTotals() {
	trades := []Trade{
		{Profit: 1.1, Commission: 0.5},
		{Profit: -0.6, Commission: 0.25},
	}
	suite.InDelta(0.5, TotalProfit(trades), 1e-12)
	suite.InDelta(0.75, TotalCommission(trades), 1e-12)
}
