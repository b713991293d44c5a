package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

type WriterTestSuite struct {
	suite.Suite
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

func sampleRun() (*types.BacktestResult, types.PriceSeries) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	series := types.PriceSeries{
		Symbol: "600000",
		Bars: []types.Bar{
			{Date: base, Open: 100, High: 100, Low: 100, Close: 100, Volume: 1000, Amount: 100000},
			{Date: base.AddDate(0, 0, 1), Open: 110, High: 110, Low: 110, Close: 110, Volume: 1000, Amount: 110000},
			{Date: base.AddDate(0, 0, 2), Open: 105, High: 105, Low: 105, Close: 105, Volume: 1000, Amount: 105000},
		},
	}

	result := &types.BacktestResult{
		ID:     "run-1",
		Symbol: "600000",
		EquityCurve: types.EquityCurve{
			{Date: base, Value: 10000},
			{Date: base.AddDate(0, 0, 1), Value: 10000},
			{Date: base.AddDate(0, 0, 2), Value: 9545.5},
		},
		Trades: []types.Trade{
			{OrderID: "o-1", Date: base.AddDate(0, 0, 1), Side: types.TradeSideBuy, Price: 110, Volume: 90, Amount: 9900, Commission: 0, Profit: 900},
			{OrderID: "o-2", Date: base.AddDate(0, 0, 2), Side: types.TradeSideSell, Price: 105, Volume: 90, Amount: 9450, Commission: 0, Profit: 0},
		},
	}

	return result, series
}

func (suite *WriterTestSuite) TestWriteResult() {
	baseDir := suite.T().TempDir()

	writer, err := NewWriter(baseDir)
	suite.Require().NoError(err)
	suite.DirExists(writer.RunDir())

	result, series := sampleRun()
	suite.Require().NoError(writer.WriteResult(result, series))

	// stats.yaml round-trips into the report shape.
	statsBytes, err := os.ReadFile(filepath.Join(writer.RunDir(), "stats.yaml"))
	suite.Require().NoError(err)

	var report Report
	suite.Require().NoError(yaml.Unmarshal(statsBytes, &report))
	suite.Equal("run-1", report.Ledger.ID)
	suite.Equal(2, report.Ledger.TradeResult.NumberOfTrades)
	suite.InDelta(9545.5/10000-1, report.Metrics.TotalReturn, 1e-9)

	// trades.csv round-trips through gocsv.
	tradesFile, err := os.Open(filepath.Join(writer.RunDir(), "trades.csv"))
	suite.Require().NoError(err)
	defer tradesFile.Close()

	var trades []types.Trade
	suite.Require().NoError(gocsv.UnmarshalFile(tradesFile, &trades))
	suite.Require().Len(trades, 2)
	suite.Equal("o-1", trades[0].OrderID)
	suite.Equal(types.TradeSideSell, trades[1].Side)

	// equity.csv has one row per bar.
	equityFile, err := os.Open(filepath.Join(writer.RunDir(), "equity.csv"))
	suite.Require().NoError(err)
	defer equityFile.Close()

	var curve []types.EquityPoint
	suite.Require().NoError(gocsv.UnmarshalFile(equityFile, &curve))
	suite.Require().Len(curve, 3)
	suite.InDelta(9545.5, curve[2].Value, 1e-9)
}

func (suite *WriterTestSuite) TestWriteResultNoTrades() {
	writer, err := NewWriter(suite.T().TempDir())
	suite.Require().NoError(err)

	result, series := sampleRun()
	result.Trades = []types.Trade{}

	suite.Require().NoError(writer.WriteResult(result, series))
	suite.FileExists(filepath.Join(writer.RunDir(), "trades.csv"))
}
