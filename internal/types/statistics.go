package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeResultStats struct {
	// Count of all trades.
	NumberOfTrades int `yaml:"number_of_trades"`
	// Count of winning trades that have positive profit.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades"`
	// Count of losing trades that have negative profit.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades"`
	// Largest single-trade profit.
	MaxSingleWin float64 `yaml:"max_single_win"`
	// Largest single-trade loss (negative or zero).
	MaxSingleLoss float64 `yaml:"max_single_loss"`
}

type TradePnl struct {
	// Realized PnL: the sum of all trade profits in the ledger.
	RealizedPnL float64 `yaml:"realized_pnl"`
	// Total PnL: final equity minus initial equity.
	TotalPnL float64 `yaml:"total_pnl"`
	// Unrealized PnL: TotalPnL minus RealizedPnL.
	UnrealizedPnL float64 `yaml:"unrealized_pnl"`
}

// LedgerStats summarizes the trade ledger of one backtest run.
type LedgerStats struct {
	// ID is the unique identifier of the backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when the stats were computed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the instrument.
	Symbol string `yaml:"symbol"`
	// Result of all trades.
	TradeResult TradeResultStats `yaml:"trade_result"`
	// PnL of all trades.
	TradePnl TradePnl `yaml:"trade_pnl"`
	// Total commissions paid.
	TotalFees float64 `yaml:"total_fees"`
	// Buy and hold PnL over the same period with the same capital.
	BuyAndHoldPnl float64 `yaml:"buy_and_hold_pnl"`
}

// ComputeLedgerStats derives the ledger summary from a finished run.
func ComputeLedgerStats(result BacktestResult, series PriceSeries) LedgerStats {
	stats := LedgerStats{
		ID:        result.ID,
		Timestamp: time.Now(),
		Symbol:    result.Symbol,
		TradeResult: TradeResultStats{
			NumberOfTrades:        len(result.Trades),
			NumberOfWinningTrades: 0,
			NumberOfLosingTrades:  0,
			MaxSingleWin:          0,
			MaxSingleLoss:         0,
		},
		TradePnl: TradePnl{
			RealizedPnL:   0,
			TotalPnL:      0,
			UnrealizedPnL: 0,
		},
		TotalFees:     TotalCommission(result.Trades),
		BuyAndHoldPnl: 0,
	}

	realized := decimal.Zero

	for _, trade := range result.Trades {
		realized = realized.Add(decimal.NewFromFloat(trade.Profit))

		if trade.Profit > 0 {
			stats.TradeResult.NumberOfWinningTrades++
			if trade.Profit > stats.TradeResult.MaxSingleWin {
				stats.TradeResult.MaxSingleWin = trade.Profit
			}
		}

		if trade.Profit < 0 {
			stats.TradeResult.NumberOfLosingTrades++
			if trade.Profit < stats.TradeResult.MaxSingleLoss {
				stats.TradeResult.MaxSingleLoss = trade.Profit
			}
		}
	}

	stats.TradePnl.RealizedPnL, _ = realized.Float64()

	if len(result.EquityCurve) > 0 {
		first := decimal.NewFromFloat(result.EquityCurve[0].Value)
		last := decimal.NewFromFloat(result.EquityCurve[len(result.EquityCurve)-1].Value)
		stats.TradePnl.TotalPnL, _ = last.Sub(first).Float64()

		total := last.Sub(first)
		stats.TradePnl.UnrealizedPnL, _ = total.Sub(realized).Float64()
	}

	if len(series.Bars) > 1 && len(result.EquityCurve) > 0 {
		firstClose := series.Bars[0].Close
		lastClose := series.Bars[len(series.Bars)-1].Close
		stats.BuyAndHoldPnl = result.EquityCurve[0].Value * (lastClose/firstClose - 1)
	}

	return stats
}
