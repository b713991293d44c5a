package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Reasons recorded on order rejection diagnostics. A rejected order is a
// silent no-op for the bar, but the log line must be distinguishable from a
// bar with no signal to trade.
const (
	RejectReasonInsufficientCash   string = "insufficient_cash"
	RejectReasonInsufficientShares string = "insufficient_shares"
)

// Trade is one executed order appended to the trade ledger. All fields are
// fixed at execution time except Profit, which accrues the mark-to-market
// move of the position held after this trade (see engine docs).
type Trade struct {
	OrderID string    `csv:"order_id" yaml:"order_id" json:"order_id"`
	Date    time.Time `csv:"date" yaml:"date" json:"date"`
	Side    TradeSide `csv:"side" yaml:"side" json:"side"`
	// Price is the executed price after slippage.
	Price  float64 `csv:"price" yaml:"price" json:"price"`
	Volume int64   `csv:"volume" yaml:"volume" json:"volume"`
	// Amount is the notional value Price * Volume.
	Amount     float64 `csv:"amount" yaml:"amount" json:"amount"`
	Commission float64 `csv:"commission" yaml:"commission" json:"commission"`
	Profit     float64 `csv:"profit" yaml:"profit" json:"profit"`
}

// TotalProfit sums trade profits over the ledger.
func TotalProfit(trades []Trade) float64 {
	total := decimal.Zero
	for _, trade := range trades {
		total = total.Add(decimal.NewFromFloat(trade.Profit))
	}

	result, _ := total.Float64()

	return result
}

// TotalCommission sums commissions over the ledger.
func TotalCommission(trades []Trade) float64 {
	total := decimal.Zero
	for _, trade := range trades {
		total = total.Add(decimal.NewFromFloat(trade.Commission))
	}

	result, _ := total.Float64()

	return result
}
