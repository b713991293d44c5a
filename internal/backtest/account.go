package backtest

import (
	"math"
)

// accountState tracks the cash and share balances of the simulated account
// while a run is in progress.
type accountState struct {
	Cash     float64
	Position int64
}

// MaxAffordableShares returns the largest whole share count the given cash
// can buy at the reference price once slippage and commission are priced in.
// Returns 0 when the price is not positive.
func MaxAffordableShares(cash, price, slippage, commissionRate float64) int64 {
	if price <= 0 {
		return 0
	}

	costPerShare := price * (1 + slippage + commissionRate)

	return int64(math.Floor(cash / costPerShare))
}
