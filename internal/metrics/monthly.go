package metrics

import (
	"time"

	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

// MonthlyReturn is the sum of daily returns falling inside one calendar
// month, the heat-map cell of performance reports.
type MonthlyReturn struct {
	Year   int        `yaml:"year" json:"year"`
	Month  time.Month `yaml:"month" json:"month"`
	Return float64    `yaml:"return" json:"return"`
}

// MonthlyReturns groups the daily returns of the curve by (year, month) and
// sums them, ordered chronologically.
func MonthlyReturns(curve types.EquityCurve) []MonthlyReturn {
	returns := curve.DailyReturns()
	dates := curve.ReturnDates()

	out := []MonthlyReturn{}

	for i, r := range returns {
		year, month := dates[i].Year(), dates[i].Month()

		if n := len(out); n > 0 && out[n-1].Year == year && out[n-1].Month == month {
			out[n-1].Return += r

			continue
		}

		out = append(out, MonthlyReturn{Year: year, Month: month, Return: r})
	}

	return out
}
