package types

import (
	"math"
	"time"

	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// Bar is a single trading-day observation for one instrument.
type Bar struct {
	Date   time.Time `csv:"date" yaml:"date" json:"date"`
	Open   float64   `csv:"open" yaml:"open" json:"open"`
	High   float64   `csv:"high" yaml:"high" json:"high"`
	Low    float64   `csv:"low" yaml:"low" json:"low"`
	Close  float64   `csv:"close" yaml:"close" json:"close"`
	Volume float64   `csv:"volume" yaml:"volume" json:"volume"`
	Amount float64   `csv:"amount" yaml:"amount" json:"amount"`
}

// PriceSeries is an ordered sequence of daily bars for one instrument,
// sorted ascending by date with no duplicate dates.
type PriceSeries struct {
	Symbol string
	Bars   []Bar
}

func (p *PriceSeries) Len() int {
	return len(p.Bars)
}

// Closes returns the close column of the series.
func (p *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.Bars))
	for i, bar := range p.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Opens returns the open column of the series.
func (p *PriceSeries) Opens() []float64 {
	opens := make([]float64, len(p.Bars))
	for i, bar := range p.Bars {
		opens[i] = bar.Open
	}

	return opens
}

// Validate checks the series invariants before a simulation starts:
// non-empty, strictly increasing dates, positive prices. A series failing
// any of these is rejected outright; no partial run is attempted.
func (p *PriceSeries) Validate() error {
	if len(p.Bars) == 0 {
		return errors.Newf(errors.ErrCodeSeriesEmpty, "price series for %s is empty", p.Symbol)
	}

	for i, bar := range p.Bars {
		for _, price := range []float64{bar.Open, bar.High, bar.Low, bar.Close} {
			if math.IsNaN(price) || math.IsInf(price, 0) {
				return errors.Newf(errors.ErrCodeSeriesMalformed,
					"non-numeric price at bar %d (%s)", i, bar.Date.Format("2006-01-02"))
			}
		}

		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return errors.Newf(errors.ErrCodeSeriesMalformed,
				"non-positive price at bar %d (%s)", i, bar.Date.Format("2006-01-02"))
		}

		if bar.Volume < 0 || bar.Amount < 0 {
			return errors.Newf(errors.ErrCodeSeriesMalformed,
				"negative volume or amount at bar %d (%s)", i, bar.Date.Format("2006-01-02"))
		}

		if i == 0 {
			continue
		}

		prev := p.Bars[i-1].Date
		switch {
		case bar.Date.Equal(prev):
			return errors.Newf(errors.ErrCodeSeriesDuplicateDate,
				"duplicate date %s at bar %d", bar.Date.Format("2006-01-02"), i)
		case bar.Date.Before(prev):
			return errors.Newf(errors.ErrCodeSeriesUnsorted,
				"dates out of order at bar %d (%s after %s)",
				i, bar.Date.Format("2006-01-02"), prev.Format("2006-01-02"))
		}
	}

	return nil
}

// Slice returns the sub-series with dates in [start, end]. A zero start or
// end time means unbounded on that side.
func (p *PriceSeries) Slice(start, end time.Time) PriceSeries {
	out := PriceSeries{Symbol: p.Symbol, Bars: nil}

	for _, bar := range p.Bars {
		if !start.IsZero() && bar.Date.Before(start) {
			continue
		}

		if !end.IsZero() && bar.Date.After(end) {
			continue
		}

		out.Bars = append(out.Bars, bar)
	}

	return out
}
