// Package datastore provides the per-symbol daily bar storage consumed by
// the backtest engine. Implementations materialize the whole series before
// the engine runs; no I/O happens inside the simulation loop.
package datastore

import (
	"github.com/helmsman-lab/helmsman-trading/internal/types"
)

// BarStore is a key-value lookup of daily bar series by instrument symbol.
type BarStore interface {
	// LoadDailyData returns the full daily series for the symbol, sorted
	// ascending by date. An unknown symbol fails with a symbol-not-found
	// error, never an empty series.
	LoadDailyData(symbol string) (types.PriceSeries, error)

	// Symbols lists the symbols the store can serve, sorted ascending.
	Symbols() ([]string, error)

	// Close releases underlying resources.
	Close() error
}
