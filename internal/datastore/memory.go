package datastore

import (
	"sort"
	"sync"

	"github.com/helmsman-lab/helmsman-trading/internal/types"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// MemoryStore is an in-process BarStore. Series are validated when stored so
// every load hands out a series the engine can run unchecked.
type MemoryStore struct {
	mu     sync.RWMutex
	series map[string]types.PriceSeries
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		series: make(map[string]types.PriceSeries),
	}
}

// Put validates and stores the series under its symbol, replacing any
// previous series for that symbol.
func (m *MemoryStore) Put(series types.PriceSeries) error {
	if err := series.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[series.Symbol] = series

	return nil
}

// LoadDailyData implements BarStore.
func (m *MemoryStore) LoadDailyData(symbol string) (types.PriceSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	series, ok := m.series[symbol]
	if !ok {
		return types.PriceSeries{}, errors.Newf(errors.ErrCodeSymbolNotFound, "no data for symbol %s", symbol)
	}

	return series, nil
}

// Symbols implements BarStore.
func (m *MemoryStore) Symbols() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	symbols := make([]string, 0, len(m.series))
	for symbol := range m.series {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols, nil
}

// Close implements BarStore.
func (m *MemoryStore) Close() error {
	return nil
}
