package datastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/helmsman-lab/helmsman-trading/internal/logger"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// barFileExtensions are the on-disk formats a symbol's series may use, in
// lookup order.
var barFileExtensions = []string{".parquet", ".csv"}

// DuckDBStore serves daily bars from a directory of per-symbol parquet or
// CSV files, one file per symbol, queried through an in-process DuckDB.
type DuckDBStore struct {
	db      *sql.DB
	dataDir string
	logger  *logger.Logger
	sq      squirrel.StatementBuilderType
}

// NewDuckDBStore opens an in-memory DuckDB over the given data directory.
func NewDuckDBStore(dataDir string, log *logger.Logger) (*DuckDBStore, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	info, err := os.Stat(dataDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrCodeDataStoreUnavailable, "data directory %s is not readable", dataDir)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataStoreUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBStore{
		db:      db,
		dataDir: dataDir,
		logger:  log,
		sq:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// LoadDailyData implements BarStore.
func (d *DuckDBStore) LoadDailyData(symbol string) (types.PriceSeries, error) {
	path, err := d.barFile(symbol)
	if err != nil {
		return types.PriceSeries{}, err
	}

	query, args, err := d.sq.
		Select("date", "open", "high", "low", "close", "volume", "amount").
		From(readRelation(path)).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return types.PriceSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	d.logger.Debug("loading daily data",
		zap.String("symbol", symbol),
		zap.String("file", path))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read bars for %s", symbol)
	}
	defer rows.Close()

	series := types.PriceSeries{Symbol: symbol, Bars: nil}

	for rows.Next() {
		var (
			date                                    time.Time
			open, high, low, close, volume, amount float64
		)

		if err := rows.Scan(&date, &open, &high, &low, &close, &volume, &amount); err != nil {
			return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to scan bar for %s", symbol)
		}

		series.Bars = append(series.Bars, types.Bar{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
			Amount: amount,
		})
	}

	if err := rows.Err(); err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "error iterating bars for %s", symbol)
	}

	if err := series.Validate(); err != nil {
		return types.PriceSeries{}, err
	}

	return series, nil
}

// Symbols implements BarStore.
func (d *DuckDBStore) Symbols() ([]string, error) {
	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataStoreUnavailable, "failed to list data directory", err)
	}

	seen := make(map[string]struct{})
	symbols := []string{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if !isBarFileExtension(ext) {
			continue
		}

		symbol := strings.TrimSuffix(entry.Name(), ext)
		if _, ok := seen[symbol]; ok {
			continue
		}

		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols, nil
}

// Close implements BarStore.
func (d *DuckDBStore) Close() error {
	return d.db.Close()
}

// barFile resolves the on-disk file backing a symbol.
func (d *DuckDBStore) barFile(symbol string) (string, error) {
	for _, ext := range barFileExtensions {
		path := filepath.Join(d.dataDir, symbol+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeSymbolNotFound, "no data file for symbol %s in %s", symbol, d.dataDir)
}

// readRelation maps a file path to the DuckDB table function reading it.
func readRelation(path string) string {
	if filepath.Ext(path) == ".parquet" {
		return fmt.Sprintf("read_parquet('%s')", path)
	}

	return fmt.Sprintf("read_csv_auto('%s')", path)
}

func isBarFileExtension(ext string) bool {
	for _, known := range barFileExtensions {
		if ext == known {
			return true
		}
	}

	return false
}
