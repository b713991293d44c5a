// Package report persists the outputs of one backtest run: a YAML stats
// bundle plus CSV exports of the trade ledger and equity curve.
package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/helmsman-lab/helmsman-trading/internal/metrics"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// Report bundles every statistic computed for one run into the stats.yaml
// document.
type Report struct {
	Ledger  types.LedgerStats       `yaml:"ledger"`
	Metrics metrics.Summary         `yaml:"metrics"`
	Monthly []metrics.MonthlyReturn `yaml:"monthly_returns"`
}

// Writer writes run artifacts into a timestamped directory under a base
// directory, one directory per run.
type Writer struct {
	baseDir string
	runDir  string
}

// NewWriter creates the run directory under baseDir.
func NewWriter(baseDir string) (*Writer, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	runDir := filepath.Join(baseDir, timestamp)

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnknown, "failed to create run directory", err)
	}

	return &Writer{
		baseDir: baseDir,
		runDir:  runDir,
	}, nil
}

// RunDir returns the directory artifacts are written into.
func (w *Writer) RunDir() string {
	return w.runDir
}

// WriteResult writes stats.yaml, trades.csv and equity.csv for the run.
func (w *Writer) WriteResult(result *types.BacktestResult, series types.PriceSeries) error {
	report := Report{
		Ledger:  types.ComputeLedgerStats(*result, series),
		Metrics: metrics.Compute(result.EquityCurve),
		Monthly: metrics.MonthlyReturns(result.EquityCurve),
	}

	if err := w.writeYAML("stats.yaml", report); err != nil {
		return err
	}

	if err := w.writeCSV("trades.csv", &result.Trades); err != nil {
		return err
	}

	curve := []types.EquityPoint(result.EquityCurve)

	return w.writeCSV("equity.csv", &curve)
}

func (w *Writer) writeYAML(name string, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to marshal %s", name)
	}

	path := filepath.Join(w.runDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to write %s", name)
	}

	return nil
}

func (w *Writer) writeCSV(name string, records any) error {
	path := filepath.Join(w.runDir, name)

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to create %s", name)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(records, file); err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to write %s", name)
	}

	return nil
}
