package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/helmsman-lab/helmsman-trading/internal/backtest"
	"github.com/helmsman-lab/helmsman-trading/internal/datastore"
	"github.com/helmsman-lab/helmsman-trading/internal/logger"
	"github.com/helmsman-lab/helmsman-trading/internal/report"
)

// backtestAction loads the config and price data, runs the engine, and
// writes the run artifacts into a timestamped results directory.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	symbol := cmd.String("symbol")
	dataDir := cmd.String("data")
	outputDir := cmd.String("output")

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := backtest.ParseConfig(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	store, err := datastore.NewDuckDBStore(dataDir, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	defer store.Close()

	series, err := store.LoadDailyData(symbol)
	if err != nil {
		return fmt.Errorf("failed to load daily data: %w", err)
	}

	engine, err := backtest.NewEngine(config, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	appLogger.Info("running backtest",
		zap.String("symbol", symbol),
		zap.String("strategy", string(config.Strategy.Kind)),
		zap.Int("bars", series.Len()))

	result, err := engine.Run(series)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	writer, err := report.NewWriter(outputDir)
	if err != nil {
		return fmt.Errorf("failed to create result writer: %w", err)
	}

	if err := writer.WriteResult(result, series); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	appLogger.Info("backtest finished",
		zap.String("run_id", result.ID),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("final_equity", result.EquityCurve[len(result.EquityCurve)-1].Value),
		zap.String("results", writer.RunDir()))

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run a single-symbol strategy backtest over daily bars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the YAML backtest config",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Instrument symbol to backtest",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Directory holding per-symbol bar files",
				Value:    "data",
				Required: false,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Base directory for run results",
				Value:    "results",
				Required: false,
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
