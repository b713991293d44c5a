package backtest

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helmsman-lab/helmsman-trading/internal/logger"
	"github.com/helmsman-lab/helmsman-trading/internal/strategy"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// Engine replays a daily price series against a signal series and produces
// the trade ledger and equity curve of a long-only, all-in account.
//
// Execution model, applied bar by bar starting from the second bar:
//
//  1. Any positive signal with a flat position buys the maximum affordable
//     whole share count at the reference price adjusted up by slippage. A
//     flat signal with an open position sells the entire position at the
//     reference price adjusted down by slippage.
//  2. Commission is charged on the executed notional of every fill. An order
//     whose notional plus commission exceeds available cash is rejected in
//     full; there are no partial fills.
//  3. While a position is open, the latest ledger entry accrues the bar-over-
//     bar price move of the position, so each entry's Profit converges to the
//     round-trip PnL of the position it opened or closed.
//
// The first bar only seeds the equity curve; no order is ever placed on it.
type Engine struct {
	config Config
	logger *logger.Logger
}

// NewEngine validates the config and returns a ready-to-run engine.
func NewEngine(config Config, log *logger.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		config: config,
		logger: log,
	}, nil
}

// Run generates signals from the configured strategy and simulates them over
// the series. The series is validated and windowed to the configured start
// and end times first.
func (e *Engine) Run(series types.PriceSeries) (*types.BacktestResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	windowed := series.Slice(e.window())
	if windowed.Len() == 0 {
		return nil, errors.Newf(errors.ErrCodeBacktestNoData,
			"no bars for %s inside the configured time window", series.Symbol)
	}

	signals, err := e.config.Strategy.GenerateSignal(windowed)
	if err != nil {
		return nil, err
	}

	return e.RunWithSignals(windowed, signals)
}

// RunWithSignals simulates a precomputed signal series over the given bars.
// The signals must be aligned 1:1 with the series; NaN entries are treated
// as hold.
func (e *Engine) RunWithSignals(series types.PriceSeries, signals types.SignalSeries) (*types.BacktestResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	if len(signals) != series.Len() {
		return nil, errors.Newf(errors.ErrCodeSignalLengthMismatch,
			"signal series length %d does not match bar count %d", len(signals), series.Len())
	}

	runID := uuid.New().String()
	prices := e.referencePrices(series)

	account := accountState{
		Cash:     e.config.InitialCapital,
		Position: 0,
	}

	result := &types.BacktestResult{
		ID:          runID,
		Symbol:      series.Symbol,
		EquityCurve: make(types.EquityCurve, 0, series.Len()),
		Trades:      []types.Trade{},
	}

	e.logger.Debug("starting backtest run",
		zap.String("run_id", runID),
		zap.String("symbol", series.Symbol),
		zap.String("strategy", string(e.config.Strategy.Kind)),
		zap.Int("bars", series.Len()),
		zap.Float64("initial_capital", e.config.InitialCapital))

	result.EquityCurve = append(result.EquityCurve, types.EquityPoint{
		Date:  series.Bars[0].Date,
		Value: account.Cash,
	})

	for i := 1; i < series.Len(); i++ {
		bar := series.Bars[i]
		price := prices[i]

		if signals.HasValue(i) {
			switch {
			case signals[i] > types.SignalFlat && account.Position == 0:
				e.executeBuy(&account, result, bar.Date, price)
			case signals[i] == types.SignalFlat && account.Position > 0:
				e.executeSell(&account, result, bar.Date, price)
			}
		}

		// Accrue the bar's price move onto the latest ledger entry while a
		// position is open, including the bar the position was opened on.
		if account.Position > 0 && len(result.Trades) > 0 {
			last := &result.Trades[len(result.Trades)-1]
			last.Profit += float64(account.Position) * (price - prices[i-1])
		}

		result.EquityCurve = append(result.EquityCurve, types.EquityPoint{
			Date:  bar.Date,
			Value: account.Cash + float64(account.Position)*price,
		})
	}

	e.logger.Debug("backtest run finished",
		zap.String("run_id", runID),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("final_equity", result.EquityCurve[len(result.EquityCurve)-1].Value))

	return result, nil
}

func (e *Engine) executeBuy(account *accountState, result *types.BacktestResult, date time.Time, price float64) {
	volume := MaxAffordableShares(account.Cash, price, e.config.Slippage, e.config.CommissionRate)
	if volume <= 0 {
		e.logRejection(date, types.TradeSideBuy, 0, types.RejectReasonInsufficientCash)

		return
	}

	execPrice := price * (1 + e.config.Slippage)
	amount := execPrice * float64(volume)
	commission := amount * e.config.CommissionRate

	if amount+commission > account.Cash {
		e.logRejection(date, types.TradeSideBuy, volume, types.RejectReasonInsufficientCash)

		return
	}

	account.Cash -= amount + commission
	account.Position = volume

	trade := types.Trade{
		OrderID:    uuid.New().String(),
		Date:       date,
		Side:       types.TradeSideBuy,
		Price:      execPrice,
		Volume:     volume,
		Amount:     amount,
		Commission: commission,
		Profit:     -commission,
	}
	result.Trades = append(result.Trades, trade)

	e.logger.Debug("order filled",
		zap.String("order_id", trade.OrderID),
		zap.Time("date", date),
		zap.String("side", string(types.TradeSideBuy)),
		zap.Float64("price", execPrice),
		zap.Int64("volume", volume),
		zap.Float64("commission", commission))
}

func (e *Engine) executeSell(account *accountState, result *types.BacktestResult, date time.Time, price float64) {
	if account.Position <= 0 {
		e.logRejection(date, types.TradeSideSell, 0, types.RejectReasonInsufficientShares)

		return
	}

	volume := account.Position
	execPrice := price * (1 - e.config.Slippage)
	amount := execPrice * float64(volume)
	commission := amount * e.config.CommissionRate

	account.Cash += amount - commission
	account.Position = 0

	trade := types.Trade{
		OrderID:    uuid.New().String(),
		Date:       date,
		Side:       types.TradeSideSell,
		Price:      execPrice,
		Volume:     volume,
		Amount:     amount,
		Commission: commission,
		Profit:     -commission,
	}
	result.Trades = append(result.Trades, trade)

	e.logger.Debug("order filled",
		zap.String("order_id", trade.OrderID),
		zap.Time("date", date),
		zap.String("side", string(types.TradeSideSell)),
		zap.Float64("price", execPrice),
		zap.Int64("volume", volume),
		zap.Float64("commission", commission))
}

func (e *Engine) logRejection(date time.Time, side types.TradeSide, volume int64, reason string) {
	e.logger.Debug("order rejected",
		zap.Time("date", date),
		zap.String("side", string(side)),
		zap.Int64("volume", volume),
		zap.String("reason", reason))
}

// referencePrices returns the configured execution price column.
func (e *Engine) referencePrices(series types.PriceSeries) []float64 {
	if e.config.PriceType == PriceTypeOpen {
		return series.Opens()
	}

	return series.Closes()
}

func (e *Engine) window() (time.Time, time.Time) {
	var start, end time.Time

	if e.config.StartTime.IsSome() {
		start = e.config.StartTime.Unwrap()
	}

	if e.config.EndTime.IsSome() {
		end = e.config.EndTime.Unwrap()
	}

	return start, end
}

// RunStrategy is a convenience wrapper that builds a strategy from an
// identifier and parameter bag, then runs it with default engine settings.
func RunStrategy(name string, params map[string]any, series types.PriceSeries, log *logger.Logger) (*types.BacktestResult, error) {
	strat, err := strategy.NewStrategy(name, params)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	config.Strategy = *strat

	engine, err := NewEngine(config, log)
	if err != nil {
		return nil, err
	}

	return engine.Run(series)
}
