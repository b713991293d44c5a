package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/helmsman-lab/helmsman-trading/internal/types"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

func seriesFromCloses(closes []float64) types.PriceSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
			Amount: c * 1000,
		}
	}

	return types.PriceSeries{Symbol: "TEST", Bars: bars}
}

func (suite *StrategyTestSuite) TestMACrossSignals() {
	strat := Strategy{
		Kind:    KindMACross,
		MACross: &MACrossParams{FastWindow: 1, SlowWindow: 2},
	}

	signals, err := strat.GenerateSignal(seriesFromCloses([]float64{100, 110, 105}))
	suite.NoError(err)
	suite.Len(signals, 3)
	suite.True(math.IsNaN(signals[0]))
	suite.Equal(types.SignalLong, signals[1])
	suite.Equal(types.SignalFlat, signals[2])
}

func (suite *StrategyTestSuite) TestMACDSignalsDefinedFromBarZero() {
	strat := Strategy{
		Kind: KindMACD,
		MACD: &MACDParams{FastSpan: 3, SlowSpan: 6, SignalSpan: 4},
	}

	signals, err := strat.GenerateSignal(seriesFromCloses([]float64{10, 9, 8, 7, 6, 5, 6, 8, 10, 12, 14}))
	suite.NoError(err)

	for _, s := range signals {
		suite.False(math.IsNaN(s))
	}

	// Flat during the downtrend, long once the trend turns.
	suite.Equal(types.SignalFlat, signals[0])
	suite.Equal(types.SignalFlat, signals[3])
	suite.Equal(types.SignalLong, signals[len(signals)-1])
}

func (suite *StrategyTestSuite) TestRSIContinuousBuyOnDecline() {
	strat := Strategy{
		Kind: KindRSI,
		RSI:  &RSIParams{Window: 2, Oversold: 30, Overbought: 70},
	}

	signals, err := strat.GenerateSignal(seriesFromCloses([]float64{100, 99, 98, 97, 96, 95}))
	suite.NoError(err)
	suite.True(math.IsNaN(signals[0]))
	suite.True(math.IsNaN(signals[1]))

	// All gains are zero: RSI saturates at 0 which is below the oversold
	// level, so the signal stays long on every defined bar.
	for i := 2; i < len(signals); i++ {
		suite.Equal(types.SignalLong, signals[i])
	}
}

func (suite *StrategyTestSuite) TestRSIFlatOnRally() {
	strat := Strategy{
		Kind: KindRSI,
		RSI:  &RSIParams{Window: 2, Oversold: 30, Overbought: 70},
	}

	signals, err := strat.GenerateSignal(seriesFromCloses([]float64{100, 101, 102, 103, 104}))
	suite.NoError(err)

	// All losses are zero: RSI saturates at 100 which is above the
	// overbought level.
	for i := 2; i < len(signals); i++ {
		suite.Equal(types.SignalFlat, signals[i])
	}
}

func (suite *StrategyTestSuite) TestBollingerBreakout() {
	strat := Strategy{
		Kind:      KindBollinger,
		Bollinger: &BollingerParams{Window: 2, StdMult: 0.5},
	}

	signals, err := strat.GenerateSignal(seriesFromCloses([]float64{10, 9, 10, 11, 11}))
	suite.NoError(err)
	suite.True(math.IsNaN(signals[0]))
	// Close below the lower band on the drop.
	suite.Equal(types.SignalLong, signals[1])
	// Close above the upper band on the rally.
	suite.Equal(types.SignalFlat, signals[3])
	// Equal closes collapse the bands; neither breakout holds.
	suite.Equal(types.SignalFlat, signals[4])
}

func (suite *StrategyTestSuite) TestValidateRejectsFastNotBelowSlow() {
	strat := Strategy{
		Kind:    KindMACross,
		MACross: &MACrossParams{FastWindow: 20, SlowWindow: 5},
	}

	err := strat.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *StrategyTestSuite) TestValidateRejectsMissingParams() {
	strat := Strategy{Kind: KindRSI}
	err := strat.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *StrategyTestSuite) TestValidateRejectsUnknownKind() {
	strat := Strategy{Kind: Kind("momentum")}
	err := strat.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *StrategyTestSuite) TestShortSeriesIsAllWarmup() {
	strat := Strategy{
		Kind:    KindMACross,
		MACross: &MACrossParams{FastWindow: 5, SlowWindow: 20},
	}

	signals, err := strat.GenerateSignal(seriesFromCloses([]float64{100, 101, 102}))
	suite.NoError(err)
	suite.Len(signals, 3)

	for _, s := range signals {
		suite.True(math.IsNaN(s))
	}
}
