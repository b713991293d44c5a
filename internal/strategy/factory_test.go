package strategy

import (
	"testing"

	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type FactoryTestSuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func (suite *FactoryTestSuite) TestDefaults() {
	strat, err := NewStrategy("ma_cross", nil)
	suite.NoError(err)
	suite.Equal(KindMACross, strat.Kind)
	suite.Equal(5, strat.MACross.FastWindow)
	suite.Equal(20, strat.MACross.SlowWindow)
}

func (suite *FactoryTestSuite) TestParameterOverrides() {
	strat, err := NewStrategy("rsi", map[string]any{
		"window":     7,
		"oversold":   20.0,
		"overbought": 80,
	})
	suite.NoError(err)
	suite.Equal(7, strat.RSI.Window)
	suite.InDelta(20, strat.RSI.Oversold, 1e-12)
	suite.InDelta(80, strat.RSI.Overbought, 1e-12)
}

func (suite *FactoryTestSuite) TestYAMLNumericTypes() {
	// YAML decoding hands over float64 for numbers written as 10.0
	strat, err := NewStrategy("macd", map[string]any{
		"fast_span": 10.0,
		"slow_span": int64(30),
	})
	suite.NoError(err)
	suite.Equal(10, strat.MACD.FastSpan)
	suite.Equal(30, strat.MACD.SlowSpan)
	suite.Equal(9, strat.MACD.SignalSpan)
}

func (suite *FactoryTestSuite) TestUnsupportedStrategy() {
	strat, err := NewStrategy("turtle", nil)
	suite.Nil(strat)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *FactoryTestSuite) TestInvalidOverrideFailsValidation() {
	strat, err := NewStrategy("ma_cross", map[string]any{
		"fast_window": 50,
	})
	suite.Nil(strat)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *FactoryTestSuite) TestBollingerDefaults() {
	strat, err := NewStrategy("bollinger", map[string]any{"std_mult": 1.5})
	suite.NoError(err)
	suite.Equal(20, strat.Bollinger.Window)
	suite.InDelta(1.5, strat.Bollinger.StdMult, 1e-12)
}
