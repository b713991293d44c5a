// Package strategy maps strategy kinds and parameters to per-bar target
// exposure series. Generators are pure: they read only the price history up
// to each bar and never touch account state.
package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/helmsman-lab/helmsman-trading/internal/types"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// Kind identifies a signal generator variant.
type Kind string

const (
	KindMACross   Kind = "ma_cross"
	KindMACD      Kind = "macd"
	KindRSI       Kind = "rsi"
	KindBollinger Kind = "bollinger"
)

// AllKinds lists the supported strategy kinds.
var AllKinds = []any{
	KindMACross,
	KindMACD,
	KindRSI,
	KindBollinger,
}

// Strategy is a tagged union of the supported signal generator variants.
// Exactly one of the parameter fields matching Kind must be set.
type Strategy struct {
	Kind      Kind             `yaml:"kind" json:"kind"`
	MACross   *MACrossParams   `yaml:"ma_cross,omitempty" json:"ma_cross,omitempty"`
	MACD      *MACDParams      `yaml:"macd,omitempty" json:"macd,omitempty"`
	RSI       *RSIParams       `yaml:"rsi,omitempty" json:"rsi,omitempty"`
	Bollinger *BollingerParams `yaml:"bollinger,omitempty" json:"bollinger,omitempty"`
}

// Validate checks that the kind is recognized and its parameter struct is
// present and valid.
func (s *Strategy) Validate() error {
	validate := validator.New()

	switch s.Kind {
	case KindMACross:
		if s.MACross == nil {
			return errors.New(errors.ErrCodeStrategyConfigError, "ma_cross parameters missing")
		}

		if err := validate.Struct(s.MACross); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid ma_cross parameters", err)
		}
	case KindMACD:
		if s.MACD == nil {
			return errors.New(errors.ErrCodeStrategyConfigError, "macd parameters missing")
		}

		if err := validate.Struct(s.MACD); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid macd parameters", err)
		}
	case KindRSI:
		if s.RSI == nil {
			return errors.New(errors.ErrCodeStrategyConfigError, "rsi parameters missing")
		}

		if err := validate.Struct(s.RSI); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid rsi parameters", err)
		}
	case KindBollinger:
		if s.Bollinger == nil {
			return errors.New(errors.ErrCodeStrategyConfigError, "bollinger parameters missing")
		}

		if err := validate.Struct(s.Bollinger); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid bollinger parameters", err)
		}
	default:
		return errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy kind: %s", s.Kind)
	}

	return nil
}

// GenerateSignal produces the target exposure series for the given price
// series, one entry per bar. Warmup bars carry NaN; the execution engine
// treats those as "no signal yet, hold".
func (s *Strategy) GenerateSignal(series types.PriceSeries) (types.SignalSeries, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()

	switch s.Kind {
	case KindMACross:
		return generateMACross(closes, *s.MACross), nil
	case KindMACD:
		return generateMACD(closes, *s.MACD), nil
	case KindRSI:
		return generateRSI(closes, *s.RSI), nil
	case KindBollinger:
		return generateBollinger(closes, *s.Bollinger), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy kind: %s", s.Kind)
	}
}
