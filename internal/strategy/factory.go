package strategy

import (
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// NewStrategy builds a validated Strategy from an identifier and a parameter
// bag. Missing parameters fall back to the variant defaults; an unrecognized
// identifier is a fatal construction error.
func NewStrategy(name string, params map[string]any) (*Strategy, error) {
	strat := &Strategy{
		Kind:      Kind(name),
		MACross:   nil,
		MACD:      nil,
		RSI:       nil,
		Bollinger: nil,
	}

	switch strat.Kind {
	case KindMACross:
		p := DefaultMACrossParams()
		p.FastWindow = intParam(params, "fast_window", p.FastWindow)
		p.SlowWindow = intParam(params, "slow_window", p.SlowWindow)
		strat.MACross = &p
	case KindMACD:
		p := DefaultMACDParams()
		p.FastSpan = intParam(params, "fast_span", p.FastSpan)
		p.SlowSpan = intParam(params, "slow_span", p.SlowSpan)
		p.SignalSpan = intParam(params, "signal_span", p.SignalSpan)
		strat.MACD = &p
	case KindRSI:
		p := DefaultRSIParams()
		p.Window = intParam(params, "window", p.Window)
		p.Oversold = floatParam(params, "oversold", p.Oversold)
		p.Overbought = floatParam(params, "overbought", p.Overbought)
		strat.RSI = &p
	case KindBollinger:
		p := DefaultBollingerParams()
		p.Window = intParam(params, "window", p.Window)
		p.StdMult = floatParam(params, "std_mult", p.StdMult)
		strat.Bollinger = &p
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy type: %s", name)
	}

	if err := strat.Validate(); err != nil {
		return nil, err
	}

	return strat, nil
}

// intParam reads an integer from the bag, tolerating YAML/JSON numeric types.
func intParam(params map[string]any, key string, fallback int) int {
	value, ok := params[key]
	if !ok {
		return fallback
	}

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func floatParam(params map[string]any, key string, fallback float64) float64 {
	value, ok := params[key]
	if !ok {
		return fallback
	}

	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}
