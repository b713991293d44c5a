package backtest

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v2"

	"github.com/helmsman-lab/helmsman-trading/internal/strategy"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
)

// PriceType selects which bar field is the execution reference price.
type PriceType string

const (
	PriceTypeClose PriceType = "close"
	PriceTypeOpen  PriceType = "open"
)

// AllPriceTypes lists the supported execution price references.
var AllPriceTypes = []any{
	PriceTypeClose,
	PriceTypeOpen,
}

// SizingMode is the configured position-sizing mode. The engine currently
// accepts it but always sizes to the maximum affordable share count; the
// field is carried so configs round-trip unchanged.
type SizingMode string

const (
	SizingModeFixedLot        SizingMode = "fixed_lot"
	SizingModeFixedCash       SizingMode = "fixed_cash"
	SizingModeFixedPercentage SizingMode = "fixed_percentage"
)

// AllSizingModes lists the accepted position-sizing modes.
var AllSizingModes = []any{
	SizingModeFixedLot,
	SizingModeFixedCash,
	SizingModeFixedPercentage,
}

// Config holds every option recognized by the execution engine.
type Config struct {
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" validate:"required,gt=0" jsonschema:"title=Initial Capital,description=Starting cash for the backtest,minimum=0"`
	CommissionRate float64                    `yaml:"commission_rate" json:"commission_rate" validate:"gte=0,lt=1" jsonschema:"title=Commission Rate,description=Per-trade fee fraction"`
	Slippage       float64                    `yaml:"slippage" json:"slippage" validate:"gte=0,lt=1" jsonschema:"title=Slippage,description=Per-trade price impact fraction"`
	PriceType      PriceType                  `yaml:"price_type" json:"price_type" validate:"required,oneof=close open" jsonschema:"title=Price Type,description=Which bar field is the execution reference"`
	SizingMode     SizingMode                 `yaml:"sizing_mode" json:"sizing_mode" validate:"omitempty,oneof=fixed_lot fixed_cash fixed_percentage" jsonschema:"title=Sizing Mode,description=Accepted but currently inert position sizing mode"`
	Strategy       strategy.Strategy          `yaml:"strategy" json:"strategy"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start of the backtest window"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end of the backtest window"`
}

// DefaultConfig returns a config with the conventional cost assumptions for
// a daily single-stock backtest and a moving-average cross strategy with its
// stock parameters.
func DefaultConfig() Config {
	maCross := strategy.DefaultMACrossParams()

	return Config{
		InitialCapital: 1000000,
		CommissionRate: 0.0003,
		Slippage:       0.002,
		PriceType:      PriceTypeClose,
		SizingMode:     "",
		Strategy: strategy.Strategy{
			Kind:      strategy.KindMACross,
			MACross:   &maCross,
			MACD:      nil,
			RSI:       nil,
			Bollinger: nil,
		},
		StartTime: optional.None[time.Time](),
		EndTime:   optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling for Config
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type rawConfig struct {
		InitialCapital float64           `yaml:"initial_capital"`
		CommissionRate float64           `yaml:"commission_rate"`
		Slippage       float64           `yaml:"slippage"`
		PriceType      PriceType         `yaml:"price_type"`
		SizingMode     SizingMode        `yaml:"sizing_mode"`
		Strategy       strategy.Strategy `yaml:"strategy"`
		StartTime      *time.Time        `yaml:"start_time"`
		EndTime        *time.Time        `yaml:"end_time"`
	}

	// Seed from the current values so a partial document keeps defaults.
	raw := rawConfig{
		InitialCapital: c.InitialCapital,
		CommissionRate: c.CommissionRate,
		Slippage:       c.Slippage,
		PriceType:      c.PriceType,
		SizingMode:     c.SizingMode,
		Strategy:       c.Strategy,
		StartTime:      nil,
		EndTime:        nil,
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	c.InitialCapital = raw.InitialCapital
	c.CommissionRate = raw.CommissionRate
	c.Slippage = raw.Slippage
	c.PriceType = raw.PriceType
	c.SizingMode = raw.SizingMode
	c.Strategy = raw.Strategy
	c.StartTime = optional.None[time.Time]()
	c.EndTime = optional.None[time.Time]()

	if raw.StartTime != nil {
		c.StartTime = optional.Some(*raw.StartTime)
	}

	if raw.EndTime != nil {
		c.EndTime = optional.Some(*raw.EndTime)
	}

	return nil
}

// ParseConfig parses a YAML config document and validates it.
func ParseConfig(content string) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the engine options and the embedded strategy.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	return c.Strategy.Validate()
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.HasSuffix(t.String(), "backtest.PriceType") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: AllPriceTypes,
				}
			}

			if strings.HasSuffix(t.String(), "backtest.SizingMode") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: AllSizingModes,
				}
			}

			if strings.HasSuffix(t.String(), "strategy.Kind") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: strategy.AllKinds,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-config"
	schema.Description = "Configuration schema for the backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
