// Package marketdata is the download front door: it pairs a provider with a
// writer and stores one output file per symbol in the configured data
// directory, where the datastore layer picks them up.
package marketdata

import (
	"context"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
	"github.com/helmsman-lab/helmsman-trading/pkg/marketdata/provider"
	"github.com/helmsman-lab/helmsman-trading/pkg/marketdata/writer"
)

// WriterType defines the type of market data writer.
type WriterType string

const (
	WriterDuckDB WriterType = "duckdb"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.Type `validate:"required,oneof=polygon binance"`
	WriterType    WriterType    `validate:"required,oneof=duckdb"`
	DataPath      string        `validate:"required"`
	PolygonAPIKey string        `validate:"required_if=ProviderType polygon"`
}

// DownloadParams holds the parameters for one download request.
type DownloadParams struct {
	Symbol    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
}

// Client downloads daily bars from a provider and stores them through a
// writer, one file per symbol.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
}

// NewClient creates a market data client with the given configuration.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	marketProvider, err := provider.NewProvider(config.ProviderType, config.PolygonAPIKey)
	if err != nil {
		return nil, err
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
	}, nil
}

// Download fetches the daily bars for one symbol and writes them to
// <DataPath>/<symbol>.parquet. Cancel the context to abort the download.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	barWriter, err := c.newWriter(params.Symbol)
	if err != nil {
		return "", err
	}
	defer barWriter.Close()

	c.provider.ConfigWriter(barWriter)

	return c.provider.DownloadDaily(ctx, params.Symbol, params.StartDate, params.EndDate, c.onProgress)
}

func (c *Client) newWriter(symbol string) (writer.BarWriter, error) {
	switch c.config.WriterType {
	case WriterDuckDB:
		outputPath := filepath.Join(c.config.DataPath, symbol+".parquet")

		return writer.NewDuckDBWriter(outputPath), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type: %s", c.config.WriterType)
	}
}
