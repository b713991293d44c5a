// Package provider implements the market data download clients. Each
// provider fetches daily bars for one symbol and hands them to a configured
// writer; it never touches the backtest engine directly.
package provider

import (
	"context"
	"time"

	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
	"github.com/helmsman-lab/helmsman-trading/pkg/marketdata/writer"
)

// Type identifies a market data provider.
type Type string

const (
	TypePolygon Type = "polygon"
	TypeBinance Type = "binance"
)

// OnDownloadProgress reports download progress to the caller.
type OnDownloadProgress = func(current float64, total float64, message string)

// Provider downloads daily bars for one symbol into a configured writer.
type Provider interface {
	// ConfigWriter sets the destination for downloaded bars. It must be
	// called before DownloadDaily.
	ConfigWriter(w writer.BarWriter)

	// DownloadDaily fetches the daily bars for the symbol in [startDate,
	// endDate] and writes them through the configured writer. It returns
	// the path of the finalized output file.
	DownloadDaily(ctx context.Context, symbol string, startDate, endDate time.Time, onProgress OnDownloadProgress) (path string, err error)
}

// NewProvider creates a provider of the given type. Polygon requires an API
// key; Binance serves public kline data without one.
func NewProvider(providerType Type, apiKey string) (Provider, error) {
	switch providerType {
	case TypePolygon:
		return NewPolygonClient(apiKey)
	case TypeBinance:
		return NewBinanceClient()
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
