package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/helmsman-lab/helmsman-trading/internal/types"
	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
	"github.com/helmsman-lab/helmsman-trading/pkg/marketdata/writer"
)

// binancePageSize is the maximum number of klines one request returns.
const binancePageSize = 500

type BinanceClient struct {
	client *binance.Client
	writer writer.BarWriter
}

// NewBinanceClient creates a Binance-backed provider. Historical klines are
// public, so no credentials are needed.
func NewBinanceClient() (Provider, error) {
	return &BinanceClient{
		client: binance.NewClient("", ""),
		writer: nil,
	}, nil
}

// ConfigWriter implements Provider.
func (c *BinanceClient) ConfigWriter(w writer.BarWriter) {
	c.writer = w
}

// DownloadDaily implements Provider using Binance daily klines, paginating
// through the date range.
func (c *BinanceClient) DownloadDaily(ctx context.Context, symbol string, startDate, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "no writer configured for BinanceClient, call ConfigWriter first")
	}

	if err = c.writer.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	startMillis := startDate.UnixMilli()
	endMillis := endDate.UnixMilli()
	currentStart := startMillis

	for {
		klines, err := c.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			StartTime(currentStart).
			EndTime(endMillis).
			Limit(binancePageSize).
			Do(ctx)
		if err != nil {
			return "", errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch klines for %s", symbol)
		}

		if err := c.writeKlines(klines); err != nil {
			return "", err
		}

		if onProgress != nil {
			onProgress(float64(currentStart-startMillis), float64(endMillis-startMillis),
				fmt.Sprintf("Downloading %s klines from Binance", symbol))
		}

		if len(klines) < binancePageSize {
			break
		}

		// Resume after the last kline of this page.
		currentStart = klines[len(klines)-1].OpenTime + 1
		if currentStart > endMillis {
			break
		}
	}

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}

func (c *BinanceClient) writeKlines(klines []*binance.Kline) error {
	for _, kline := range klines {
		bar, err := klineToBar(kline)
		if err != nil {
			return err
		}

		if err := c.writer.Write(bar); err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write bar", err)
		}
	}

	return nil
}

// klineToBar converts the string-encoded kline fields to a daily bar. The
// quote asset volume doubles as the turnover amount.
func klineToBar(kline *binance.Kline) (types.Bar, error) {
	fields := map[string]string{
		"open":   kline.Open,
		"high":   kline.High,
		"low":    kline.Low,
		"close":  kline.Close,
		"volume": kline.Volume,
		"amount": kline.QuoteAssetVolume,
	}

	parsed := make(map[string]float64, len(fields))

	for name, raw := range fields {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Bar{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to parse kline %s %q", name, raw)
		}

		parsed[name] = value
	}

	return types.Bar{
		Date:   time.UnixMilli(kline.OpenTime).UTC(),
		Open:   parsed["open"],
		High:   parsed["high"],
		Low:    parsed["low"],
		Close:  parsed["close"],
		Volume: parsed["volume"],
		Amount: parsed["amount"],
	}, nil
}
