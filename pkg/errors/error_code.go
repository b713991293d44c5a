package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidWindow        ErrorCode = 102
	ErrCodeInvalidThreshold     ErrorCode = 103
	ErrCodeInvalidMultiplier    ErrorCode = 104
	ErrCodeInvalidPriceType     ErrorCode = 105
	ErrCodeInsufficientData     ErrorCode = 106

	// Input data errors (200-299)
	ErrCodeSeriesEmpty          ErrorCode = 200
	ErrCodeSeriesUnsorted       ErrorCode = 201
	ErrCodeSeriesDuplicateDate  ErrorCode = 202
	ErrCodeSeriesMalformed      ErrorCode = 203
	ErrCodeSymbolNotFound       ErrorCode = 204
	ErrCodeDataStoreUnavailable ErrorCode = 205
	ErrCodeQueryFailed          ErrorCode = 206

	// Strategy errors (300-399)
	ErrCodeUnsupportedStrategy  ErrorCode = 300
	ErrCodeStrategyConfigError  ErrorCode = 301
	ErrCodeSignalLengthMismatch ErrorCode = 302

	// Backtest errors (400-499)
	ErrCodeBacktestConfigError ErrorCode = 400
	ErrCodeBacktestNoData      ErrorCode = 401

	// Market data errors (500-599)
	ErrCodeMarketDataFetchFailed ErrorCode = 500
	ErrCodeMarketDataWriteFailed ErrorCode = 501
	ErrCodeMarketDataParseFailed ErrorCode = 502
	ErrCodeInvalidProvider       ErrorCode = 503
)
