package utils

// -----------------------------------------------------------------------------

// Constants shared across the indicator and orchestration layers.
const (
	// DefaultRSIPeriod is the standard 14-period Wilder lookback.
	DefaultRSIPeriod = 14

	// TradingDaysPerYear is used to annualize daily volatility.
	TradingDaysPerYear = 252

	// ClosingPricesKept bounds the closing-price window handed to the RSI
	// calculation (enough for a 14-period RSI with headroom).
	ClosingPricesKept = 30
)

// -----------------------------------------------------------------------------

// Trading-day offsets into the daily series for period returns.
const (
	OffsetOneDay     = 1
	OffsetOneWeek    = 5
	OffsetOneMonth   = 21
	OffsetThreeMonth = 63
	OffsetSixMonth   = 126
)
