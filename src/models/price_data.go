package models

// -----------------------------------------------------------------------------
// MPriceData - normalized output of the chart gateway (per-symbol flow)
// -----------------------------------------------------------------------------

// MPriceData is always well-shaped: on any provider failure the gateway
// returns the zero-value form (empty slices, nil pointers) instead of an
// error, so callers never re-check for missing nested fields.
type MPriceData struct {
	Symbol string

	// ClosingPrices holds the last 30 valid closes, enough for a 14-period
	// RSI. AllPrices holds the full valid series for volatility and ranges.
	// Timestamps aligns with AllPrices when the provider sent a usable
	// timestamp array; otherwise it stays empty.
	ClosingPrices []float64
	AllPrices     []float64
	Timestamps    []int64

	CurrentPrice     *float64
	OneDayReturn     *float64
	OneWeekReturn    *float64
	OneMonthReturn   *float64
	ThreeMonthReturn *float64
	SixMonthReturn   *float64
	FiftyTwoWeekHigh *float64
}

// -----------------------------------------------------------------------------

// NewEmptyPriceData returns the all-null default used for failed fetches.
func NewEmptyPriceData(symbol string) MPriceData {
	return MPriceData{
		Symbol:        symbol,
		ClosingPrices: []float64{},
		AllPrices:     []float64{},
	}
}
