package interfaces

import (
	"context"

	"rsi-tracker/src/models"
)

// -----------------------------------------------------------------------------
// IGateway defines the contract for the remote price data provider.
// -----------------------------------------------------------------------------

type IGateway interface {

	// -----------------------------------------------------------------------------

	// FetchPriceSeries retrieves one symbol's daily history over the
	// configured lookback window. It never returns an error: transport
	// failures and malformed payloads yield the empty default structure.
	FetchPriceSeries(ctx context.Context, symbol string) models.MPriceData

	// -----------------------------------------------------------------------------

	// FetchBatchSummary retrieves the aggregate summary for all tracked
	// instruments in one call. This call fails loudly; the fallback policy
	// for it belongs to the orchestrator.
	FetchBatchSummary(ctx context.Context) ([]models.MSummaryEntry, error)
}
