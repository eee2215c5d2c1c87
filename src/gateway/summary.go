package gateway

import (
	"context"
	"encoding/json"

	"rsi-tracker/src/helpers"
	"rsi-tracker/src/models"
)

// -----------------------------------------------------------------------------

// FetchBatchSummary pulls the precomputed all-symbols summary in one call.
// Unlike the chart path this one fails loudly: the batch flow decides whether
// cached data can cover for it.
func (g *YahooGateway) FetchBatchSummary(ctx context.Context) ([]models.MSummaryEntry, error) {
	respBytes, err := g.Network.Get(ctx, g.Config.Provider.SummaryURL, nil)
	if err != nil {
		return nil, &helpers.SummaryFetchError{TrackerError: helpers.TrackerError{
			Message: "summary request failed",
			Cause:   err,
		}}
	}

	var entries []models.MSummaryEntry
	if err := json.Unmarshal(respBytes, &entries); err != nil {
		return nil, &helpers.SummaryFetchError{TrackerError: helpers.TrackerError{
			Message: "summary payload is not valid JSON",
			Cause:   err,
		}}
	}

	g.Logger.Info("Fetched batch summary: %d symbols", len(entries))
	return entries, nil
}
