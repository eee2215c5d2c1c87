package models

// -----------------------------------------------------------------------------
// Request status values (mirrors the UI contract)
// -----------------------------------------------------------------------------

const (
	StatusIdle      = "idle"
	StatusLoading   = "loading"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// -----------------------------------------------------------------------------
// MFetchResult - records plus provenance metadata
// -----------------------------------------------------------------------------

type MFetchResult struct {
	Records   []MAssetRecord `json:"records"`
	FromCache bool           `json:"from_cache"`
	CacheAge  int            `json:"cache_age"` // hours since last fetch, rounded
	Warning   string         `json:"warning,omitempty"`
	LastUpdated int64        `json:"last_updated"` // unix milliseconds
}

// -----------------------------------------------------------------------------
// MCacheStatus - answer for the cache status operation
// -----------------------------------------------------------------------------

type MCacheStatus struct {
	HasCache  bool  `json:"has_cache"`
	IsValid   bool  `json:"is_valid"`
	LastFetch int64 `json:"last_fetch,omitempty"` // unix milliseconds
	CacheAge  int   `json:"cache_age,omitempty"`  // hours, rounded
	ItemCount int   `json:"item_count,omitempty"`
}
