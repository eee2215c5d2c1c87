package models

// -----------------------------------------------------------------------------
// Reserved cache keys (batch flow)
// -----------------------------------------------------------------------------

const (
	// LastFetchKey stores the timestamp of the last successful batch fetch.
	LastFetchKey = "last_fetch_timestamp"

	// AllAssetsKey stores the serialized full record collection.
	AllAssetsKey = "all_assets_data"
)

// -----------------------------------------------------------------------------
// MCacheEntry - one row of the persistent key-value store
// -----------------------------------------------------------------------------

type MCacheEntry struct {
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds of the fetch
	Data      string `json:"data"`      // serialized MAssetRecord or collection
}
