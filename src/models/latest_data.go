package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

type MLatestData struct {
	Type        string         `json:"type"` // "INITIAL" or "UPDATE"
	Records     []MAssetRecord `json:"records"`
	Status      string         `json:"status"`
	Error       string         `json:"error,omitempty"`
	FromCache   bool           `json:"from_cache"`
	CacheAge    int            `json:"cache_age"`
	Warning     string         `json:"warning,omitempty"`
	SortSpec    MSortSpec      `json:"sort_spec"`
	LastUpdated int64          `json:"last_updated"`
	Timestamp   int64          `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// MSubscribeCommand for websocket client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Symbols []string `json:"symbols"`
}
