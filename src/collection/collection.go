package collection

import (
	"errors"
	"sync"

	"rsi-tracker/src/logger"
	"rsi-tracker/src/metrics"
	"rsi-tracker/src/models"
	"rsi-tracker/src/utils"
)

// -----------------------------------------------------------------------------

var (
	ErrAlreadyTracked = errors.New("symbol already tracked")
	ErrNotTracked     = errors.New("symbol not tracked")
	ErrEmptySymbol    = errors.New("symbol is empty")
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// -----------------------------------------------------------------------------

// Container is the single in-memory source of truth for the UI: the tracked
// symbol list in insertion order, the current record set, the persisted sort
// spec, and the request lifecycle status.
type Container struct {
	Logger *logger.Logger

	mu       sync.RWMutex
	tracked  []string
	records  []models.MAssetRecord
	sortSpec models.MSortSpec
	status   string
	lastErr  string

	fromCache   bool
	cacheAge    int
	warning     string
	lastUpdated int64
}

// -----------------------------------------------------------------------------

func NewContainer(log *logger.Logger, symbols []string) *Container {
	c := &Container{
		Logger: log,
		status: models.StatusIdle,
	}
	for _, s := range symbols {
		if _, err := c.AddSymbol(s); err != nil && !errors.Is(err, ErrAlreadyTracked) {
			log.Warning("Skipping invalid symbol %q: %v", s, err)
		}
	}
	return c
}

// -----------------------------------------------------------------------------
// Symbol management
// -----------------------------------------------------------------------------

// AddSymbol normalizes and appends a symbol. Returns the normalized form so
// callers can address the symbol the way the container does.
func (c *Container) AddSymbol(raw string) (string, error) {
	symbol := utils.NormalizeSymbol(raw)
	if symbol == "" {
		return "", ErrEmptySymbol
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.tracked {
		if s == symbol {
			return symbol, ErrAlreadyTracked
		}
	}

	c.tracked = append(c.tracked, symbol)
	// A placeholder record keeps one record per tracked symbol at all times.
	c.records = append(c.records, models.NewEmptyAssetRecord(symbol))
	metrics.TrackedSymbols.Set(float64(len(c.tracked)))

	c.Logger.Info("Tracking %s (%d symbols)", symbol, len(c.tracked))
	return symbol, nil
}

// -----------------------------------------------------------------------------

// RemoveSymbol drops a symbol from the tracked list and the record set in
// one step, so no reader ever sees one without the other.
func (c *Container) RemoveSymbol(raw string) error {
	symbol := utils.NormalizeSymbol(raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, s := range c.tracked {
		if s == symbol {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotTracked
	}

	c.tracked = append(c.tracked[:idx], c.tracked[idx+1:]...)

	for i, r := range c.records {
		if r.Ticker == symbol {
			c.records = append(c.records[:i], c.records[i+1:]...)
			break
		}
	}
	metrics.TrackedSymbols.Set(float64(len(c.tracked)))

	c.Logger.Info("Stopped tracking %s (%d symbols)", symbol, len(c.tracked))
	return nil
}

// -----------------------------------------------------------------------------

func (c *Container) Symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string{}, c.tracked...)
}

// -----------------------------------------------------------------------------
// Record set
// -----------------------------------------------------------------------------

// SetRecords installs a fetch result: records are re-sequenced to tracked
// order (missing symbols get the empty record, untracked ones are dropped),
// then the persisted sort spec is re-applied.
func (c *Container) SetRecords(result *models.MFetchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byTicker := make(map[string]models.MAssetRecord, len(result.Records))
	for _, r := range result.Records {
		byTicker[r.Ticker] = r
	}

	records := make([]models.MAssetRecord, 0, len(c.tracked))
	for _, sym := range c.tracked {
		if r, ok := byTicker[sym]; ok {
			records = append(records, r)
		} else {
			records = append(records, models.NewEmptyAssetRecord(sym))
		}
	}

	c.records = records
	c.applySortLocked()

	c.status = models.StatusSucceeded
	c.lastErr = ""
	c.fromCache = result.FromCache
	c.cacheAge = result.CacheAge
	c.warning = result.Warning
	c.lastUpdated = result.LastUpdated
}

// -----------------------------------------------------------------------------

// UpdateRecord replaces a single symbol's record in place, keeping the rest
// of the set untouched. Used when one symbol is added or refreshed alone.
func (c *Container) UpdateRecord(rec models.MAssetRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.records {
		if c.records[i].Ticker == rec.Ticker {
			c.records[i] = rec
			c.applySortLocked()
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Status lifecycle
// -----------------------------------------------------------------------------

func (c *Container) SetLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = models.StatusLoading
}

func (c *Container) SetFailed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = models.StatusFailed
	if err != nil {
		c.lastErr = err.Error()
	}
}

func (c *Container) Status() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status, c.lastErr
}

// -----------------------------------------------------------------------------
// Snapshot
// -----------------------------------------------------------------------------

// Snapshot returns a consistent copy of the full UI state.
func (c *Container) Snapshot() models.MLatestData {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return models.MLatestData{
		Records:     append([]models.MAssetRecord{}, c.records...),
		Status:      c.status,
		Error:       c.lastErr,
		FromCache:   c.fromCache,
		CacheAge:    c.cacheAge,
		Warning:     c.warning,
		SortSpec:    c.sortSpec,
		LastUpdated: c.lastUpdated,
	}
}
