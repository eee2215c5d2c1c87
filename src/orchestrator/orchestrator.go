package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"rsi-tracker/src/gateway"
	"rsi-tracker/src/helpers"
	"rsi-tracker/src/interfaces"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/metrics"
	"rsi-tracker/src/models"
	"rsi-tracker/src/utils"
)

// -----------------------------------------------------------------------------

// Orchestrator owns the offline-first policy: decide between cache, network
// and fallback for every request, and stamp each answer with its provenance.
type Orchestrator struct {
	Config  *models.MConfig
	Store   interfaces.ICacheStore
	Gateway interfaces.IGateway
	Network interfaces.INetworkManager
	Logger  *logger.Logger

	// Now is swappable for day-boundary tests.
	Now func() time.Time

	mu       sync.Mutex
	inflight map[string]*inflightCall
}

type inflightCall struct {
	done chan struct{}
	res  *models.MFetchResult
	err  error
}

// -----------------------------------------------------------------------------

func NewOrchestrator(cfg *models.MConfig, store interfaces.ICacheStore, gw interfaces.IGateway, netMgr interfaces.INetworkManager) *Orchestrator {
	return &Orchestrator{
		Config:   cfg,
		Store:    store,
		Gateway:  gw,
		Network:  netMgr,
		Logger:   logger.NewLogger(cfg.LogLevel, "Orchestrator"),
		Now:      time.Now,
		inflight: make(map[string]*inflightCall),
	}
}

// -----------------------------------------------------------------------------
// Request coalescing
// -----------------------------------------------------------------------------

// coalesce collapses concurrent identical requests behind a single in-flight
// call. Late arrivals block until the first caller's result is ready and
// share it, so a burst of refreshes costs one upstream fetch.
func (o *Orchestrator) coalesce(key string, fn func() (*models.MFetchResult, error)) (*models.MFetchResult, error) {
	o.mu.Lock()
	if call, ok := o.inflight[key]; ok {
		o.mu.Unlock()
		<-call.done
		return call.res, call.err
	}

	call := &inflightCall{done: make(chan struct{})}
	o.inflight[key] = call
	o.mu.Unlock()

	res, err := fn()

	o.mu.Lock()
	delete(o.inflight, key)
	o.mu.Unlock()

	call.res, call.err = res, err
	close(call.done)
	return res, err
}

// -----------------------------------------------------------------------------
// Batch flow
// -----------------------------------------------------------------------------

// FetchAssets serves the full record set, same-day cache first. forceRefresh
// skips only the cache-valid short-circuit; offline and failure fallbacks
// still apply.
func (o *Orchestrator) FetchAssets(ctx context.Context, forceRefresh bool) (*models.MFetchResult, error) {
	key := fmt.Sprintf("batch|force=%t", forceRefresh)
	return o.coalesce(key, func() (*models.MFetchResult, error) {
		return o.fetchAssets(ctx, forceRefresh)
	})
}

func (o *Orchestrator) fetchAssets(ctx context.Context, forceRefresh bool) (*models.MFetchResult, error) {
	now := o.Now()

	cached := o.readCachedCollection(ctx)

	if cached != nil && !forceRefresh && utils.SameCalendarDay(time.UnixMilli(cached.timestamp), now) {
		o.Logger.Info("Serving %d records from same-day cache", len(cached.records))
		metrics.CacheHitsTotal.Inc()
		metrics.FetchesTotal.WithLabelValues("batch", "cache_hit").Inc()
		return &models.MFetchResult{
			Records:     cached.records,
			FromCache:   true,
			CacheAge:    utils.HoursSince(cached.timestamp, now),
			LastUpdated: cached.timestamp,
		}, nil
	}

	if !o.Network.IsReachable(ctx) {
		if cached != nil {
			age := utils.HoursSince(cached.timestamp, now)
			o.Logger.Warning("Offline: falling back to cached data (%dh old)", age)
			metrics.CacheFallbacksTotal.Inc()
			metrics.FetchesTotal.WithLabelValues("batch", "offline_fallback").Inc()
			return &models.MFetchResult{
				Records:     cached.records,
				FromCache:   true,
				CacheAge:    age,
				Warning:     fmt.Sprintf("You are offline. Showing cached data from %d hours ago.", age),
				LastUpdated: cached.timestamp,
			}, nil
		}
		metrics.FetchesTotal.WithLabelValues("batch", "no_network_no_cache").Inc()
		return nil, helpers.NewNoNetworkNoCacheError()
	}

	start := o.Now()
	entries, err := o.Gateway.FetchBatchSummary(ctx)
	metrics.FetchDuration.WithLabelValues("batch").Observe(o.Now().Sub(start).Seconds())

	if err != nil {
		if cached != nil {
			age := utils.HoursSince(cached.timestamp, now)
			o.Logger.Warning("Fetch failed (%v): falling back to cached data (%dh old)", err, age)
			metrics.CacheFallbacksTotal.Inc()
			metrics.FetchesTotal.WithLabelValues("batch", "error_fallback").Inc()
			return &models.MFetchResult{
				Records:     cached.records,
				FromCache:   true,
				CacheAge:    age,
				Warning:     fmt.Sprintf("Unable to fetch latest data. Showing cached data from %d hours ago.", age),
				LastUpdated: cached.timestamp,
			}, nil
		}
		metrics.FetchesTotal.WithLabelValues("batch", "error").Inc()
		return nil, err
	}

	records := make([]models.MAssetRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, gateway.NormalizeSummary(entry))
	}

	nowMs := now.UnixMilli()
	o.persistCollection(ctx, records, nowMs)

	metrics.FetchesTotal.WithLabelValues("batch", "success").Inc()
	return &models.MFetchResult{
		Records:     records,
		FromCache:   false,
		LastUpdated: nowMs,
	}, nil
}

// -----------------------------------------------------------------------------
// Cache plumbing
// -----------------------------------------------------------------------------

type cachedCollection struct {
	records   []models.MAssetRecord
	timestamp int64
}

// readCachedCollection treats every failure mode as a miss: a broken cache
// must never block a fetch attempt.
func (o *Orchestrator) readCachedCollection(ctx context.Context) *cachedCollection {
	entry, err := o.Store.Get(ctx, models.AllAssetsKey)
	if err != nil {
		o.Logger.Warning("Cache read failed, treating as miss: %v", err)
		return nil
	}
	if entry == nil {
		return nil
	}

	var records []models.MAssetRecord
	if err := json.Unmarshal([]byte(entry.Data), &records); err != nil {
		o.Logger.Warning("Cache entry corrupt, treating as miss: %v", err)
		return nil
	}
	return &cachedCollection{records: records, timestamp: entry.Timestamp}
}

// persistCollection writes the fresh record set plus the last-fetch marker.
// Write failures are logged and swallowed; the caller still gets fresh data.
func (o *Orchestrator) persistCollection(ctx context.Context, records []models.MAssetRecord, nowMs int64) {
	raw, err := json.Marshal(records)
	if err != nil {
		o.Logger.Warning("Failed to serialize records for cache: %v", err)
		return
	}

	if err := o.Store.Put(ctx, models.MCacheEntry{
		Symbol:    models.AllAssetsKey,
		Timestamp: nowMs,
		Data:      string(raw),
	}); err != nil {
		o.Logger.Warning("Failed to cache records: %v", err)
		return
	}

	if err := o.Store.Put(ctx, models.MCacheEntry{
		Symbol:    models.LastFetchKey,
		Timestamp: nowMs,
		Data:      strconv.FormatInt(nowMs, 10),
	}); err != nil {
		o.Logger.Warning("Failed to record fetch timestamp: %v", err)
	}
}

// -----------------------------------------------------------------------------
// Cache operations
// -----------------------------------------------------------------------------

func (o *Orchestrator) CacheStatus(ctx context.Context) models.MCacheStatus {
	cached := o.readCachedCollection(ctx)
	if cached == nil {
		return models.MCacheStatus{}
	}

	now := o.Now()
	return models.MCacheStatus{
		HasCache:  true,
		IsValid:   utils.SameCalendarDay(time.UnixMilli(cached.timestamp), now),
		LastFetch: cached.timestamp,
		CacheAge:  utils.HoursSince(cached.timestamp, now),
		ItemCount: len(cached.records),
	}
}

// -----------------------------------------------------------------------------

func (o *Orchestrator) ClearCache(ctx context.Context) error {
	if err := o.Store.Clear(ctx); err != nil {
		return err
	}
	o.Logger.Info("Cache cleared")
	return nil
}
