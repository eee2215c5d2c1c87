package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"rsi-tracker/src/helpers"
	"rsi-tracker/src/indicators"
	"rsi-tracker/src/metrics"
	"rsi-tracker/src/models"
	"rsi-tracker/src/utils"
)

// -----------------------------------------------------------------------------
// Per-symbol flow
// -----------------------------------------------------------------------------

// FetchSymbols resolves each symbol independently: same-day cache entry
// first, then a chart fetch. Failures are isolated to their symbol (an empty
// record keeps the cardinality), and the output order matches the input.
func (o *Orchestrator) FetchSymbols(ctx context.Context, symbols []string, forceRefresh bool) (*models.MFetchResult, error) {
	sorted := append([]string{}, symbols...)
	sort.Strings(sorted)
	key := fmt.Sprintf("symbols|force=%t|%s", forceRefresh, strings.Join(sorted, ","))

	return o.coalesce(key, func() (*models.MFetchResult, error) {
		return o.fetchSymbols(ctx, symbols, forceRefresh)
	})
}

func (o *Orchestrator) fetchSymbols(ctx context.Context, symbols []string, forceRefresh bool) (*models.MFetchResult, error) {
	now := o.Now()

	if len(symbols) == 0 {
		return &models.MFetchResult{Records: []models.MAssetRecord{}, LastUpdated: now.UnixMilli()}, nil
	}

	if !o.Network.IsReachable(ctx) {
		return o.symbolsFromCache(ctx, symbols, now)
	}

	start := o.Now()
	results := make(map[string]models.MAssetRecord, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, o.concurrency())

	for _, symbol := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rec := o.resolveSymbol(ctx, sym, now, forceRefresh)

			mu.Lock()
			results[sym] = rec
			mu.Unlock()
		}(symbol)
	}

	wg.Wait()
	metrics.FetchDuration.WithLabelValues("symbols").Observe(o.Now().Sub(start).Seconds())
	metrics.FetchesTotal.WithLabelValues("symbols", "success").Inc()

	// Fan-in re-sequenced to the caller's order.
	records := make([]models.MAssetRecord, 0, len(symbols))
	for _, sym := range symbols {
		records = append(records, results[sym])
	}

	return &models.MFetchResult{
		Records:     records,
		FromCache:   false,
		LastUpdated: now.UnixMilli(),
	}, nil
}

// -----------------------------------------------------------------------------

func (o *Orchestrator) concurrency() int {
	n := o.Config.Network.ConcurrentRequests
	if n <= 0 {
		n = 4
	}
	return n
}

// -----------------------------------------------------------------------------

// resolveSymbol answers one symbol: same-day cache unless forced, then a
// fetch, then stale cache, then the empty record.
func (o *Orchestrator) resolveSymbol(ctx context.Context, symbol string, now time.Time, forceRefresh bool) models.MAssetRecord {
	cached := o.readCachedRecord(ctx, symbol)

	if cached != nil && !forceRefresh && utils.SameCalendarDay(time.UnixMilli(cached.timestamp), now) {
		metrics.CacheHitsTotal.Inc()
		return cached.record
	}

	data := o.Gateway.FetchPriceSeries(ctx, symbol)
	rec := o.buildRecord(data, now)

	if rec.RawCurrentPrice != nil {
		o.persistRecord(ctx, symbol, rec, now.UnixMilli())
		return rec
	}

	// Fetch came back empty: a stale cached record beats an empty one.
	if cached != nil {
		metrics.CacheFallbacksTotal.Inc()
		return cached.record
	}
	return rec
}

// -----------------------------------------------------------------------------

// symbolsFromCache is the offline path: serve whatever is cached at any age.
// With nothing cached at all there is nothing to show, which is the one hard
// failure of the flow.
func (o *Orchestrator) symbolsFromCache(ctx context.Context, symbols []string, now time.Time) (*models.MFetchResult, error) {
	records := make([]models.MAssetRecord, 0, len(symbols))
	var oldest int64
	hits := 0

	for _, sym := range symbols {
		cached := o.readCachedRecord(ctx, sym)
		if cached == nil {
			records = append(records, models.NewEmptyAssetRecord(sym))
			continue
		}
		records = append(records, cached.record)
		hits++
		if oldest == 0 || cached.timestamp < oldest {
			oldest = cached.timestamp
		}
	}

	if hits == 0 {
		metrics.FetchesTotal.WithLabelValues("symbols", "no_network_no_cache").Inc()
		return nil, helpers.NewNoNetworkNoCacheError()
	}

	age := utils.HoursSince(oldest, now)
	metrics.CacheFallbacksTotal.Inc()
	metrics.FetchesTotal.WithLabelValues("symbols", "offline_fallback").Inc()
	o.Logger.Warning("Offline: served %d/%d symbols from cache", hits, len(symbols))

	return &models.MFetchResult{
		Records:     records,
		FromCache:   true,
		CacheAge:    age,
		Warning:     fmt.Sprintf("You are offline. Showing cached data from %d hours ago.", age),
		LastUpdated: oldest,
	}, nil
}

// -----------------------------------------------------------------------------
// Per-symbol cache plumbing
// -----------------------------------------------------------------------------

type cachedRecord struct {
	record    models.MAssetRecord
	timestamp int64
}

func (o *Orchestrator) readCachedRecord(ctx context.Context, symbol string) *cachedRecord {
	entry, err := o.Store.Get(ctx, symbol)
	if err != nil {
		o.Logger.Warning("Cache read failed for %s, treating as miss: %v", symbol, err)
		return nil
	}
	if entry == nil {
		return nil
	}

	var rec models.MAssetRecord
	if err := json.Unmarshal([]byte(entry.Data), &rec); err != nil {
		o.Logger.Warning("Cache entry corrupt for %s, treating as miss: %v", symbol, err)
		return nil
	}
	return &cachedRecord{record: rec, timestamp: entry.Timestamp}
}

func (o *Orchestrator) persistRecord(ctx context.Context, symbol string, rec models.MAssetRecord, nowMs int64) {
	raw, err := json.Marshal(rec)
	if err != nil {
		o.Logger.Warning("Failed to serialize record for %s: %v", symbol, err)
		return
	}
	if err := o.Store.Put(ctx, models.MCacheEntry{Symbol: symbol, Timestamp: nowMs, Data: string(raw)}); err != nil {
		o.Logger.Warning("Failed to cache record for %s: %v", symbol, err)
	}
}

// -----------------------------------------------------------------------------
// Record assembly
// -----------------------------------------------------------------------------

// buildRecord derives the display record from a chart series. An all-null
// series yields the explicit empty record.
func (o *Orchestrator) buildRecord(data models.MPriceData, now time.Time) models.MAssetRecord {
	rec := models.NewEmptyAssetRecord(data.Symbol)
	if data.CurrentPrice == nil {
		return rec
	}

	rec.RecordDate = now.Format("2006-01-02")
	rec.CurrentPrice = fmt.Sprintf("%.2f", *data.CurrentPrice)
	rec.RawCurrentPrice = data.CurrentPrice

	if rsi := indicators.LatestRSI(data.ClosingPrices, utils.DefaultRSIPeriod); rsi != nil {
		rec.RSI = fmt.Sprintf("%.2f", *rsi)
		rec.RawRSI = rsi
	}

	// Weekly and monthly RSI need dated closes to downsample. A one-year
	// series carries ~52 weekly closes, enough for the weekly figure; the
	// monthly one usually stays N/A until more history is available.
	if len(data.Timestamps) == len(data.AllPrices) {
		if rsi := indicators.LatestRSI(indicators.WeeklyCloses(data.Timestamps, data.AllPrices), utils.DefaultRSIPeriod); rsi != nil {
			rec.WeeklyRSI = fmt.Sprintf("%.2f", *rsi)
			rec.RawWeeklyRSI = rsi
		}
		if rsi := indicators.LatestRSI(indicators.MonthlyCloses(data.Timestamps, data.AllPrices), utils.DefaultRSIPeriod); rsi != nil {
			rec.MonthlyRSI = fmt.Sprintf("%.2f", *rsi)
			rec.RawMonthlyRSI = rsi
		}
	}

	rec.Volatility, rec.RawVolatility = indicators.CalculateVolatility(data.AllPrices)

	rec.OneDayReturn, rec.RawOneDayReturn = formatReturn(data.OneDayReturn)
	rec.OneWeekReturn, rec.RawOneWeekReturn = formatReturn(data.OneWeekReturn)
	rec.OneMonthReturn, rec.RawOneMonthReturn = formatReturn(data.OneMonthReturn)
	rec.ThreeMonthReturn, rec.RawThreeMonthReturn = formatReturn(data.ThreeMonthReturn)
	rec.SixMonthReturn, rec.RawSixMonthReturn = formatReturn(data.SixMonthReturn)

	rec.FiftyTwoWeekHigh = data.FiftyTwoWeekHigh
	rec.Discount, rec.RawDiscount = indicators.CalculateDiscount(data.CurrentPrice, data.FiftyTwoWeekHigh)

	if len(data.Timestamps) == len(data.AllPrices) {
		for i, p := range data.AllPrices {
			rec.AllPrices = append(rec.AllPrices, models.MPricePoint{
				Date:  time.Unix(data.Timestamps[i], 0).UTC().Format("2006-01-02"),
				Price: p,
			})
		}
	}

	return rec
}

// -----------------------------------------------------------------------------

// formatReturn renders a percentage return with an explicit sign.
func formatReturn(v *float64) (string, *float64) {
	if v == nil {
		return models.ValueNA, nil
	}
	return fmt.Sprintf("%+.2f%%", *v), v
}
