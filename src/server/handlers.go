package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rsi-tracker/src/collection"
	"rsi-tracker/src/helpers"
	"rsi-tracker/src/models"
	"rsi-tracker/src/utils"
)

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *FastAPIServer) getAssets(c *gin.Context) {
	force := c.Query("force") == "true"

	snap, err := s.Refresh(c.Request.Context(), force)
	if err != nil {
		s.respondFetchError(c, snap, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) refreshAssets(c *gin.Context) {
	snap, err := s.Refresh(c.Request.Context(), true)
	if err != nil {
		s.respondFetchError(c, snap, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// -----------------------------------------------------------------------------

// respondFetchError maps orchestrator failures: hard offline is 503, the
// rest bubble up as 502. The body still carries the collection state so the
// UI can render the failed status.
func (s *FastAPIServer) respondFetchError(c *gin.Context, snap models.MLatestData, err error) {
	status := http.StatusBadGateway
	if helpers.IsNoNetworkNoCache(err) {
		status = http.StatusServiceUnavailable
	}
	snap.Error = err.Error()
	c.JSON(status, snap)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getAssetDetail(c *gin.Context) {
	symbol := utils.NormalizeSymbol(c.Param("symbol"))
	force := c.Query("force") == "true"

	res, err := s.Orchestrator.FetchSymbols(c.Request.Context(), []string{symbol}, force)
	if err != nil {
		status := http.StatusBadGateway
		if helpers.IsNoNetworkNoCache(err) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":     res.Records[0],
		"from_cache": res.FromCache,
		"cache_age":  res.CacheAge,
		"warning":    res.Warning,
	})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) addAsset(c *gin.Context) {
	var body struct {
		Symbol string `json:"symbol"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"symbol\": \"...\"}"})
		return
	}

	symbol, err := s.Collection.AddSymbol(body.Symbol)
	if errors.Is(err, collection.ErrAlreadyTracked) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "symbol": symbol})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Fill the new row right away; a fetch failure still leaves the symbol
	// tracked with its empty record.
	if res, ferr := s.Orchestrator.FetchSymbols(c.Request.Context(), []string{symbol}, false); ferr == nil && len(res.Records) == 1 {
		s.Collection.UpdateRecord(res.Records[0])
	}

	snap := s.Collection.Snapshot()
	s.Broadcast(&snap)
	c.JSON(http.StatusCreated, gin.H{"symbol": symbol, "tracked": s.Collection.Symbols()})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) removeAsset(c *gin.Context) {
	symbol := c.Param("symbol")

	if err := s.Collection.RemoveSymbol(symbol); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	snap := s.Collection.Snapshot()
	s.Broadcast(&snap)
	c.JSON(http.StatusOK, gin.H{"tracked": s.Collection.Symbols()})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) sortAssets(c *gin.Context) {
	var body models.MSortSpec
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"key\": \"...\", \"direction\": \"asc|desc\"}"})
		return
	}

	if err := s.Collection.Sort(body.Key, body.Direction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := s.Collection.Snapshot()
	s.Broadcast(&snap)
	c.JSON(http.StatusOK, snap)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getCacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.Orchestrator.CacheStatus(c.Request.Context()))
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) clearCache(c *gin.Context) {
	if err := s.Orchestrator.ClearCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getHealth(c *gin.Context) {
	connections := s.clientCount.Load()

	s.stateMutex.RLock()
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	status, lastErr := s.Collection.Status()

	marketOpen := false
	if symbols := s.Collection.Symbols(); len(symbols) > 0 {
		marketOpen = utils.GetCalendar(symbols[0]).IsOpenAt(time.Now())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"fetch_status":  status,
		"last_error":    lastErr,
		"connections":   connections,
		"latest_update": timestamp,
		"market_open":   marketOpen,
		"tracked":       len(s.Collection.Symbols()),
	})
}
