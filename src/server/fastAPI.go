package server

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rsi-tracker/src/collection"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/models"
	"rsi-tracker/src/orchestrator"
)

// -----------------------------------------------------------------------------
// FastAPIServer
// -----------------------------------------------------------------------------

type FastAPIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine

	Orchestrator *orchestrator.Orchestrator
	Collection   *collection.Container

	// WebSocket clients. The map is owned by the hub goroutine; clientCount
	// mirrors its size for readers outside the loop.
	clients     map[*Client]struct{}
	clientCount atomic.Int64
	broadcast   chan *models.MLatestData // Strongly typed and Buffered Queue
	register    chan *Client
	unregister  chan *Client

	// Local cache
	latestState *models.MLatestData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewFastAPIServer(cfg *models.MConfig, log *logger.Logger, orch *orchestrator.Orchestrator, coll *collection.Container) *FastAPIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &FastAPIServer{
		Config:       cfg,
		Logger:       log,
		engine:       gin.Default(),
		Orchestrator: orch,
		Collection:   coll,
		clients:      make(map[*Client]struct{}),
		// Buffered channel so a refresh burst never blocks the caller
		broadcast:  make(chan *models.MLatestData, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		latestState: &models.MLatestData{
			Type:    "INITIAL",
			Records: []models.MAssetRecord{},
			Status:  models.StatusIdle,
		},
	}

	s.engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *FastAPIServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/assets", s.getAssets)
	s.engine.POST("/api/assets/refresh", s.refreshAssets)
	s.engine.GET("/api/assets/:symbol", s.getAssetDetail)
	s.engine.POST("/api/assets", s.addAsset)
	s.engine.DELETE("/api/assets/:symbol", s.removeAsset)
	s.engine.POST("/api/sort", s.sortAssets)
	s.engine.GET("/api/cache/status", s.getCacheStatus)
	s.engine.DELETE("/api/cache", s.clearCache)
	s.engine.GET("/api/health", s.getHealth)

	// Prometheus endpoint
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *FastAPIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) Stop() error {
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Refresh
// -----------------------------------------------------------------------------

// Refresh runs the batch flow against the tracked symbols, installs the
// result in the collection and pushes the new state to every websocket
// client. Shared by the REST handlers, the scheduler and the startup load.
func (s *FastAPIServer) Refresh(ctx context.Context, force bool) (models.MLatestData, error) {
	s.Collection.SetLoading()

	res, err := s.Orchestrator.FetchAssets(ctx, force)
	if err != nil {
		s.Collection.SetFailed(err)
		return s.Collection.Snapshot(), err
	}

	s.Collection.SetRecords(res)
	snap := s.Collection.Snapshot()
	s.Broadcast(&snap)
	return snap, nil
}
