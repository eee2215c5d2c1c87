package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rsi-tracker/src/collection"
	"rsi-tracker/src/config"
	"rsi-tracker/src/gateway"
	"rsi-tracker/src/interfaces"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/network"
	"rsi-tracker/src/orchestrator"
	"rsi-tracker/src/scheduler"
	"rsi-tracker/src/server"
	"rsi-tracker/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// .env holds credentials that must stay out of the YAML file
	_ = godotenv.Load()

	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyEnvOverrides(cfg)

	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// 1. Cache store
	var store interfaces.ICacheStore
	switch cfg.Storage.DBType {
	case "postgres":
		store = storage.NewPostgresDB(cfg.MConfig, appLogger)
	case "redis":
		store = storage.NewRedisStore(cfg.MConfig, appLogger)
	default:
		store = storage.NewAsyncSQLiteDB(cfg.MConfig, appLogger)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to initialize cache store: %v", err)
	}
	defer store.Close()

	// 2. Network, gateway, orchestrator, collection
	var netMgr interfaces.INetworkManager = network.NewAsyncNetworkManager(cfg.MConfig, appLogger)
	var gw interfaces.IGateway = gateway.NewYahooGateway(cfg.MConfig, netMgr)

	orch := orchestrator.NewOrchestrator(cfg.MConfig, store, gw, netMgr)
	coll := collection.NewContainer(logger.NewLogger(cfg.LogLevel, "Collection"), cfg.Symbols)

	// 3. Server
	srv := server.NewFastAPIServer(cfg.MConfig, appLogger, orch, coll)

	// 4. Daily refresh schedule
	sched := scheduler.NewScheduler(cfg.LogLevel, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := srv.Refresh(ctx, true); err != nil {
			appLogger.Error("Scheduled refresh failed: %v", err)
		}
	})
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		appLogger.Critical("Failed to register schedule: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// 5. Initial load: cache-first, so startup works offline
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := srv.Refresh(ctx, false); err != nil {
			appLogger.Warning("Initial load failed: %v", err)
		} else {
			appLogger.Info("Initial load complete")
		}
	}()

	// 6. Serve
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	srv.Stop()
}

// -----------------------------------------------------------------------------

// applyEnvOverrides lets deployment credentials trump the YAML values.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("DB_CONNECTION_STRING"); v != "" {
		cfg.Storage.DBConnectionString = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
}
