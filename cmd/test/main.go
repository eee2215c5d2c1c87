package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"rsi-tracker/src/config"
	"rsi-tracker/src/gateway"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/network"
	"rsi-tracker/src/orchestrator"
	"rsi-tracker/src/storage"
)

// Manual end-to-end check: run the per-symbol flow once against the live
// provider and print the derived records. Not part of the automated tests.
func main() {
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	force := flag.Bool("force", false, "skip the same-day cache")
	flag.Parse()

	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLogger(conf.LogLevel, "smoke")

	store := storage.NewAsyncSQLiteDB(conf.MConfig, appLogger)
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to initialize store: %v", err)
	}
	defer store.Close()

	netMgr := network.NewAsyncNetworkManager(conf.MConfig, appLogger)
	gw := gateway.NewYahooGateway(conf.MConfig, netMgr)
	orch := orchestrator.NewOrchestrator(conf.MConfig, store, gw, netMgr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := orch.FetchSymbols(ctx, conf.Symbols, *force)
	if err != nil {
		appLogger.Critical("Fetch failed: %v", err)
	}

	fmt.Printf("fromCache=%t cacheAge=%dh warning=%q\n\n", res.FromCache, res.CacheAge, res.Warning)
	for _, r := range res.Records {
		fmt.Printf("%-14s price=%-10s rsi=%-8s vol=%-10s 1d=%-10s 1m=%-10s discount=%s\n",
			r.Ticker, r.CurrentPrice, r.RSI, r.Volatility, r.OneDayReturn, r.OneMonthReturn, r.Discount)
	}
}
