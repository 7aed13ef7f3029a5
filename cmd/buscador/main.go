package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/api"
	"github.com/LUANPELO/buscador-buses-colombia/internal/archive"
	"github.com/LUANPELO/buscador-buses-colombia/internal/cities"
	"github.com/LUANPELO/buscador-buses-colombia/internal/config"
	"github.com/LUANPELO/buscador-buses-colombia/internal/logger"
	"github.com/LUANPELO/buscador-buses-colombia/internal/monitor"
	"github.com/LUANPELO/buscador-buses-colombia/internal/redbus"
	"github.com/LUANPELO/buscador-buses-colombia/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	var archiver monitor.Archiver
	if cfg.Archive.Enabled {
		store, err := archive.New(cfg.Archive.DBPath)
		if err != nil {
			logger.Fatal("Failed to initialize alert archive: %v", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close alert archive: %v", err)
			}
		}()
		archiver = store
		logger.Info("Alert archive enabled at %s", cfg.Archive.DBPath)
	}

	var notifier monitor.Notifier
	if cfg.Telegram.Enabled {
		tg, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram notifier: %v", err)
		}
		notifier = tg
		logger.Info("Telegram notifications enabled")
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	resolver := cities.NewResolver(cfg.Redbus.CitySearchURL, cfg.Redbus.Timeout)
	provider := redbus.NewClient(cfg.Redbus.SearchURL, cfg.Redbus.Timeout,
		cfg.Redbus.PageSize, cfg.Redbus.MaxPages)

	ledger := monitor.NewLedger()
	registry := monitor.NewRegistry()
	alerts := monitor.NewAlertLog(archiver)
	settings := monitor.NewSettings(cfg.Alerts.CriticalThreshold,
		cfg.Alerts.WarningThreshold, cfg.Alerts.PollInterval)

	checker := monitor.NewChecker(resolver, provider, ledger, registry, alerts, settings, notifier)
	scheduler := monitor.NewScheduler(checker, registry, settings, ledger, cfg.Alerts.LedgerTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scheduler.Run(ctx)

	server := api.NewServer(resolver, provider, checker, registry, alerts, settings)
	httpServer := &http.Server{
		Addr:         cfg.HTTP.ListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.Redbus.Timeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed: %v", err)
		}
	}()

	logger.Info("API listening on %s (poll interval: %v, thresholds: %d/%d)",
		cfg.HTTP.ListenAddr, cfg.Alerts.PollInterval,
		cfg.Alerts.CriticalThreshold, cfg.Alerts.WarningThreshold)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server failed: %v", err)
	}
	logger.Info("Service stopped")
}
