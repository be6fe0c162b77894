package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantral/calendar-data/internal/config"
	"github.com/quantral/calendar-data/internal/database"
	"github.com/quantral/calendar-data/internal/enrich"
	"github.com/quantral/calendar-data/internal/orchestrator"
	"github.com/quantral/calendar-data/internal/provider"
	"github.com/quantral/calendar-data/internal/scheduler"
	"github.com/quantral/calendar-data/internal/server"
	"github.com/quantral/calendar-data/internal/sink"
	"github.com/quantral/calendar-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/calendard.yaml", "path to config file")
	flag.Parse()

	// Optional .env for local runs; config expands ${VAR} references.
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting calendard",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if level := parseLogLevel(cfg.LogLevel); level != slog.LevelInfo {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	store := sink.NewPostgres(pool, logger)

	var earningsAdapters []provider.EarningsAdapter
	var economicAdapters []provider.EconomicAdapter
	var transcriptAdapter provider.TranscriptAdapter

	if cfg.Providers.FMP.APIKey != "" {
		fmp := provider.NewFMP(cfg.Providers.FMP, logger)
		earningsAdapters = append(earningsAdapters, fmp)
		economicAdapters = append(economicAdapters, fmp)
		transcriptAdapter = fmp
	}
	if cfg.Providers.Finnhub.APIKey != "" {
		earningsAdapters = append(earningsAdapters, provider.NewFinnhub(cfg.Providers.Finnhub, logger))
	}
	if cfg.Providers.FRED.APIKey != "" && len(cfg.Providers.FRED.Series) > 0 {
		economicAdapters = append(economicAdapters, provider.NewFRED(cfg.Providers.FRED, logger))
	}

	logger.Info("providers configured",
		"earnings", len(earningsAdapters),
		"economic", len(economicAdapters),
		"transcripts", transcriptAdapter != nil,
	)

	svc := orchestrator.New(cfg.Sync, store,
		orchestrator.WithEarningsAdapters(earningsAdapters...),
		orchestrator.WithEconomicAdapters(economicAdapters...),
		orchestrator.WithTranscriptAdapter(transcriptAdapter),
		orchestrator.WithLogger(logger),
	)

	logoClient := provider.NewLogoClient(cfg.Providers.Logo, logger)
	enricher := enrich.New(cfg.Enrichment, store, logoClient, logger)

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(cfg.Scheduler, logger)
		sched.OnEarnings(func(ctx context.Context) { svc.RunEarnings(ctx) })
		sched.OnEconomic(func(ctx context.Context) { svc.RunEconomic(ctx) })
		sched.OnEnrichment(func(ctx context.Context) {
			if _, err := enricher.Run(ctx); err != nil {
				logger.Error("scheduled enrichment failed", "error", err)
			}
		})
		if err := sched.Start(ctx); err != nil {
			logger.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer stopCancel()
			sched.Stop(stopCtx)
		}()
	}

	srv := server.New(cfg.Server.Port, svc, enricher, store, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("calendard running", "port", cfg.Server.Port)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
		}
		cancel()
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	logger.Info("calendard stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
