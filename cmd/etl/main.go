package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/pdrew32/hurdat2-cyclone-analysis/internal/adapter/http"
	kafkaadapter "github.com/pdrew32/hurdat2-cyclone-analysis/internal/adapter/kafka"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/adapter/sqlite"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/config"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/observability"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/pipeline"
)

func main() {
	inputPath := flag.String("input", "", "path to a HURDAT2 best-track text file")
	dbPath := flag.String("db", "", "SQLite output path (overrides SQLITE_PATH)")
	lenient := flag.Bool("lenient", false, "record unknown status codes and impossible dates as missing instead of failing")
	strict := flag.Bool("strict", false, "fail on entry count mismatches with no cross-year explanation")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: etl -input <file> [-db <path>] [-lenient] [-strict]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.SQLitePath = *dbPath
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, err := os.Open(*inputPath)
	if err != nil {
		logger.Error("failed to open input", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	defer input.Close()

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := sqlite.New(db)
	if err := store.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	loaders := pipeline.MultiLoader{store}

	// Kafka fan-out (feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED).
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, writer)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaTopic)
	}

	extractor := pipeline.NewAssembler(input, logger, metrics)
	transformer := pipeline.NewTransformer(*lenient, logger)

	p := pipeline.New(extractor, transformer, loaders, logger, metrics, cfg.BatchSize, *strict)

	var srv *httpadapter.Server
	if cfg.MetricsEnabled {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("pipeline error", "error", runErr)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		cancel()
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
	logger.Info("ingest complete", "db", cfg.SQLitePath)
}
