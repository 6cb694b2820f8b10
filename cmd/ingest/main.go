package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/slapshotlabs/scoresync/internal/app"
	"github.com/slapshotlabs/scoresync/internal/config"
	"github.com/slapshotlabs/scoresync/internal/observability"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
	"github.com/slapshotlabs/scoresync/internal/usecase"
)

// One-shot sync driver: fetches a single day, reconciles it and prints the
// run summary as JSON. Exits zero whenever the run completed, including days
// with no games; only a provider or database failure is fatal.
func main() {
	var (
		dateFlag  = flag.String("date", "", "date to sync as YYYY-MM-DD (default: today, UTC)")
		forceFlag = flag.Bool("force", false, "overwrite score and state even for finished games")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	params := usecase.RunParams{Force: *forceFlag}
	if *dateFlag != "" {
		date, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			logger.Error("invalid -date, expected YYYY-MM-DD", "date", *dateFlag, "error", err)
			os.Exit(2)
		}
		params.Date = date
	}

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	runner, err := app.NewIngestRunner(cfg, logger)
	if err != nil {
		logger.Error("build ingest runner", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, runErr := runner.ScoreSync.Run(ctx, params)

	if out, err := sonic.MarshalIndent(summary, "", "  "); err == nil {
		fmt.Println(string(out))
	}

	if err := runner.Close(); err != nil {
		logger.Error("close database", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	if runErr != nil {
		logger.Error("score sync failed", "date", summary.Date, "error", runErr)
		os.Exit(1)
	}
}
