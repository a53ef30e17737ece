package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"butcem/internal/advisor"
	"butcem/internal/advisor/gemini"
	"butcem/internal/advisor/memory"
	"butcem/internal/cli"
	apphttp "butcem/internal/http"
	"butcem/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	reportStore := cli.InitReports(logger, cfg.ReportsPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without an API key the server still runs, backed by the canned advisor.
	var (
		suggester advisor.CategorySuggester
		generator advisor.AnalysisGenerator
	)
	if cfg.GeminiEnabled() {
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		suggester, generator = client, client
		logger.Info("Initialized Gemini advisor")
	} else {
		adv := memory.New()
		suggester, generator = adv, adv
		logger.Info("GEMINI_API_KEY not set, using canned advisor")
	}

	analysis := services.NewAnalysisService(store, generator, reportStore)
	srv := apphttp.NewServer(":"+cfg.Port, store, suggester, analysis)

	// Configure server timeouts and limits. The write timeout leaves room
	// for report generation round trips.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting butcem server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
