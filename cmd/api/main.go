package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quickhaul/quote-backend/internal/api/router"
	"github.com/quickhaul/quote-backend/internal/checkout"
	appconfig "github.com/quickhaul/quote-backend/internal/config"
	"github.com/quickhaul/quote-backend/internal/leadlog"
	"github.com/quickhaul/quote-backend/internal/observability/metrics"
	"github.com/quickhaul/quote-backend/internal/quote"
	"github.com/quickhaul/quote-backend/pkg/logging"
)

func main() {
	// Load .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting quote-backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	leadMetrics := metrics.NewLeadMetrics(registry)

	// Pick the lead sink: Postgres when a database is configured,
	// otherwise the flat CSV file.
	var sink quote.Sink
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		sink = leadlog.NewPostgresSink(pool)
		logger.Info("lead sink ready", "backend", "postgres")
	} else {
		sink = leadlog.NewCSVSink(cfg.LeadLogPath)
		logger.Info("lead sink ready", "backend", "csv", "path", cfg.LeadLogPath)
	}

	stripeSvc := checkout.NewStripeService(
		cfg.StripeSecretKey,
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
		logger,
	)

	quoteHandler := quote.NewHandler(sink, logger, leadMetrics)
	checkoutHandler := checkout.NewHandler(sink, stripeSvc, logger, leadMetrics)

	r := router.New(&router.Config{
		Logger:             logger,
		QuoteHandler:       quoteHandler,
		CheckoutHandler:    checkoutHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
