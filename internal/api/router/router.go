package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quickhaul/quote-backend/internal/checkout"
	httpmiddleware "github.com/quickhaul/quote-backend/internal/http/middleware"
	"github.com/quickhaul/quote-backend/internal/quote"
	"github.com/quickhaul/quote-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	QuoteHandler       *quote.Handler
	CheckoutHandler    *checkout.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/quotes", func(r chi.Router) {
		r.Post("/log", cfg.QuoteHandler.SubmitLog)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/session", cfg.CheckoutHandler.CreateSession)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
