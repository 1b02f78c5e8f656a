package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quickhaul/quote-backend/internal/checkout"
	"github.com/quickhaul/quote-backend/internal/quote"
	"github.com/quickhaul/quote-backend/pkg/logging"
)

type nopSink struct{}

func (nopSink) Append(context.Context, quote.LeadRecord) error { return nil }

type nopProvider struct{}

func (nopProvider) CreateSession(context.Context, checkout.SessionParams) (*checkout.Session, error) {
	return &checkout.Session{ID: "cs_1", URL: "https://checkout.stripe.com/pay/cs_1"}, nil
}

func newTestRouter() http.Handler {
	logger := logging.Default()
	reg := prometheus.NewRegistry()
	return New(&Config{
		Logger:          logger,
		QuoteHandler:    quote.NewHandler(nopSink{}, logger, nil),
		CheckoutHandler: checkout.NewHandler(nopSink{}, nopProvider{}, logger, nil),
		MetricsHandler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Fatalf("unexpected health body: %q", rec.Body.String())
	}
}

func TestQuoteLogRoute(t *testing.T) {
	r := newTestRouter()
	body := `{
		"contactDetails": {"name": "Jane Smith", "email": "jane@example.com"},
		"calculatedQuote": "25.00"
	}`
	req := httptest.NewRequest(http.MethodPost, "/quotes/log", strings.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestCheckoutSessionRoute(t *testing.T) {
	r := newTestRouter()
	body := `{
		"contactDetails": {"name": "Jane Smith", "email": "jane@example.com"},
		"stopsData": [
			{"address": "123 Main St"},
			{"address": "456 Oak Ave"}
		],
		"packagesData": [{"qty": "1", "desc": "Box"}],
		"serviceDetails": {"vehicleType": "Van"},
		"calculatedQuote": "25.00"
	}`
	req := httptest.NewRequest(http.MethodPost, "/checkout/session", strings.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "https://checkout.stripe.com/pay/cs_1") {
		t.Fatalf("expected redirect URL in body: %s", rec.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
