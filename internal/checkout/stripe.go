package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/quickhaul/quote-backend/pkg/logging"
)

var stripeTracer = otel.Tracer("quotebackend.internal.checkout.stripe")

// SessionParams describes the single line item a checkout session is
// created for.
type SessionParams struct {
	Summary       string
	AmountCents   int64
	CustomerEmail string
}

// Session is the provider's response: an opaque ID and the hosted
// payment page URL the caller redirects to.
type Session struct {
	ID  string
	URL string
}

// ProviderError carries the payment provider's failure detail so
// handlers can surface it.
type ProviderError struct {
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("stripe api status %d: %s", e.StatusCode, e.Detail)
}

// StripeService creates Stripe Checkout Sessions for quoted deliveries.
type StripeService struct {
	secretKey  string
	successURL string
	cancelURL  string
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewStripeService creates a new Stripe checkout service.
func NewStripeService(secretKey, successURL, cancelURL string, logger *logging.Logger) *StripeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StripeService{
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		baseURL:    "https://api.stripe.com",
		apiVersion: "2024-12-18.acacia",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// WithBaseURL overrides the Stripe API base URL (for testing).
func (s *StripeService) WithBaseURL(baseURL string) *StripeService {
	if baseURL != "" {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
	return s
}

// CreateSession creates a payment-mode checkout session with one fixed
// line item for the quoted amount. A single attempt is made; failures
// are never retried here.
func (s *StripeService) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	ctx, span := stripeTracer.Start(ctx, "stripe.create_checkout_session")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("quote.amount_cents", params.AmountCents),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.Summary)
	form.Set("line_items[0][quantity]", "1")

	if email := strings.TrimSpace(params.CustomerEmail); email != "" {
		form.Set("customer_email", email)
	}
	if s.successURL != "" {
		form.Set("success_url", s.successURL)
	}
	if s.cancelURL != "" {
		form.Set("cancel_url", s.cancelURL)
	}

	apiURL := s.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("checkout: stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", s.apiVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout: stripe http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}

	var parsed stripeCheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("checkout: stripe decode: %w", err)
	}
	if parsed.URL == "" {
		return nil, fmt.Errorf("checkout: stripe response missing checkout url")
	}

	s.logger.Info("checkout session created", "session_id", parsed.ID, "amount_cents", params.AmountCents)

	return &Session{
		ID:  parsed.ID,
		URL: parsed.URL,
	}, nil
}

// stripeCheckoutSession is the subset of Stripe's Checkout Session we need.
type stripeCheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
