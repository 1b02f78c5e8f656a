package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quickhaul/quote-backend/internal/observability/metrics"
	"github.com/quickhaul/quote-backend/internal/quote"
	"github.com/quickhaul/quote-backend/pkg/logging"
)

// SessionCreator creates hosted checkout sessions. *StripeService is
// the production implementation.
type SessionCreator interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
}

// Handler handles the checkout-session endpoint
type Handler struct {
	sink     quote.Sink
	provider SessionCreator
	logger   *logging.Logger
	metrics  *metrics.LeadMetrics
	now      func() time.Time
}

// NewHandler creates a new checkout handler
func NewHandler(sink quote.Sink, provider SessionCreator, logger *logging.Logger, m *metrics.LeadMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sink:     sink,
		provider: provider,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source (for testing).
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	URL string `json:"url"`
}

// CreateSession handles POST /checkout/session requests. The
// checkout-attempt record is written best-effort: a sink failure is
// logged and counted but never blocks the payment flow.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var sub quote.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode checkout request", "error", err)
		h.metrics.ObserveSubmission("checkout", "rejected")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := sub.Validate(); err != nil {
		h.logger.Warn("checkout submission rejected",
			"error", err,
			"email", sub.ContactDetails.Email,
		)
		h.metrics.ObserveSubmission("checkout", "rejected")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := quote.Encode(&sub, quote.LogTypeCheckoutAttempt, h.now().UTC())
	if err := h.sink.Append(r.Context(), rec); err != nil {
		// The record is a funnel log here; payment proceeds anyway.
		h.logger.Error("checkout lead log write failed",
			"error", err,
			"name", sub.ContactDetails.Name,
			"email", sub.ContactDetails.Email,
		)
		h.metrics.ObserveSinkFailure("checkout")
	}

	amount, _ := sub.QuoteAmount()
	cents := AmountCents(amount)
	if cents < MinimumAmountCents {
		h.logger.Warn("checkout amount below minimum",
			"amount_cents", cents,
			"email", sub.ContactDetails.Email,
		)
		h.metrics.ObserveSubmission("checkout", "rejected")
		writeError(w, http.StatusBadRequest, ErrAmountTooLow.Error())
		return
	}

	session, err := h.provider.CreateSession(r.Context(), SessionParams{
		Summary:       BuildSummary(&sub),
		AmountCents:   cents,
		CustomerEmail: sub.ContactDetails.Email,
	})
	if err != nil {
		h.logger.Error("checkout session creation failed",
			"error", err,
			"email", sub.ContactDetails.Email,
			"amount_cents", cents,
		)
		h.metrics.ObserveSubmission("checkout", "failed")
		writeError(w, http.StatusInternalServerError, "checkout session creation failed: "+err.Error())
		return
	}

	h.logger.Info("checkout session ready",
		"email", sub.ContactDetails.Email,
		"amount_cents", cents,
		"session_id", session.ID,
	)
	h.metrics.ObserveSubmission("checkout", "accepted")
	h.metrics.ObserveCheckoutAmount(cents)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessionResponse{URL: session.URL})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
