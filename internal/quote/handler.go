package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quickhaul/quote-backend/internal/observability/metrics"
	"github.com/quickhaul/quote-backend/pkg/logging"
)

// Sink is the durable append target for lead records.
type Sink interface {
	Append(ctx context.Context, rec LeadRecord) error
}

// Handler handles the log-only quote submission endpoint
type Handler struct {
	sink    Sink
	logger  *logging.Logger
	metrics *metrics.LeadMetrics
	now     func() time.Time
}

// NewHandler creates a new quote log handler
func NewHandler(sink Sink, logger *logging.Logger, m *metrics.LeadMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sink:    sink,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// WithClock overrides the timestamp source (for testing).
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

type logResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SubmitLog handles POST /quotes/log requests. Unlike the checkout
// path, a sink failure here is the whole point of the call, so it is
// surfaced as a 500.
func (h *Handler) SubmitLog(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode quote log request", "error", err)
		h.metrics.ObserveSubmission("log", "rejected")
		writeLogResponse(w, http.StatusBadRequest, logResponse{Status: "error", Message: "invalid request body"})
		return
	}

	if err := sub.ValidateForLog(); err != nil {
		h.logger.Warn("quote log rejected",
			"error", err,
			"email", sub.ContactDetails.Email,
		)
		h.metrics.ObserveSubmission("log", "rejected")
		writeLogResponse(w, http.StatusBadRequest, logResponse{Status: "error", Message: err.Error()})
		return
	}

	rec := Encode(&sub, LogTypePrePayment, h.now().UTC())
	if err := h.sink.Append(r.Context(), rec); err != nil {
		h.logger.Error("quote log write failed",
			"error", err,
			"name", sub.ContactDetails.Name,
			"email", sub.ContactDetails.Email,
		)
		h.metrics.ObserveSubmission("log", "failed")
		h.metrics.ObserveSinkFailure("log")
		writeLogResponse(w, http.StatusInternalServerError, logResponse{Status: "error", Message: "failed to record quote"})
		return
	}

	h.logger.Info("quote logged", "email", sub.ContactDetails.Email, "quote", sub.CalculatedQuote.String())
	h.metrics.ObserveSubmission("log", "accepted")
	writeLogResponse(w, http.StatusOK, logResponse{Status: "success"})
}

func writeLogResponse(w http.ResponseWriter, code int, resp logResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
