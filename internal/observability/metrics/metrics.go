package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the quote funnel.
type LeadMetrics struct {
	submissionsTotal  *prometheus.CounterVec
	sinkFailuresTotal *prometheus.CounterVec
	checkoutAmount    prometheus.Histogram
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebackend",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total quote submissions by endpoint and outcome",
		}, []string{"endpoint", "status"}),
		sinkFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebackend",
			Subsystem: "leads",
			Name:      "sink_failures_total",
			Help:      "Total lead record writes that failed",
		}, []string{"endpoint"}),
		checkoutAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quotebackend",
			Subsystem: "checkout",
			Name:      "amount_cents",
			Help:      "Distribution of checkout session amounts in minor units",
			Buckets:   prometheus.ExponentialBuckets(50, 4, 8),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.sinkFailuresTotal, m.checkoutAmount)
	return m
}

func (m *LeadMetrics) ObserveSubmission(endpoint, status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(endpoint, status).Inc()
}

func (m *LeadMetrics) ObserveSinkFailure(endpoint string) {
	if m == nil {
		return
	}
	m.sinkFailuresTotal.WithLabelValues(endpoint).Inc()
}

func (m *LeadMetrics) ObserveCheckoutAmount(cents int64) {
	if m == nil {
		return
	}
	m.checkoutAmount.Observe(float64(cents))
}
