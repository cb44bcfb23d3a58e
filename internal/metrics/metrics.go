package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rateLimitExceeded counts HTTP 429 events from the rate limit middleware.
	// Labels:
	// - endpoint: short name like "delivery:send"
	// - source:   "ip" or "delivery"
	rateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leasedesk",
			Subsystem: "http",
			Name:      "rate_limit_exceeded_total",
			Help:      "Number of requests rejected due to rate limiting (HTTP 429)",
		},
		[]string{"endpoint", "source"},
	)

	// leaseComputations counts renewal/extension computations.
	// Labels:
	// - kind:    "renewal" or "extension"
	// - outcome: "success", "invalid" or "unsupported"
	leaseComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leasedesk",
			Subsystem: "lease",
			Name:      "computations_total",
			Help:      "Total number of lease renewal and extension computations",
		},
		[]string{"kind", "outcome"},
	)

	// rentChangeRatio observes new rent divided by previous rent.
	rentChangeRatio = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "leasedesk",
			Subsystem: "lease",
			Name:      "rent_change_ratio",
			Help:      "Ratio of computed rent to previous rent",
			Buckets:   []float64{0.9, 1, 1.03, 1.05, 1.1, 1.2, 1.5},
		},
		[]string{"kind"},
	)

	// deliveriesSent counts completed sends; a "both" send counts once.
	deliveriesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leasedesk",
			Subsystem: "delivery",
			Name:      "sent_total",
			Help:      "Total number of lease documents sent, by channel",
		},
		[]string{"channel", "template_type"},
	)

	// deliveryDrafts counts drafts by origin.
	// Labels:
	// - origin: "manual" or "renewal"
	deliveryDrafts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leasedesk",
			Subsystem: "delivery",
			Name:      "drafts_total",
			Help:      "Total number of delivery drafts created",
		},
		[]string{"origin"},
	)

	// templatesStored tracks the number of lease templates in the store.
	templatesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "leasedesk",
			Subsystem: "templates",
			Name:      "stored",
			Help:      "Number of lease templates currently stored",
		},
	)
)

// IncRateLimitExceeded increments the 429 counter for the given endpoint and source.
func IncRateLimitExceeded(endpoint, source string) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	if source == "" {
		source = "unknown"
	}
	rateLimitExceeded.WithLabelValues(endpoint, source).Inc()
}

// IncLeaseComputation increments the computation counter.
func IncLeaseComputation(kind, outcome string) {
	if kind == "" {
		kind = "unknown"
	}
	if outcome == "" {
		outcome = "unknown"
	}
	leaseComputations.WithLabelValues(kind, outcome).Inc()
}

// ObserveRentChange records the new/previous rent ratio. Zero previous rent is skipped.
func ObserveRentChange(kind string, previous, next float64) {
	if previous <= 0 {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	rentChangeRatio.WithLabelValues(kind).Observe(next / previous)
}

// IncDeliverySent increments the sent counter.
func IncDeliverySent(channel, templateType string) {
	if channel == "" {
		channel = "unknown"
	}
	if templateType == "" {
		templateType = "unknown"
	}
	deliveriesSent.WithLabelValues(channel, templateType).Inc()
}

// IncDeliveryDraft increments the draft counter.
func IncDeliveryDraft(origin string) {
	if origin == "" {
		origin = "unknown"
	}
	deliveryDrafts.WithLabelValues(origin).Inc()
}

// SetTemplatesStored sets the template gauge.
func SetTemplatesStored(n int) {
	templatesStored.Set(float64(n))
}
