package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remodely_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remodely_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// ListingsImported counts products materialized as listings.
	ListingsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remodely_shopify_listings_imported_total",
		Help: "Shopify products imported as listings.",
	})

	// ListingsSkipped counts import attempts that matched an existing listing.
	ListingsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remodely_shopify_listings_skipped_total",
		Help: "Import attempts skipped because the listing already exists.",
	})

	// ImportErrors counts per-item bulk import failures.
	ImportErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remodely_shopify_import_errors_total",
		Help: "Per-item import failures.",
	})

	// WebhookEvents counts verified webhook deliveries by topic.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remodely_shopify_webhook_events_total",
		Help: "Verified Shopify webhook deliveries.",
	}, []string{"topic"})
)
