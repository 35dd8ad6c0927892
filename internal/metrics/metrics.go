package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	postsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Posts created, by category and media type",
		},
		[]string{"category", "media_type"},
	)

	helpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "help_requests_total",
			Help: "Help requests by outcome (sent, duplicate, error)",
		},
		[]string{"result"},
	)

	feedLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_loads_total",
			Help: "Feed loads by outcome (ok, error)",
		},
		[]string{"result"},
	)

	orphanedMedia = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_orphaned_total",
			Help: "Uploaded media that could not be removed after a failed post insert",
		},
	)
)

func RecordPostCreated(category, mediaType string) {
	postsCreated.WithLabelValues(category, mediaType).Inc()
}

func RecordHelpRequest(result string) {
	helpRequests.WithLabelValues(result).Inc()
}

func RecordFeedLoad(err error) {
	if err != nil {
		feedLoads.WithLabelValues("error").Inc()
		return
	}
	feedLoads.WithLabelValues("ok").Inc()
}

func RecordOrphanedMedia() {
	orphanedMedia.Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
