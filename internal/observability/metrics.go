package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TMDBRequests counts outbound movie-metadata API calls by endpoint and outcome.
	TMDBRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkreel_tmdb_requests_total",
		Help: "Total number of TMDB API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	// TMDBRequestLatency records outbound movie-metadata API latency.
	TMDBRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkreel_tmdb_request_latency_seconds",
		Help:    "TMDB API request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// RankingPasses counts ranking recomputations over the movie collection.
	RankingPasses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkreel_ranking_passes_total",
		Help: "Total number of ranking recomputation passes",
	})

	// GuardDenials counts forbidden outcomes from the post authorization guard.
	GuardDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkreel_guard_denials_total",
		Help: "Total number of post mutations denied by the authorization guard",
	})
)

// ObserveTMDBRequest records latency and outcome for an outbound TMDB call.
func ObserveTMDBRequest(endpoint, outcome string, start time.Time) {
	TMDBRequests.WithLabelValues(endpoint, outcome).Inc()
	TMDBRequestLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
