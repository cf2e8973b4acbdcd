package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// guessesEvaluated counts scored guesses by mode.
	guessesEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guessrank_guesses_evaluated_total",
		Help: "Guesses scored against the full secret list, by mode",
	}, []string{"mode"})

	// searchDuration tracks wall time of complete searches.
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "guessrank_search_duration_seconds",
		Help:    "Search duration in seconds, by mode",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 12), // 1ms to ~70min
	}, []string{"mode"})

	// searchErrors counts failed searches by error kind.
	searchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guessrank_search_errors_total",
		Help: "Failed searches by error kind",
	}, []string{"kind"})
)
