package indexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsFetchedTotal counts markets returned by the external indexer.
	MarketsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_indexer_markets_fetched_total",
		Help: "Total number of markets fetched from the external indexer",
	})

	// FetchErrorsTotal counts failed indexer fetches.
	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_indexer_fetch_errors_total",
		Help: "Total number of failed indexer fetches",
	})

	// PollDurationSeconds tracks poll loop latency.
	PollDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "confidential_ledger_indexer_poll_duration_seconds",
		Help:    "Duration of indexer poll cycles",
		Buckets: prometheus.DefBuckets,
	})
)
