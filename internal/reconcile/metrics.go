package reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsMergedTotal counts markets returned by merge operations.
	MarketsMergedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_markets_merged_total",
		Help: "Total number of markets returned across merged listings",
	})
)
