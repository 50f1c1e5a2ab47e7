package register

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsTrackedTotal counts markets registered since process start.
	MarketsTrackedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_markets_tracked_total",
		Help: "Total number of locally created markets registered",
	})

	// MarketsTracked reports the current number of tracked markets.
	MarketsTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "confidential_ledger_markets_tracked",
		Help: "Number of locally created markets currently tracked",
	})
)
