package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubscribersConnected reports the current WebSocket subscriber count.
	SubscribersConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "confidential_ledger_stream_subscribers",
		Help: "Number of connected aggregate stream subscribers",
	})

	// UpdatesBroadcastTotal counts aggregate updates queued for broadcast.
	UpdatesBroadcastTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_stream_updates_total",
		Help: "Total number of aggregate updates broadcast",
	})

	// UpdatesDroppedTotal counts updates dropped on a full buffer.
	UpdatesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_stream_updates_dropped_total",
		Help: "Total number of aggregate updates dropped due to backpressure",
	})
)
