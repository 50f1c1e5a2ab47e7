package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PositionsSubmittedTotal tracks accepted position submissions.
	PositionsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_positions_submitted_total",
		Help: "Total number of encrypted positions accepted by the ledger",
	})

	// SubmitRejectedTotal tracks rejected submissions by reason.
	SubmitRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confidential_ledger_submit_rejected_total",
			Help: "Total number of rejected position submissions",
		},
		[]string{"reason"},
	)

	// PositionsSettledTotal tracks position settlement transitions.
	PositionsSettledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_positions_settled_total",
		Help: "Total number of positions transitioned to settled",
	})

	// SettlementsFilledTotal tracks external decryption fill-ins.
	SettlementsFilledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_settlements_filled_total",
		Help: "Total number of settlement records filled by the external decryption flow",
	})

	// CommitmentChecksTotal tracks commitment verification lookups by result.
	CommitmentChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confidential_ledger_commitment_checks_total",
			Help: "Total number of commitment verification lookups",
		},
		[]string{"result"},
	)

	// PositionsTracked reports the current number of positions held in memory.
	PositionsTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "confidential_ledger_positions_tracked",
		Help: "Number of encrypted positions currently tracked",
	})

	// AggregateComputeDuration tracks aggregate recomputation latency.
	AggregateComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "confidential_ledger_aggregate_compute_duration_seconds",
		Help:    "Duration of market aggregate recomputation",
		Buckets: prometheus.DefBuckets,
	})

	// JournalErrorsTotal tracks failed write-behind journal appends.
	JournalErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_journal_errors_total",
		Help: "Total number of failed journal appends",
	})
)
