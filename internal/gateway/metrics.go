package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttestationsVerifiedTotal counts valid decryption attestations.
	AttestationsVerifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_attestations_verified_total",
		Help: "Total number of valid gateway decryption attestations",
	})

	// AttestationFailuresTotal counts rejected attestations.
	AttestationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confidential_ledger_attestation_failures_total",
		Help: "Total number of rejected gateway decryption attestations",
	})
)
