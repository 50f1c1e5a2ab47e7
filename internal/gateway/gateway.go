// Package gateway models the boundary with the external encryption
// service. Encrypted handles are opaque here: this package checks kind
// tags and verifies decryption attestations, and nothing else.
package gateway

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
	"github.com/sagardabas0007/private-markets/pkg/walletauth"
)

// Verifier checks attestations produced by the encryption gateway's
// signing key when it decrypts a settled position's amount for its owner.
type Verifier struct {
	gatewayAddress string
	logger         *zap.Logger
}

// Config holds verifier configuration.
type Config struct {
	// GatewayAddress is the gateway's published signing address.
	GatewayAddress string
	Logger         *zap.Logger
}

// NewVerifier creates a new attestation verifier.
func NewVerifier(cfg *Config) *Verifier {
	return &Verifier{
		gatewayAddress: cfg.GatewayAddress,
		logger:         cfg.Logger,
	}
}

// AttestationMessage builds the canonical message the gateway signs when
// attesting a decryption result. Both sides must produce the identical
// string for the signature to verify.
func AttestationMessage(positionID, decryptedAmount, payout string) string {
	return fmt.Sprintf("settlement:%s:amount=%s:payout=%s", positionID, decryptedAmount, payout)
}

// VerifyAttestation checks that the gateway signed the decryption result
// for a position. Returns nil on a valid attestation.
func (v *Verifier) VerifyAttestation(positionID, decryptedAmount, payout, sigHex string) error {
	message := AttestationMessage(positionID, decryptedAmount, payout)

	if !walletauth.Verify(v.gatewayAddress, message, sigHex) {
		AttestationFailuresTotal.Inc()
		v.logger.Warn("attestation-verification-failed",
			zap.String("position-id", positionID))
		return fmt.Errorf("attestation signature does not match gateway address")
	}

	AttestationsVerifiedTotal.Inc()

	return nil
}

// ValidateTrade checks that a submitted trade's encrypted values carry
// the kind tags the ledger expects. Handles are never parsed.
func ValidateTrade(amount, side types.EncryptedValue) error {
	if err := amount.Validate(types.KindAmount); err != nil {
		return err
	}
	return side.Validate(types.KindSide)
}
