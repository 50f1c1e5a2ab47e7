// Package walletauth verifies wallet ownership through signed messages.
// The ledger itself accepts a pre-verified wallet identity; this package
// is the calling layer that does the verifying.
package walletauth

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// personalMessageHash hashes a message with the personal-sign prefix so
// signatures produced by standard wallet tooling verify directly.
func personalMessageHash(message string) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	return crypto.Keccak256([]byte(prefixed))
}

// RecoverSigner recovers the signing address from a personal-sign
// signature over message. sigHex is the 65-byte r||s||v signature in
// hex, with or without a 0x prefix.
func RecoverSigner(message, sigHex string) (string, error) {
	sigHex = strings.TrimPrefix(sigHex, "0x")
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("signature length %d, want %d", len(sig), crypto.SignatureLength)
	}

	// Wallet tooling emits v as 27/28; crypto.SigToPub wants 0/1.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(personalMessageHash(message), sig)
	if err != nil {
		return "", fmt.Errorf("recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// Verify reports whether sigHex is a valid signature over message by the
// wallet at address. Address comparison is case-insensitive.
func Verify(address, message, sigHex string) bool {
	signer, err := RecoverSigner(message, sigHex)
	if err != nil {
		return false
	}
	return strings.EqualFold(signer, address)
}

// SignMessage signs a message with a hex private key, personal-sign
// style. Used by the CLI and by tests; the service itself never holds
// wallet keys.
func SignMessage(message, privateKeyHex string) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	sig, err := crypto.Sign(personalMessageHash(message), key)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}

	return hexutil.Encode(sig), nil
}
