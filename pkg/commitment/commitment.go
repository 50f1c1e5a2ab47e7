// Package commitment implements the public commitment scheme over
// encrypted trades. A commitment binds a wallet, a market, and both
// encrypted handles into a fixed-size hash that can be published and
// later checked against the ledger without revealing the trade.
package commitment

import (
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// domainTag separates commitment preimages from any other Keccak-256 use
// of the same field data.
const domainTag = "private-markets/position-commitment/v1"

// Compute derives the commitment hash for an encrypted trade. The
// encoding is length-prefixed per field so no two distinct trades can
// produce the same preimage by shifting bytes across field boundaries.
// Deterministic: identical inputs always yield the identical hash.
func Compute(walletAddress, marketAddress string, amount, side types.EncryptedValue) string {
	fields := []string{
		domainTag,
		walletAddress,
		marketAddress,
		amount.Handle,
		string(amount.Kind),
		side.Handle,
		string(side.Kind),
	}

	var preimage []byte
	var length [8]byte
	for _, f := range fields {
		binary.BigEndian.PutUint64(length[:], uint64(len(f)))
		preimage = append(preimage, length[:]...)
		preimage = append(preimage, f...)
	}

	return crypto.Keccak256Hash(preimage).Hex()
}

// Verify reports whether hash is the commitment for the given trade.
// Comparison is case-insensitive on the hex digits.
func Verify(hash, walletAddress, marketAddress string, amount, side types.EncryptedValue) bool {
	return strings.EqualFold(hash, Compute(walletAddress, marketAddress, amount, side))
}
