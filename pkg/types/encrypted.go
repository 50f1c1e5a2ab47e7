package types

import (
	"fmt"
	"time"
)

// EncryptedValueKind discriminates what an encrypted handle refers to.
// The ledger never decodes handles, but it does check the kind tag to
// catch callers that swap the amount and side fields.
type EncryptedValueKind string

const (
	// KindAmount marks a handle that encrypts a bet amount.
	KindAmount EncryptedValueKind = "amount"
	// KindSide marks a handle that encrypts a Yes/No side.
	KindSide EncryptedValueKind = "side"
)

// Valid reports whether the kind is one of the known discriminators.
func (k EncryptedValueKind) Valid() bool {
	return k == KindAmount || k == KindSide
}

// EncryptedValue is an opaque ciphertext reference produced by the
// encryption gateway. The handle is never parsed locally; decryption
// requires the gateway's cooperation plus proof of wallet ownership.
type EncryptedValue struct {
	Handle     string             `json:"handle"`
	ProducedAt time.Time          `json:"produced_at"`
	Kind       EncryptedValueKind `json:"kind"`
}

// Validate checks that the value carries the expected kind tag.
func (v EncryptedValue) Validate(want EncryptedValueKind) error {
	if v.Handle == "" {
		return fmt.Errorf("%w: empty handle", ErrInvalidEncryptedValueKind)
	}
	if v.Kind != want {
		return fmt.Errorf("%w: got %q, want %q", ErrInvalidEncryptedValueKind, v.Kind, want)
	}
	return nil
}

// Side is a market outcome direction.
type Side string

const (
	SideYes Side = "Yes"
	SideNo  Side = "No"
)

// Valid reports whether the side is Yes or No.
func (s Side) Valid() bool {
	return s == SideYes || s == SideNo
}

// ParseSide parses a side string, accepting the canonical Yes/No forms
// plus their lowercase and uppercase variants.
func ParseSide(s string) (Side, error) {
	switch s {
	case "Yes", "yes", "YES":
		return SideYes, nil
	case "No", "no", "NO":
		return SideNo, nil
	default:
		return "", fmt.Errorf("invalid side %q: must be Yes or No", s)
	}
}
