package types

import "errors"

// Typed errors raised by the ledger and register for caller mistakes.
// Privacy rule: these values never wrap wallet addresses, market
// addresses, or encrypted fields of existing records. A duplicate
// submission must not learn anything about the position it collided with.
var (
	// ErrDuplicateCommitment is returned when a commitment hash is
	// submitted twice. The same encrypted trade must not be stored twice.
	ErrDuplicateCommitment = errors.New("commitment hash already exists")

	// ErrInvalidEncryptedValueKind is returned when an encrypted value
	// carries the wrong kind tag (amount where side belongs, or vice versa).
	ErrInvalidEncryptedValueKind = errors.New("invalid encrypted value kind")

	// ErrPositionNotFound is returned by settlement fill-in for an unknown
	// position id.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPositionNotSettled is returned when a settlement fill-in targets a
	// position whose market has not been settled yet.
	ErrPositionNotSettled = errors.New("position not settled")

	// ErrMarketAlreadyTracked is returned when the creation workflow tracks
	// the same market public key twice.
	ErrMarketAlreadyTracked = errors.New("market already tracked")

	// ErrWalletNotAuthorized is surfaced by the HTTP layer when a wallet
	// ownership proof fails verification.
	ErrWalletNotAuthorized = errors.New("wallet not authorized")
)
