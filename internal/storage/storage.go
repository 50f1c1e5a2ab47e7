package storage

import (
	"context"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// Journal is a durable, append-only record of ledger activity. The
// in-memory ledger remains the source of truth within a process; the
// journal exists so accepted positions and settlements survive restarts.
// Journal writes never block or fail a ledger operation.
type Journal interface {
	// AppendPosition records an accepted position.
	AppendPosition(ctx context.Context, pos *types.EncryptedPosition) error

	// AppendSettlement records a settlement transition for a position.
	AppendSettlement(ctx context.Context, positionID string, rec *types.SettlementRecord) error

	// Close closes the journal.
	Close() error
}
