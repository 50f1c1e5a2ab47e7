package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// ConsoleJournal implements Journal by logging entries. Used when no
// database is configured; useful in development and tests.
type ConsoleJournal struct {
	logger *zap.Logger
}

// NewConsoleJournal creates a new console journal.
func NewConsoleJournal(logger *zap.Logger) *ConsoleJournal {
	logger.Info("console-journal-initialized")
	return &ConsoleJournal{
		logger: logger,
	}
}

// AppendPosition logs an accepted position. Encrypted handles only.
func (c *ConsoleJournal) AppendPosition(_ context.Context, pos *types.EncryptedPosition) error {
	c.logger.Info("position-accepted",
		zap.String("position-id", pos.ID),
		zap.String("commitment-hash", pos.CommitmentHash),
		zap.String("market-address", pos.MarketAddress),
		zap.String("side-hint", string(pos.SideHint)),
		zap.Time("submitted-at", pos.SubmittedAt))
	return nil
}

// AppendSettlement logs a settlement transition.
func (c *ConsoleJournal) AppendSettlement(_ context.Context, positionID string, rec *types.SettlementRecord) error {
	c.logger.Info("position-settled",
		zap.String("position-id", positionID),
		zap.Bool("won", rec.Won),
		zap.String("outcome", string(rec.Outcome)),
		zap.Time("settled-at", rec.SettledAt))
	return nil
}

// Close is a no-op for console journal.
func (c *ConsoleJournal) Close() error {
	c.logger.Info("closing-console-journal")
	return nil
}
