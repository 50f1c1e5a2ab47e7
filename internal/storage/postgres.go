package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// PostgresJournal implements Journal using PostgreSQL. Both tables are
// insert-only; positions are keyed by commitment hash and settlements by
// position id, matching the ledger's own indexes.
type PostgresJournal struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresJournal creates a new PostgreSQL journal.
func NewPostgresJournal(cfg *PostgresConfig) (*PostgresJournal, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-journal-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresJournal{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// AppendPosition records an accepted position. Only the opaque handles
// are stored; the journal never sees plaintext amounts.
func (p *PostgresJournal) AppendPosition(ctx context.Context, pos *types.EncryptedPosition) error {
	query := `
		INSERT INTO positions (
			id, commitment_hash, wallet_address, market_address,
			encrypted_amount_handle, encrypted_side_handle,
			side_hint, status, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := p.db.ExecContext(ctx, query,
		pos.ID,
		pos.CommitmentHash,
		pos.WalletAddress,
		pos.MarketAddress,
		pos.EncryptedAmount.Handle,
		pos.EncryptedSide.Handle,
		string(pos.SideHint),
		string(pos.Status),
		pos.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert position: %w", err)
	}

	p.logger.Debug("position-journaled",
		zap.String("position-id", pos.ID),
		zap.String("commitment-hash", pos.CommitmentHash))

	return nil
}

// AppendSettlement records a settlement transition.
func (p *PostgresJournal) AppendSettlement(ctx context.Context, positionID string, rec *types.SettlementRecord) error {
	query := `
		INSERT INTO settlements (
			position_id, won, outcome, settled_at, decrypted_amount, payout, attestation_sig
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.db.ExecContext(ctx, query,
		positionID,
		rec.Won,
		string(rec.Outcome),
		rec.SettledAt,
		rec.DecryptedAmount,
		rec.Payout,
		rec.AttestationSig,
	)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}

	p.logger.Debug("settlement-journaled",
		zap.String("position-id", positionID),
		zap.Bool("won", rec.Won))

	return nil
}

// Close closes the database connection.
func (p *PostgresJournal) Close() error {
	p.logger.Info("closing-postgres-journal")
	return p.db.Close()
}
