// Package ledger implements the confidential position ledger: it stores
// encrypted positions, derives public market sentiment without decrypting
// anything, answers commitment existence queries, and drives settlement.
// Plaintext amounts never pass through this package.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/internal/storage"
	"github.com/sagardabas0007/private-markets/pkg/types"
)

// AggregateNotifier receives the fresh aggregate for a market after a
// write changes it. Implementations must not block.
type AggregateNotifier interface {
	NotifyAggregate(agg types.MarketAggregate)
}

// Ledger owns all encrypted position state. It is safe for concurrent
// use; every exported operation completes in bounded local time with no
// network calls inside the lock.
type Ledger struct {
	mu           sync.RWMutex
	byCommitment map[string]*types.EncryptedPosition
	byID         map[string]*types.EncryptedPosition
	byWallet     map[string][]string // wallet address -> position ids
	byMarket     map[string][]string // market address -> position ids

	logger   *zap.Logger
	journal  storage.Journal
	notifier AggregateNotifier
}

// Config holds ledger configuration.
type Config struct {
	Logger   *zap.Logger
	Journal  storage.Journal   // optional write-behind journal
	Notifier AggregateNotifier // optional aggregate stream
}

// New creates a new confidential position ledger.
func New(cfg *Config) *Ledger {
	return &Ledger{
		byCommitment: make(map[string]*types.EncryptedPosition),
		byID:         make(map[string]*types.EncryptedPosition),
		byWallet:     make(map[string][]string),
		byMarket:     make(map[string][]string),
		logger:       cfg.Logger,
		journal:      cfg.Journal,
		notifier:     cfg.Notifier,
	}
}

// SubmitParams describes an encrypted trade being submitted. The
// encrypted values arrive pre-produced by the encryption gateway; the
// ledger only checks their kind tags and stores the handles verbatim.
type SubmitParams struct {
	WalletAddress   string
	MarketAddress   string
	EncryptedAmount types.EncryptedValue
	EncryptedSide   types.EncryptedValue
	CommitmentHash  string
	SideHint        types.Side
}

// validate checks caller-supplied fields before touching any state.
func (p *SubmitParams) validate() error {
	if p.WalletAddress == "" || p.MarketAddress == "" {
		return fmt.Errorf("wallet and market addresses are required")
	}
	if p.CommitmentHash == "" {
		return fmt.Errorf("commitment hash is required")
	}
	if err := p.EncryptedAmount.Validate(types.KindAmount); err != nil {
		return fmt.Errorf("encrypted amount: %w", err)
	}
	if err := p.EncryptedSide.Validate(types.KindSide); err != nil {
		return fmt.Errorf("encrypted side: %w", err)
	}
	if !p.SideHint.Valid() {
		return fmt.Errorf("side hint must be Yes or No, got %q", p.SideHint)
	}
	return nil
}

// SubmitPosition accepts an encrypted trade and stores it as a confirmed
// position. The duplicate check and the insert happen under a single
// lock acquisition, so two concurrent submissions of the same commitment
// hash cannot both succeed. Returns the ledger-assigned position id.
func (l *Ledger) SubmitPosition(ctx context.Context, params SubmitParams) (string, error) {
	if err := params.validate(); err != nil {
		SubmitRejectedTotal.WithLabelValues("invalid_input").Inc()
		return "", err
	}

	pos := &types.EncryptedPosition{
		ID:              uuid.New().String(),
		WalletAddress:   params.WalletAddress,
		MarketAddress:   params.MarketAddress,
		EncryptedAmount: params.EncryptedAmount,
		EncryptedSide:   params.EncryptedSide,
		CommitmentHash:  params.CommitmentHash,
		SubmittedAt:     time.Now().UTC(),
		Status:          types.StatusConfirmed,
		SideHint:        params.SideHint,
	}

	l.mu.Lock()
	if _, exists := l.byCommitment[params.CommitmentHash]; exists {
		l.mu.Unlock()
		SubmitRejectedTotal.WithLabelValues("duplicate_commitment").Inc()
		// Deliberately terse: the error must not reveal whose position the
		// hash collided with.
		return "", types.ErrDuplicateCommitment
	}

	l.byCommitment[params.CommitmentHash] = pos
	l.byID[pos.ID] = pos
	l.byWallet[pos.WalletAddress] = append(l.byWallet[pos.WalletAddress], pos.ID)
	l.byMarket[pos.MarketAddress] = append(l.byMarket[pos.MarketAddress], pos.ID)
	total := len(l.byID)
	l.mu.Unlock()

	PositionsSubmittedTotal.Inc()
	PositionsTracked.Set(float64(total))

	l.logger.Info("position-submitted",
		zap.String("position-id", pos.ID),
		zap.String("market-address", pos.MarketAddress),
		zap.String("commitment-hash", pos.CommitmentHash))

	l.appendToJournal(ctx, pos)
	l.publishAggregate(params.MarketAddress)

	return pos.ID, nil
}

// VerifyCommitment reports whether a commitment corresponds to a tracked
// position. Public and unauthenticated: the proof carries the market
// address and acceptance time only, never the wallet or the encrypted
// fields, for any input.
func (l *Ledger) VerifyCommitment(commitmentHash string) types.CommitmentProof {
	l.mu.RLock()
	pos, exists := l.byCommitment[commitmentHash]
	l.mu.RUnlock()

	if !exists {
		CommitmentChecksTotal.WithLabelValues("missing").Inc()
		return types.CommitmentProof{Exists: false}
	}

	CommitmentChecksTotal.WithLabelValues("found").Inc()

	submittedAt := pos.SubmittedAt
	return types.CommitmentProof{
		Exists:        true,
		MarketAddress: pos.MarketAddress,
		SubmittedAt:   &submittedAt,
	}
}

// GetWalletPositions returns every position indexed under the wallet,
// including the encrypted fields, which stay opaque without the wallet's
// decryption key. The caller is trusted to have already verified wallet
// ownership; authentication lives in the HTTP layer.
func (l *Ledger) GetWalletPositions(walletAddress string) []*types.EncryptedPosition {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := l.byWallet[walletAddress]
	positions := make([]*types.EncryptedPosition, 0, len(ids))
	for _, id := range ids {
		positions = append(positions, l.byID[id].Clone())
	}

	return positions
}

// GetMarketAggregate recomputes market sentiment from scratch over the
// non-settled positions for a market, under a consistent snapshot. Total
// function: an unknown market yields the empty 0.5/0.5 aggregate.
func (l *Ledger) GetMarketAggregate(marketAddress string) types.MarketAggregate {
	timer := prometheus.NewTimer(AggregateComputeDuration)
	defer timer.ObserveDuration()

	l.mu.RLock()
	var yes, no int
	for _, id := range l.byMarket[marketAddress] {
		pos := l.byID[id]
		if pos.Status == types.StatusSettled {
			continue
		}
		if pos.SideHint == types.SideYes {
			yes++
		} else {
			no++
		}
	}
	l.mu.RUnlock()

	return buildAggregate(marketAddress, yes, no)
}

// buildAggregate assembles an aggregate, defaulting probabilities to
// 0.5/0.5 for an empty market so they always sum to 1.
func buildAggregate(marketAddress string, yes, no int) types.MarketAggregate {
	total := yes + no
	agg := types.MarketAggregate{
		MarketAddress:           marketAddress,
		TotalPositions:          total,
		YesPositions:            yes,
		NoPositions:             no,
		EstimatedYesProbability: 0.5,
		EstimatedNoProbability:  0.5,
		LastUpdated:             time.Now().UTC(),
	}
	if total > 0 {
		agg.EstimatedYesProbability = float64(yes) / float64(total)
		agg.EstimatedNoProbability = float64(no) / float64(total)
	}
	return agg
}

// appendToJournal writes a position to the journal, if configured.
// Journal failures are logged and swallowed: the in-memory ledger is the
// source of truth and persistence is write-behind.
func (l *Ledger) appendToJournal(ctx context.Context, pos *types.EncryptedPosition) {
	if l.journal == nil {
		return
	}
	err := l.journal.AppendPosition(ctx, pos.Clone())
	if err != nil {
		JournalErrorsTotal.Inc()
		l.logger.Error("journal-append-position-failed",
			zap.Error(err),
			zap.String("position-id", pos.ID))
	}
}

// publishAggregate pushes the fresh aggregate for a market to the
// notifier, if configured.
func (l *Ledger) publishAggregate(marketAddress string) {
	if l.notifier == nil {
		return
	}
	l.notifier.NotifyAggregate(l.GetMarketAggregate(marketAddress))
}
