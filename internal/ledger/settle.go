package ledger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// SettleMarket transitions every confirmed position for the market to
// settled, classifying winners by side hint. Idempotent: positions
// already settled are skipped, so a second call reports zero counts.
// A market with no positions settles trivially with zero counts.
//
// Each position transitions fully under the write lock (status plus
// settlement record together); readers never observe a position that is
// half settled.
func (l *Ledger) SettleMarket(ctx context.Context, marketAddress string, outcome types.Side) (types.SettlementSummary, error) {
	if !outcome.Valid() {
		return types.SettlementSummary{}, fmt.Errorf("settlement outcome must be Yes or No, got %q", outcome)
	}

	settledAt := time.Now().UTC()
	summary := types.SettlementSummary{
		MarketAddress: marketAddress,
		Outcome:       outcome,
	}

	type settledEntry struct {
		id     string
		record types.SettlementRecord
	}
	var settled []settledEntry

	l.mu.Lock()
	for _, id := range l.byMarket[marketAddress] {
		pos := l.byID[id]
		if !pos.Status.CanTransitionTo(types.StatusSettled) {
			continue
		}

		won := pos.SideHint == outcome
		pos.Status = types.StatusSettled
		pos.Settlement = &types.SettlementRecord{
			Won:       won,
			Outcome:   outcome,
			SettledAt: settledAt,
			// DecryptedAmount and Payout stay empty until the external
			// decryption flow fills them in.
		}

		summary.SettledCount++
		if won {
			summary.WinningCount++
		} else {
			summary.LosingCount++
		}
		settled = append(settled, settledEntry{id: pos.ID, record: *pos.Settlement})
	}
	l.mu.Unlock()

	PositionsSettledTotal.Add(float64(summary.SettledCount))

	l.logger.Info("market-settled",
		zap.String("market-address", marketAddress),
		zap.String("outcome", string(outcome)),
		zap.Int("settled-count", summary.SettledCount),
		zap.Int("winning-count", summary.WinningCount),
		zap.Int("losing-count", summary.LosingCount))

	if l.journal != nil {
		for _, entry := range settled {
			record := entry.record
			err := l.journal.AppendSettlement(ctx, entry.id, &record)
			if err != nil {
				JournalErrorsTotal.Inc()
				l.logger.Error("journal-append-settlement-failed",
					zap.Error(err),
					zap.String("position-id", entry.id))
			}
		}
	}

	if summary.SettledCount > 0 {
		l.publishAggregate(marketAddress)
	}

	return summary, nil
}

// FillSettlement records the plaintext result supplied by the external
// decryption flow for an already-settled position. The ledger stores
// these values verbatim; it never decrypts or computes them itself.
func (l *Ledger) FillSettlement(positionID, decryptedAmount, payout, attestationSig string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, exists := l.byID[positionID]
	if !exists {
		return types.ErrPositionNotFound
	}
	if pos.Status != types.StatusSettled || pos.Settlement == nil {
		return types.ErrPositionNotSettled
	}

	pos.Settlement.DecryptedAmount = decryptedAmount
	pos.Settlement.Payout = payout
	pos.Settlement.AttestationSig = attestationSig

	SettlementsFilledTotal.Inc()

	l.logger.Info("settlement-filled",
		zap.String("position-id", positionID))

	return nil
}
