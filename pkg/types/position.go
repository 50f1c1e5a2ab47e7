package types

import "time"

// PositionStatus is the lifecycle state of an encrypted position.
// Transitions are monotonic: Pending -> Confirmed -> Settled.
type PositionStatus string

const (
	StatusPending   PositionStatus = "pending"
	StatusConfirmed PositionStatus = "confirmed"
	StatusSettled   PositionStatus = "settled"
)

// CanTransitionTo reports whether moving to next is a forward transition.
func (s PositionStatus) CanTransitionTo(next PositionStatus) bool {
	order := map[PositionStatus]int{
		StatusPending:   0,
		StatusConfirmed: 1,
		StatusSettled:   2,
	}
	cur, ok := order[s]
	if !ok {
		return false
	}
	nxt, ok := order[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// SettlementRecord is stamped on a position when its market resolves.
// DecryptedAmount and Payout start empty and are filled in exclusively by
// the external decryption flow; the ledger never computes them.
type SettlementRecord struct {
	Won             bool      `json:"won"`
	Outcome         Side      `json:"outcome"`
	SettledAt       time.Time `json:"settled_at"`
	DecryptedAmount string    `json:"decrypted_amount,omitempty"`
	Payout          string    `json:"payout,omitempty"`
	AttestationSig  string    `json:"attestation_sig,omitempty"`
}

// EncryptedPosition is the atomic unit of the confidential ledger. After
// insertion only Status and Settlement may change, and only forward; the
// encrypted fields and the commitment hash are immutable.
type EncryptedPosition struct {
	ID              string            `json:"id"`
	WalletAddress   string            `json:"wallet_address"`
	MarketAddress   string            `json:"market_address"`
	EncryptedAmount EncryptedValue    `json:"encrypted_amount"`
	EncryptedSide   EncryptedValue    `json:"encrypted_side"`
	CommitmentHash  string            `json:"commitment_hash"`
	SubmittedAt     time.Time         `json:"submitted_at"`
	Status          PositionStatus    `json:"status"`
	SideHint        Side              `json:"side_hint"`
	Settlement      *SettlementRecord `json:"settlement,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate ledger state.
func (p *EncryptedPosition) Clone() *EncryptedPosition {
	cp := *p
	if p.Settlement != nil {
		rec := *p.Settlement
		cp.Settlement = &rec
	}
	return &cp
}

// MarketAggregate is market-level sentiment derived from the non-settled
// positions for a market. It is recomputed on demand, never stored.
// Invariant: YesPositions + NoPositions == TotalPositions and the
// probabilities sum to 1, defaulting to 0.5/0.5 when the market is empty.
type MarketAggregate struct {
	MarketAddress           string    `json:"market_address"`
	TotalPositions          int       `json:"total_positions"`
	YesPositions            int       `json:"yes_positions"`
	NoPositions             int       `json:"no_positions"`
	EstimatedYesProbability float64   `json:"estimated_yes_probability"`
	EstimatedNoProbability  float64   `json:"estimated_no_probability"`
	LastUpdated             time.Time `json:"last_updated"`
}

// CommitmentProof is the public answer to "does this commitment exist".
// It deliberately omits the wallet address and both encrypted fields;
// this is the privacy boundary, enforced structurally by the type.
type CommitmentProof struct {
	Exists        bool       `json:"exists"`
	MarketAddress string     `json:"market_address,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

// SettlementSummary reports the outcome of settling a market.
type SettlementSummary struct {
	MarketAddress string `json:"market_address"`
	Outcome       Side   `json:"outcome"`
	SettledCount  int    `json:"settled_count"`
	WinningCount  int    `json:"winning_count"`
	LosingCount   int    `json:"losing_count"`
}
