// Package register tracks markets created through this system before the
// external indexer has observed them, so a creator sees their market
// immediately. Tracked markets live for the life of the process and are
// never deleted.
package register

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// Register owns the set of locally created markets, keyed by public key.
type Register struct {
	mu      sync.RWMutex
	markets map[string]*types.TrackedMarket
	order   []string // public keys in insertion order

	logger *zap.Logger
}

// Config holds register configuration.
type Config struct {
	Logger *zap.Logger
}

// New creates a new market register.
func New(cfg *Config) *Register {
	return &Register{
		markets: make(map[string]*types.TrackedMarket),
		logger:  cfg.Logger,
	}
}

// TrackParams describes a freshly created market. The creation workflow
// calls Track exactly once, immediately after the creation transaction is
// accepted.
type TrackParams struct {
	PublicKey            string
	Question             string
	Creator              string
	CollateralMint       string
	InitialLiquidity     string
	EndTime              time.Time
	TransactionSignature string
	IsCustomOracle       bool
	OracleAddress        string
}

// Track stores a newly created market. A fresh market starts at even
// odds. Returns ErrMarketAlreadyTracked if the public key is known.
func (r *Register) Track(params TrackParams) (*types.TrackedMarket, error) {
	market := &types.TrackedMarket{
		PublicKey:            params.PublicKey,
		Question:             params.Question,
		Creator:              params.Creator,
		CollateralMint:       params.CollateralMint,
		InitialLiquidity:     params.InitialLiquidity,
		EndTime:              params.EndTime,
		CreatedAt:            time.Now().UTC(),
		TransactionSignature: params.TransactionSignature,
		IsCustomOracle:       params.IsCustomOracle,
		OracleAddress:        params.OracleAddress,
		YesProbability:       0.5,
		NoProbability:        0.5,
	}

	r.mu.Lock()
	if _, exists := r.markets[params.PublicKey]; exists {
		r.mu.Unlock()
		return nil, types.ErrMarketAlreadyTracked
	}
	r.markets[params.PublicKey] = market
	r.order = append(r.order, params.PublicKey)
	total := len(r.markets)
	r.mu.Unlock()

	MarketsTracked.Set(float64(total))
	MarketsTrackedTotal.Inc()

	r.logger.Info("market-tracked",
		zap.String("public-key", market.PublicKey),
		zap.String("question", market.Question),
		zap.String("transaction-signature", market.TransactionSignature))

	cp := *market
	return &cp, nil
}

// IsTracked reports whether a market public key is locally tracked.
func (r *Register) IsTracked(publicKey string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.markets[publicKey]
	return exists
}

// Get returns a tracked market by public key.
func (r *Register) Get(publicKey string) (*types.TrackedMarket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	market, exists := r.markets[publicKey]
	if !exists {
		return nil, false
	}

	cp := *market
	return &cp, true
}

// All returns every tracked market in insertion order, as copies.
func (r *Register) All() []types.TrackedMarket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]types.TrackedMarket, 0, len(r.order))
	for _, pk := range r.order {
		all = append(all, *r.markets[pk])
	}

	return all
}
