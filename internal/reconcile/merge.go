// Package reconcile merges locally tracked markets with the external
// indexer's market list into one consistent, duplicate-free view.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// CollateralDecimals is the base-unit scale of the collateral token.
// The external indexer reports liquidity in base units while the
// creation workflow records UI amounts.
const CollateralDecimals = 6

// TrackedSource is the register view the merger reads. Only reads; the
// merger never mutates register state.
type TrackedSource interface {
	All() []types.TrackedMarket
}

// Merger combines tracked and externally indexed markets.
type Merger struct {
	tracked TrackedSource
	logger  *zap.Logger
}

// Config holds merger configuration.
type Config struct {
	Tracked TrackedSource
	Logger  *zap.Logger
}

// New creates a new merger.
func New(cfg *Config) *Merger {
	return &Merger{
		tracked: cfg.Tracked,
		logger:  cfg.Logger,
	}
}

// Merge converts every tracked market to the external schema, drops
// external entries whose address collides with a tracked one, and
// returns tracked markets first. Local markets are authoritative for
// "markets I created": a stale or partial upstream entry never shadows
// or duplicates them, and the creator sees their market without
// scrolling past the indexed list.
func (m *Merger) Merge(external []types.Market) []types.Market {
	tracked := m.tracked.All()

	trackedAddrs := make(map[string]struct{}, len(tracked))
	merged := make([]types.Market, 0, len(tracked)+len(external))

	for i := range tracked {
		merged = append(merged, ToExternalSchema(&tracked[i]))
		trackedAddrs[tracked[i].PublicKey] = struct{}{}
	}

	var shadowed int
	for i := range external {
		if _, dup := trackedAddrs[external[i].PublicKey]; dup {
			shadowed++
			continue
		}
		merged = append(merged, external[i])
	}

	if shadowed > 0 {
		m.logger.Debug("external-duplicates-dropped",
			zap.Int("count", shadowed))
	}

	MarketsMergedTotal.Add(float64(len(merged)))

	return merged
}

// ToExternalSchema converts a tracked market to the indexer's market
// shape, normalizing the liquidity to base units and timestamps to unix
// seconds. Fresh local markets are always unresolved.
func ToExternalSchema(t *types.TrackedMarket) types.Market {
	return types.Market{
		PublicKey: t.PublicKey,
		Account: types.MarketAccount{
			Question:         t.Question,
			Creator:          t.Creator,
			CollateralMint:   t.CollateralMint,
			InitialLiquidity: toBaseUnits(t.InitialLiquidity),
			EndTime:          t.EndTime.Unix(),
			CreatedAt:        t.CreatedAt.Unix(),
			IsCustomOracle:   t.IsCustomOracle,
			OracleAddress:    t.OracleAddress,
			WinningOutcome:   types.Unresolved(),
			YesProbability:   t.YesProbability,
			NoProbability:    t.NoProbability,
		},
	}
}

// toBaseUnits converts a UI amount ("100.5") to an integer base-unit
// string ("100500000"). An unparseable amount maps to "0" rather than
// failing the whole listing.
func toBaseUnits(uiAmount string) string {
	d, err := decimal.NewFromString(uiAmount)
	if err != nil {
		return "0"
	}
	return d.Shift(CollateralDecimals).Truncate(0).String()
}

// FromBaseUnits converts an indexer base-unit string back to a UI
// amount. Used by consumers that render indexed liquidity.
func FromBaseUnits(baseUnits string) (string, error) {
	d, err := decimal.NewFromString(baseUnits)
	if err != nil {
		return "", fmt.Errorf("parse base units %q: %w", baseUnits, err)
	}
	return d.Shift(-CollateralDecimals).String(), nil
}
