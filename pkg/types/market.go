package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ResolutionState enumerates the winning-outcome variants the external
// indexer reports. Modeled as an explicit tagged variant so the
// reconciliation layer gets exhaustive handling instead of an ad hoc
// object shape.
type ResolutionState string

const (
	ResolutionUnresolved ResolutionState = "unresolved"
	ResolutionResolved   ResolutionState = "resolved"
)

// Resolution is the winning outcome of a market: either unresolved or
// resolved to a specific side.
type Resolution struct {
	State   ResolutionState `json:"state"`
	Outcome Side            `json:"outcome,omitempty"`
}

// Unresolved returns the unresolved variant.
func Unresolved() Resolution {
	return Resolution{State: ResolutionUnresolved}
}

// ResolvedTo returns the resolved variant for a side.
func ResolvedTo(s Side) Resolution {
	return Resolution{State: ResolutionResolved, Outcome: s}
}

// resolutionWire mirrors the indexer's option-style encoding:
// {"none":{}} for unresolved, {"some":["Yes"]} (or an outcome index)
// for resolved.
type resolutionWire struct {
	None *struct{}         `json:"none,omitempty"`
	Some []json.RawMessage `json:"some,omitempty"`
}

// UnmarshalJSON accepts null, the {"none":{}} form, and the
// {"some":[...]} form with either a string side or a numeric outcome
// index (0 = Yes, 1 = No).
func (r *Resolution) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Unresolved()
		return nil
	}

	var wire resolutionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal resolution: %w", err)
	}

	if len(wire.Some) == 0 {
		*r = Unresolved()
		return nil
	}

	var asString string
	if err := json.Unmarshal(wire.Some[0], &asString); err == nil {
		side, err := ParseSide(asString)
		if err != nil {
			return fmt.Errorf("resolution outcome: %w", err)
		}
		*r = ResolvedTo(side)
		return nil
	}

	var asIndex int
	if err := json.Unmarshal(wire.Some[0], &asIndex); err != nil {
		return fmt.Errorf("resolution outcome: expected side string or index, got %s", wire.Some[0])
	}
	switch asIndex {
	case 0:
		*r = ResolvedTo(SideYes)
	case 1:
		*r = ResolvedTo(SideNo)
	default:
		return fmt.Errorf("resolution outcome: index %d out of range", asIndex)
	}
	return nil
}

// MarshalJSON emits the indexer's option-style encoding so merged local
// markets are indistinguishable from indexed ones on the wire.
func (r Resolution) MarshalJSON() ([]byte, error) {
	if r.State == ResolutionResolved {
		return json.Marshal(resolutionWire{Some: []json.RawMessage{
			json.RawMessage(fmt.Sprintf("%q", r.Outcome)),
		}})
	}
	return json.Marshal(resolutionWire{None: &struct{}{}})
}

// MarketAccount holds the on-chain fields of an indexed market.
type MarketAccount struct {
	Question         string     `json:"question"`
	Creator          string     `json:"creator"`
	CollateralMint   string     `json:"collateralMint"`
	InitialLiquidity string     `json:"initialLiquidity"` // base units as decimal string
	EndTime          int64      `json:"endTime"`          // unix seconds
	CreatedAt        int64      `json:"createdAt"`        // unix seconds
	IsCustomOracle   bool       `json:"isCustomOracle"`
	OracleAddress    string     `json:"oracleAddress,omitempty"`
	WinningOutcome   Resolution `json:"winningOutcome"`
	YesProbability   float64    `json:"yesProbability"`
	NoProbability    float64    `json:"noProbability"`
}

// Market is the external indexer's representation of a market. The
// reconciliation layer converts locally tracked markets to this schema
// before merging so consumers see a single shape.
type Market struct {
	PublicKey string        `json:"publicKey"`
	Account   MarketAccount `json:"account"`
}

// TrackedMarket is a market created through this system, registered
// locally so it is visible and tradeable before the external indexer
// has observed its creation transaction. Never deleted.
type TrackedMarket struct {
	PublicKey            string    `json:"public_key"`
	Question             string    `json:"question"`
	Creator              string    `json:"creator"`
	CollateralMint       string    `json:"collateral_mint"`
	InitialLiquidity     string    `json:"initial_liquidity"` // UI amount, e.g. "100.5"
	EndTime              time.Time `json:"end_time"`
	CreatedAt            time.Time `json:"created_at"`
	TransactionSignature string    `json:"transaction_signature"`
	IsCustomOracle       bool      `json:"is_custom_oracle"`
	OracleAddress        string    `json:"oracle_address,omitempty"`
	YesProbability       float64   `json:"yes_probability"`
	NoProbability        float64   `json:"no_probability"`
}
