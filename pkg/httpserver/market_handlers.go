package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/internal/indexer"
	"github.com/sagardabas0007/private-markets/internal/ledger"
	"github.com/sagardabas0007/private-markets/internal/reconcile"
	"github.com/sagardabas0007/private-markets/internal/register"
	"github.com/sagardabas0007/private-markets/pkg/types"
)

// marketHandler serves the market-scoped routes.
type marketHandler struct {
	ledger   *ledger.Ledger
	register *register.Register
	merger   *reconcile.Merger
	indexer  *indexer.Service
	logger   *zap.Logger
}

func newMarketHandler(l *ledger.Ledger, reg *register.Register, m *reconcile.Merger, idx *indexer.Service, logger *zap.Logger) *marketHandler {
	return &marketHandler{
		ledger:   l,
		register: reg,
		merger:   m,
		indexer:  idx,
		logger:   logger,
	}
}

// CreateMarketRequest is the body of POST /api/markets, sent by the
// creation workflow right after the creation transaction is accepted.
type CreateMarketRequest struct {
	PublicKey            string `json:"public_key"`
	Question             string `json:"question"`
	Creator              string `json:"creator"`
	CollateralMint       string `json:"collateral_mint"`
	InitialLiquidity     string `json:"initial_liquidity"`
	EndTime              int64  `json:"end_time"` // unix seconds
	TransactionSignature string `json:"transaction_signature"`
	IsCustomOracle       bool   `json:"is_custom_oracle"`
	OracleAddress        string `json:"oracle_address,omitempty"`
}

func (h *marketHandler) handleCreateMarket(w http.ResponseWriter, r *http.Request) {
	var req CreateMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.PublicKey == "" || req.Question == "" || req.TransactionSignature == "" {
		writeError(w, "public_key, question, and transaction_signature are required", http.StatusBadRequest)
		return
	}

	market, err := h.register.Track(register.TrackParams{
		PublicKey:            req.PublicKey,
		Question:             req.Question,
		Creator:              req.Creator,
		CollateralMint:       req.CollateralMint,
		InitialLiquidity:     req.InitialLiquidity,
		EndTime:              time.Unix(req.EndTime, 0).UTC(),
		TransactionSignature: req.TransactionSignature,
		IsCustomOracle:       req.IsCustomOracle,
		OracleAddress:        req.OracleAddress,
	})
	if err != nil {
		if errors.Is(err, types.ErrMarketAlreadyTracked) {
			writeError(w, err.Error(), http.StatusConflict)
			return
		}
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, market)
}

func (h *marketHandler) handleListMarkets(w http.ResponseWriter, r *http.Request) {
	external := h.indexer.Markets(r.Context())
	merged := h.merger.Merge(external)

	writeJSON(w, http.StatusOK, merged)
}

func (h *marketHandler) handleAggregate(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	// Total function: an unknown market yields the empty default.
	agg := h.ledger.GetMarketAggregate(address)
	writeJSON(w, http.StatusOK, agg)
}

// SettleRequest is the body of POST /api/markets/{address}/settle.
type SettleRequest struct {
	Outcome string `json:"outcome"`
}

func (h *marketHandler) handleSettle(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	outcome, err := types.ParseSide(req.Outcome)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.ledger.SettleMarket(r.Context(), address, outcome)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
