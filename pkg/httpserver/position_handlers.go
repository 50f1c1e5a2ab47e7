package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/internal/gateway"
	"github.com/sagardabas0007/private-markets/internal/ledger"
	"github.com/sagardabas0007/private-markets/pkg/types"
)

// positionHandler serves the position-scoped routes.
type positionHandler struct {
	ledger   *ledger.Ledger
	verifier *gateway.Verifier
	logger   *zap.Logger
}

func newPositionHandler(l *ledger.Ledger, v *gateway.Verifier, logger *zap.Logger) *positionHandler {
	return &positionHandler{
		ledger:   l,
		verifier: v,
		logger:   logger,
	}
}

// SubmitRequest is the body of POST /api/positions.
type SubmitRequest struct {
	WalletAddress   string               `json:"wallet_address"`
	MarketAddress   string               `json:"market_address"`
	EncryptedAmount types.EncryptedValue `json:"encrypted_amount"`
	EncryptedSide   types.EncryptedValue `json:"encrypted_side"`
	CommitmentHash  string               `json:"commitment_hash"`
	SideHint        string               `json:"side_hint"`
}

// SubmitResponse carries the ledger-assigned position id.
type SubmitResponse struct {
	PositionID string `json:"position_id"`
}

func (h *positionHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sideHint, err := types.ParseSide(req.SideHint)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.ledger.SubmitPosition(r.Context(), ledger.SubmitParams{
		WalletAddress:   req.WalletAddress,
		MarketAddress:   req.MarketAddress,
		EncryptedAmount: req.EncryptedAmount,
		EncryptedSide:   req.EncryptedSide,
		CommitmentHash:  req.CommitmentHash,
		SideHint:        sideHint,
	})
	if err != nil {
		switch {
		case errors.Is(err, types.ErrDuplicateCommitment):
			// 409 with the bare error only: no wallet, no market.
			writeError(w, err.Error(), http.StatusConflict)
		default:
			writeError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	writeJSON(w, http.StatusCreated, SubmitResponse{PositionID: id})
}

func (h *positionHandler) handleVerifyCommitment(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	// Total function: an unknown hash is a valid answer, not an error.
	proof := h.ledger.VerifyCommitment(hash)
	writeJSON(w, http.StatusOK, proof)
}

func (h *positionHandler) handleWalletPositions(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	positions := h.ledger.GetWalletPositions(address)
	writeJSON(w, http.StatusOK, positions)
}

// FillSettlementRequest is the body of POST /api/positions/{id}/settlement.
// The plaintext comes from the external decryption flow; the attestation
// signature proves the gateway produced it.
type FillSettlementRequest struct {
	DecryptedAmount string `json:"decrypted_amount"`
	Payout          string `json:"payout"`
	AttestationSig  string `json:"attestation_sig"`
}

func (h *positionHandler) handleFillSettlement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req FillSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if h.verifier == nil {
		writeError(w, "settlement fill-in unavailable: no gateway address configured", http.StatusServiceUnavailable)
		return
	}

	err := h.verifier.VerifyAttestation(id, req.DecryptedAmount, req.Payout, req.AttestationSig)
	if err != nil {
		writeError(w, "invalid attestation", http.StatusUnauthorized)
		return
	}

	err = h.ledger.FillSettlement(id, req.DecryptedAmount, req.Payout, req.AttestationSig)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrPositionNotFound):
			writeError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, types.ErrPositionNotSettled):
			writeError(w, err.Error(), http.StatusConflict)
		default:
			writeError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "filled"})
}
