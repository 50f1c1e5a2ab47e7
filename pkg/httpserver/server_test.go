package httpserver

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/internal/gateway"
	"github.com/sagardabas0007/private-markets/internal/indexer"
	"github.com/sagardabas0007/private-markets/internal/ledger"
	"github.com/sagardabas0007/private-markets/internal/reconcile"
	"github.com/sagardabas0007/private-markets/internal/register"
	"github.com/sagardabas0007/private-markets/pkg/healthprobe"
	"github.com/sagardabas0007/private-markets/pkg/types"
	"github.com/sagardabas0007/private-markets/pkg/walletauth"
)

const testAdminToken = "test-admin-token"

type testEnv struct {
	server      *Server
	ledger      *ledger.Ledger
	register    *register.Register
	gatewayPriv string
}

func newTestEnv(t *testing.T, indexedMarkets string) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	indexerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(indexedMarkets))
	}))
	t.Cleanup(indexerSrv.Close)

	gatewayKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate gateway key: %v", err)
	}
	gatewayAddr := crypto.PubkeyToAddress(gatewayKey.PublicKey).Hex()
	gatewayPriv := "0x" + hex.EncodeToString(crypto.FromECDSA(gatewayKey))

	led := ledger.New(&ledger.Config{Logger: logger})
	reg := register.New(&register.Config{Logger: logger})

	health := healthprobe.New()

	srv := New(&Config{
		Port:          "0",
		Logger:        logger,
		HealthChecker: health,
		Ledger:        led,
		Register:      reg,
		Merger:        reconcile.New(&reconcile.Config{Tracked: reg, Logger: logger}),
		Indexer: indexer.New(&indexer.Config{
			Client:       indexer.NewClient(indexerSrv.URL, logger),
			PollInterval: time.Minute,
			SnapshotTTL:  time.Minute,
			Logger:       logger,
		}),
		Verifier: gateway.NewVerifier(&gateway.Config{
			GatewayAddress: gatewayAddr,
			Logger:         logger,
		}),
		AdminToken: testAdminToken,
	})

	return &testEnv{
		server:      srv,
		ledger:      led,
		register:    reg,
		gatewayPriv: gatewayPriv,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func submitBody(wallet, market, hash, hint string) SubmitRequest {
	now := time.Now()
	return SubmitRequest{
		WalletAddress: wallet,
		MarketAddress: market,
		EncryptedAmount: types.EncryptedValue{
			Handle: "enc:amount:" + hash, ProducedAt: now, Kind: types.KindAmount,
		},
		EncryptedSide: types.EncryptedValue{
			Handle: "enc:side:" + hash, ProducedAt: now, Kind: types.KindSide,
		},
		CommitmentHash: hash,
		SideHint:       hint,
	}
}

func TestSubmitPosition_Endpoint(t *testing.T) {
	env := newTestEnv(t, "[]")

	rec := env.do(t, http.MethodPost, "/api/positions", submitBody("wallet-a", "M1", "0x01", "Yes"), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp SubmitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.PositionID == "" {
		t.Fatalf("response = %s, err %v", rec.Body.String(), err)
	}

	// Duplicate commitment: 409, and the body must not mention the
	// original wallet or market.
	rec = env.do(t, http.MethodPost, "/api/positions", submitBody("wallet-b", "M2", "0x01", "No"), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("wallet-a")) || bytes.Contains(rec.Body.Bytes(), []byte("M1")) {
		t.Errorf("duplicate error leaked existing position details: %s", rec.Body.String())
	}
}

func TestSubmitPosition_KindMismatch(t *testing.T) {
	env := newTestEnv(t, "[]")

	body := submitBody("wallet-a", "M1", "0x01", "Yes")
	body.EncryptedAmount.Kind = types.KindSide

	rec := env.do(t, http.MethodPost, "/api/positions", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVerifyCommitment_Endpoint(t *testing.T) {
	env := newTestEnv(t, "[]")

	env.do(t, http.MethodPost, "/api/positions", submitBody("wallet-a", "M1", "0xfeed", "Yes"), nil)

	rec := env.do(t, http.MethodGet, "/api/commitments/0xfeed", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var proof types.CommitmentProof
	if err := json.Unmarshal(rec.Body.Bytes(), &proof); err != nil {
		t.Fatalf("unmarshal proof: %v", err)
	}
	if !proof.Exists || proof.MarketAddress != "M1" {
		t.Errorf("proof = %+v", proof)
	}

	// Privacy: the raw body must not contain wallet or handle material.
	for _, secret := range []string{"wallet-a", "enc:amount", "enc:side"} {
		if bytes.Contains(rec.Body.Bytes(), []byte(secret)) {
			t.Errorf("proof body leaked %q: %s", secret, rec.Body.String())
		}
	}

	// Unknown hash: still 200, exists=false.
	rec = env.do(t, http.MethodGet, "/api/commitments/0xunknown", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("unknown hash status = %d, want 200", rec.Code)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &proof)
	if proof.Exists {
		t.Error("unknown hash reported as existing")
	}
}

func TestWalletPositions_RequiresSignature(t *testing.T) {
	env := newTestEnv(t, "[]")

	key, _ := crypto.GenerateKey()
	priv := "0x" + hex.EncodeToString(crypto.FromECDSA(key))
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	env.do(t, http.MethodPost, "/api/positions", submitBody(wallet, "M1", "0x01", "Yes"), nil)

	path := "/api/wallets/" + wallet + "/positions"

	// No headers: 401.
	rec := env.do(t, http.MethodGet, path, nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rec.Code)
	}

	// Valid signed message naming the wallet: 200 with encrypted fields.
	message := "list positions for " + wallet
	sig, err := walletauth.SignMessage(message, priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec = env.do(t, http.MethodGet, path, nil, map[string]string{
		HeaderWalletMessage:   message,
		HeaderWalletSignature: sig,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d, body %s", rec.Code, rec.Body.String())
	}

	var positions []types.EncryptedPosition
	if err := json.Unmarshal(rec.Body.Bytes(), &positions); err != nil || len(positions) != 1 {
		t.Fatalf("positions = %s", rec.Body.String())
	}
	if positions[0].EncryptedAmount.Handle == "" {
		t.Error("owner view should include encrypted handles")
	}

	// A signature from a different key: 401.
	otherKey, _ := crypto.GenerateKey()
	otherPriv := "0x" + hex.EncodeToString(crypto.FromECDSA(otherKey))
	forged, _ := walletauth.SignMessage(message, otherPriv)

	rec = env.do(t, http.MethodGet, path, nil, map[string]string{
		HeaderWalletMessage:   message,
		HeaderWalletSignature: forged,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("forged signature status = %d, want 401", rec.Code)
	}
}

func TestAggregateAndSettle_Scenario(t *testing.T) {
	env := newTestEnv(t, "[]")

	// Three positions on M1: Yes, Yes, No.
	for i, hint := range []string{"Yes", "Yes", "No"} {
		hash := fmt.Sprintf("0x%02d", i)
		rec := env.do(t, http.MethodPost, "/api/positions", submitBody("wallet-a", "M1", hash, hint), nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit %d status = %d", i, rec.Code)
		}
	}

	var agg types.MarketAggregate
	rec := env.do(t, http.MethodGet, "/api/markets/M1/aggregate", nil, nil)
	_ = json.Unmarshal(rec.Body.Bytes(), &agg)
	if agg.TotalPositions != 3 || agg.YesPositions != 2 || agg.NoPositions != 1 {
		t.Fatalf("aggregate = %+v, want 3/2/1", agg)
	}

	// Settle without a token: 401.
	rec = env.do(t, http.MethodPost, "/api/markets/M1/settle", SettleRequest{Outcome: "Yes"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated settle status = %d, want 401", rec.Code)
	}

	adminHeaders := map[string]string{"Authorization": "Bearer " + testAdminToken}

	rec = env.do(t, http.MethodPost, "/api/markets/M1/settle", SettleRequest{Outcome: "Yes"}, adminHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("settle status = %d, body %s", rec.Code, rec.Body.String())
	}

	var summary types.SettlementSummary
	_ = json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.SettledCount != 3 || summary.WinningCount != 2 || summary.LosingCount != 1 {
		t.Errorf("summary = %+v, want 3/2/1", summary)
	}

	// Settled positions drop out of the aggregate.
	rec = env.do(t, http.MethodGet, "/api/markets/M1/aggregate", nil, nil)
	_ = json.Unmarshal(rec.Body.Bytes(), &agg)
	if agg.TotalPositions != 0 || agg.EstimatedYesProbability != 0.5 {
		t.Errorf("post-settlement aggregate = %+v", agg)
	}

	// Second settle is idempotent.
	rec = env.do(t, http.MethodPost, "/api/markets/M1/settle", SettleRequest{Outcome: "Yes"}, adminHeaders)
	_ = json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.SettledCount != 0 {
		t.Errorf("second settle count = %d, want 0", summary.SettledCount)
	}
}

func TestCreateAndListMarkets(t *testing.T) {
	indexed := `[
		{"publicKey": "ext-1", "account": {"question": "indexed", "winningOutcome": {"none": {}}}},
		{"publicKey": "local-1", "account": {"question": "stale copy", "winningOutcome": {"none": {}}}}
	]`
	env := newTestEnv(t, indexed)

	create := CreateMarketRequest{
		PublicKey:            "local-1",
		Question:             "Will it rain?",
		Creator:              "creator-1",
		CollateralMint:       "mint-usdc",
		InitialLiquidity:     "100.5",
		EndTime:              time.Now().Add(24 * time.Hour).Unix(),
		TransactionSignature: "sig-1",
	}

	rec := env.do(t, http.MethodPost, "/api/markets", create, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Double create: 409.
	rec = env.do(t, http.MethodPost, "/api/markets", create, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("double create status = %d, want 409", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/markets", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var markets []types.Market
	if err := json.Unmarshal(rec.Body.Bytes(), &markets); err != nil {
		t.Fatalf("unmarshal markets: %v", err)
	}

	if len(markets) != 2 {
		t.Fatalf("markets = %d, want 2 (local-1 + ext-1, stale copy dropped)", len(markets))
	}
	if markets[0].PublicKey != "local-1" || markets[0].Account.Question != "Will it rain?" {
		t.Errorf("first market = %+v, want the local one", markets[0])
	}
	if markets[1].PublicKey != "ext-1" {
		t.Errorf("second market = %+v", markets[1])
	}
}

func TestFillSettlement_Endpoint(t *testing.T) {
	env := newTestEnv(t, "[]")

	rec := env.do(t, http.MethodPost, "/api/positions", submitBody("wallet-a", "M1", "0x01", "Yes"), nil)
	var submitResp SubmitResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &submitResp)

	env.do(t, http.MethodPost, "/api/markets/M1/settle", SettleRequest{Outcome: "Yes"},
		map[string]string{"Authorization": "Bearer " + testAdminToken})

	message := gateway.AttestationMessage(submitResp.PositionID, "42.5", "85.0")
	sig, err := walletauth.SignMessage(message, env.gatewayPriv)
	if err != nil {
		t.Fatalf("sign attestation: %v", err)
	}

	fill := FillSettlementRequest{DecryptedAmount: "42.5", Payout: "85.0", AttestationSig: sig}
	rec = env.do(t, http.MethodPost, "/api/positions/"+submitResp.PositionID+"/settlement", fill, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fill status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Tampered amount fails attestation.
	fill.DecryptedAmount = "999"
	rec = env.do(t, http.MethodPost, "/api/positions/"+submitResp.PositionID+"/settlement", fill, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("tampered fill status = %d, want 401", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t, "[]")

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}
