package indexer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/cache"
	"github.com/sagardabas0007/private-markets/pkg/types"
)

const marketsJSON = `[
	{
		"publicKey": "indexed-1",
		"account": {
			"question": "Will ETH flip BTC?",
			"creator": "creator-1",
			"collateralMint": "mint-usdc",
			"initialLiquidity": "100000000",
			"endTime": 1800000000,
			"createdAt": 1700000000,
			"winningOutcome": {"none": {}},
			"yesProbability": 0.42,
			"noProbability": 0.58
		}
	},
	{
		"publicKey": "indexed-2",
		"account": {
			"question": "Resolved market",
			"winningOutcome": {"some": ["Yes"]}
		}
	}
]`

func TestClient_FetchMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Accept header = %q", accept)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(marketsJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	markets, err := client.FetchMarkets(context.Background())
	if err != nil {
		t.Fatalf("FetchMarkets: %v", err)
	}

	if len(markets) != 2 {
		t.Fatalf("markets = %d, want 2", len(markets))
	}

	first := markets[0]
	if first.PublicKey != "indexed-1" || first.Account.Question != "Will ETH flip BTC?" {
		t.Errorf("first market = %+v", first)
	}
	if first.Account.WinningOutcome.State != types.ResolutionUnresolved {
		t.Error("first market should be unresolved")
	}

	second := markets[1]
	if second.Account.WinningOutcome.State != types.ResolutionResolved ||
		second.Account.WinningOutcome.Outcome != types.SideYes {
		t.Errorf("second market resolution = %+v", second.Account.WinningOutcome)
	}
}

func TestClient_FetchMarkets_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "indexer down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.FetchMarkets(context.Background())
	if err == nil {
		t.Error("expected error on 502 response")
	}
}

func TestClient_FetchMarkets_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.FetchMarkets(context.Background())
	if err == nil {
		t.Error("expected unmarshal error")
	}
}

func newTestService(t *testing.T, serverURL string) *Service {
	t.Helper()

	c, err := cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	t.Cleanup(c.Close)

	return New(&Config{
		Client:       NewClient(serverURL, zap.NewNop()),
		Cache:        c,
		PollInterval: 10 * time.Millisecond,
		SnapshotTTL:  time.Minute,
		Logger:       zap.NewNop(),
	})
}

func TestService_MarketsFallsBackToDirectFetch(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(marketsJSON))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	// Cold cache: Markets fetches directly.
	markets := svc.Markets(context.Background())
	if len(markets) != 2 {
		t.Fatalf("markets = %d, want 2", len(markets))
	}
	if calls != 1 {
		t.Errorf("indexer calls = %d, want 1", calls)
	}
}

func TestService_MarketsEmptyWhenIndexerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	markets := svc.Markets(context.Background())
	if len(markets) != 0 {
		t.Errorf("markets = %d, want 0 when indexer is down", len(markets))
	}
}

func TestService_RunPollsAndStops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(marketsJSON))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := svc.Run(ctx)
	if err != context.DeadlineExceeded {
		t.Errorf("Run returned %v, want context deadline", err)
	}

	// The poll populated the snapshot; Markets serves it without a fetch.
	markets := svc.Markets(context.Background())
	if len(markets) != 2 {
		t.Errorf("cached markets = %d, want 2", len(markets))
	}
}
