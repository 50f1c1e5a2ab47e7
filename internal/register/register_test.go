package register

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

func newTestRegister() *Register {
	return New(&Config{Logger: zap.NewNop()})
}

func trackParams(pk string) TrackParams {
	return TrackParams{
		PublicKey:            pk,
		Question:             "Will it rain tomorrow?",
		Creator:              "creator-wallet",
		CollateralMint:       "mint-usdc",
		InitialLiquidity:     "100.5",
		EndTime:              time.Now().Add(48 * time.Hour),
		TransactionSignature: "sig-" + pk,
	}
}

func TestTrack(t *testing.T) {
	r := newTestRegister()

	market, err := r.Track(trackParams("pk-1"))
	if err != nil {
		t.Fatalf("Track: %v", err)
	}

	if market.YesProbability != 0.5 || market.NoProbability != 0.5 {
		t.Errorf("new market odds = %f/%f, want 0.5/0.5", market.YesProbability, market.NoProbability)
	}
	if market.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}

	// Immediately visible.
	if !r.IsTracked("pk-1") {
		t.Error("market not visible via IsTracked right after Track")
	}
	if got, ok := r.Get("pk-1"); !ok || got.Question != "Will it rain tomorrow?" {
		t.Errorf("Get = %+v, %v", got, ok)
	}
	if all := r.All(); len(all) != 1 {
		t.Errorf("All = %d markets, want 1", len(all))
	}
}

func TestTrack_Duplicate(t *testing.T) {
	r := newTestRegister()

	_, err := r.Track(trackParams("pk-1"))
	if err != nil {
		t.Fatalf("first Track: %v", err)
	}

	_, err = r.Track(trackParams("pk-1"))
	if !errors.Is(err, types.ErrMarketAlreadyTracked) {
		t.Errorf("second Track error = %v, want ErrMarketAlreadyTracked", err)
	}

	if len(r.All()) != 1 {
		t.Error("duplicate Track created a second record")
	}
}

func TestAll_InsertionOrderAndCopies(t *testing.T) {
	r := newTestRegister()

	for i := 0; i < 5; i++ {
		_, err := r.Track(trackParams(fmt.Sprintf("pk-%d", i)))
		if err != nil {
			t.Fatalf("Track %d: %v", i, err)
		}
	}

	all := r.All()
	for i, m := range all {
		want := fmt.Sprintf("pk-%d", i)
		if m.PublicKey != want {
			t.Errorf("All[%d] = %s, want %s", i, m.PublicKey, want)
		}
	}

	// Mutating the returned slice must not touch the register.
	all[0].Question = "tampered"
	if got, _ := r.Get("pk-0"); got.Question == "tampered" {
		t.Error("mutation of All() result leaked into the register")
	}
}

func TestTrack_Concurrent(t *testing.T) {
	r := newTestRegister()

	var wg sync.WaitGroup
	const n = 20
	errs := make([]error, 2*n)

	for i := 0; i < n; i++ {
		wg.Add(2)
		// Two goroutines race to track the same key.
		pk := fmt.Sprintf("pk-%d", i)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = r.Track(trackParams(pk))
		}(2 * i)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = r.Track(trackParams(pk))
		}(2*i + 1)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else if !errors.Is(err, types.ErrMarketAlreadyTracked) {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != n {
		t.Errorf("successes = %d, want %d (one per key)", successes, n)
	}
	if len(r.All()) != n {
		t.Errorf("tracked markets = %d, want %d", len(r.All()), n)
	}
}
