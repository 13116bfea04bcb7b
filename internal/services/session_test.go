package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/config"
)

func TestGetSessionDisabled(t *testing.T) {
	cfg := enabledConfig()
	cfg.Enabled = false
	m := NewSessionManager(cfg, fakeFactory(&fakeExchange{}))

	if sess := m.GetSession(context.Background()); sess != nil {
		t.Fatalf("expected nil session when trading disabled, got %+v", sess)
	}
}

func TestGetSessionMissingKey(t *testing.T) {
	cfg := enabledConfig()
	cfg.PrivateKey = ""
	m := NewSessionManager(cfg, fakeFactory(&fakeExchange{}))

	for i := 0; i < 3; i++ {
		if sess := m.GetSession(context.Background()); sess != nil {
			t.Fatalf("expected nil session without a key, got %+v", sess)
		}
	}
	if !m.warnedMissingKey {
		t.Fatal("expected missing-key warning to be recorded")
	}
}

func TestGetSessionConcurrentSingleDerivation(t *testing.T) {
	fake := &fakeExchange{
		createOrDeriveFn: func(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
			time.Sleep(20 * time.Millisecond)
			return testCreds, nil
		},
	}
	m := newTestSessions(fake)

	const callers = 16
	sessions := make([]*Session, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = m.GetSession(context.Background())
		}(i)
	}
	wg.Wait()

	if got := fake.deriveCalls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 credential derivation, got %d", got)
	}
	for i, sess := range sessions {
		if sess == nil {
			t.Fatalf("caller %d got nil session", i)
		}
		if sess != sessions[0] {
			t.Fatalf("caller %d got a different session instance", i)
		}
	}
	if sessions[0].Creds != testCreds {
		t.Fatalf("unexpected creds: %+v", sessions[0].Creds)
	}
}

func TestGetSessionFunderDefaultsToSigner(t *testing.T) {
	m := newTestSessions(&fakeExchange{})

	sess := m.GetSession(context.Background())
	if sess == nil {
		t.Fatal("expected session")
	}
	if sess.FunderAddress != sess.TradingAddress {
		t.Fatalf("funder %s should default to trading address %s", sess.FunderAddress, sess.TradingAddress)
	}
}

func TestGetSessionFunderOverride(t *testing.T) {
	cfg := enabledConfig()
	cfg.FunderAddress = "0x1111111111111111111111111111111111111111"
	m := NewSessionManager(cfg, fakeFactory(&fakeExchange{}))

	sess := m.GetSession(context.Background())
	if sess == nil {
		t.Fatal("expected session")
	}
	if sess.FunderAddress != cfg.FunderAddress {
		t.Fatalf("funder = %s, want %s", sess.FunderAddress, cfg.FunderAddress)
	}
}

func TestGetSessionRetriesAfterFailure(t *testing.T) {
	fail := true
	fake := &fakeExchange{}
	fake.createOrDeriveFn = func(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
		if fail {
			return nil, errors.New("create denied")
		}
		return testCreds, nil
	}
	fake.deriveFn = func(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
		if fail {
			return nil, errors.New("derive denied")
		}
		return testCreds, nil
	}
	m := newTestSessions(fake)

	if sess := m.GetSession(context.Background()); sess != nil {
		t.Fatalf("expected nil session on init failure, got %+v", sess)
	}

	fail = false
	sess := m.GetSession(context.Background())
	if sess == nil {
		t.Fatal("expected session after the failure cleared")
	}
}

func TestGetSessionFallsBackToDerive(t *testing.T) {
	fake := &fakeExchange{
		createOrDeriveFn: func(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
			return nil, errors.New("create-or-derive unavailable")
		},
	}
	m := newTestSessions(fake)

	sess := m.GetSession(context.Background())
	if sess == nil {
		t.Fatal("expected session via derive fallback")
	}
	if sess.Creds != testCreds {
		t.Fatalf("unexpected creds: %+v", sess.Creds)
	}
}

func TestGetSessionMemoized(t *testing.T) {
	fake := &fakeExchange{}
	m := newTestSessions(fake)

	first := m.GetSession(context.Background())
	second := m.GetSession(context.Background())
	if first == nil || first != second {
		t.Fatal("expected the same memoized session on repeat calls")
	}
	if got := fake.deriveCalls.Load(); got != 1 {
		t.Fatalf("expected 1 derivation across repeat calls, got %d", got)
	}
}

func TestGetSessionInvalidKeyIsSoft(t *testing.T) {
	cfg := config.TradingConfig{
		Enabled:    true,
		PrivateKey: "not-a-key",
		APIBaseURL: "https://clob.example.test",
		ChainID:    int(types.ChainPolygon),
	}
	m := NewSessionManager(cfg, fakeFactory(&fakeExchange{}))

	if sess := m.GetSession(context.Background()); sess != nil {
		t.Fatalf("expected nil session for an unparsable key, got %+v", sess)
	}
}
