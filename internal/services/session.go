package services

import (
	"context"
	"sync"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/client"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/signing"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/ports"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/config"
)

// Session is the authenticated trading context shared by all callers for
// the lifetime of the process.
type Session struct {
	Client         ports.ExchangeClient
	TradingAddress string
	FunderAddress  string
	Creds          *types.ApiKeyCreds
}

type sessionAttempt struct {
	done chan struct{}
	sess *Session
}

// SessionManager lazily builds one Session and memoizes it. Concurrent
// cold-start callers share a single credential-derivation round trip. A
// failed attempt clears the memo so the next call retries cleanly.
type SessionManager struct {
	cfg     config.TradingConfig
	factory ports.ClientFactory

	mu               sync.Mutex
	attempt          *sessionAttempt
	warnedMissingKey bool
}

// NewSessionManager builds a manager around the given trading config. A
// nil factory uses the real CLOB client.
func NewSessionManager(cfg config.TradingConfig, factory ports.ClientFactory) *SessionManager {
	if factory == nil {
		factory = func(signer signing.Signer, creds *types.ApiKeyCreds) ports.ExchangeClient {
			opts := []client.Option{}
			if creds != nil {
				opts = append(opts, client.WithCreds(creds))
			}
			if cfg.FunderAddress != "" {
				opts = append(opts, client.WithFunder(cfg.FunderAddress, types.SignatureType(cfg.SignatureType)))
			}
			if cfg.UseServerTime {
				opts = append(opts, client.WithServerTime())
			}
			return client.NewClient(cfg.APIBaseURL, types.Chain(cfg.ChainID), signer, opts...)
		}
	}
	return &SessionManager{cfg: cfg, factory: factory}
}

// GetSession returns the shared Session, or nil when trading is disabled,
// no key is configured, or initialization failed. It never returns an
// error: all init failures are logged here and absorbed.
func (m *SessionManager) GetSession(ctx context.Context) *Session {
	if !m.cfg.Enabled {
		return nil
	}
	if m.cfg.PrivateKey == "" {
		m.mu.Lock()
		warned := m.warnedMissingKey
		m.warnedMissingKey = true
		m.mu.Unlock()
		if !warned {
			log.Warn("trading private key not configured, orders disabled until one is set")
		}
		return nil
	}

	m.mu.Lock()
	// Key became available again, arm the warning for the next episode.
	m.warnedMissingKey = false

	if a := m.attempt; a != nil {
		m.mu.Unlock()
		select {
		case <-a.done:
			return a.sess
		case <-ctx.Done():
			return nil
		}
	}

	a := &sessionAttempt{done: make(chan struct{})}
	m.attempt = a
	m.mu.Unlock()

	sess, err := m.initSession(ctx)
	if err != nil {
		log.WithError(err).Error("session initialization failed")
		m.mu.Lock()
		if m.attempt == a {
			m.attempt = nil
		}
		m.mu.Unlock()
		close(a.done)
		return nil
	}

	a.sess = sess
	close(a.done)
	return sess
}

func (m *SessionManager) initSession(ctx context.Context) (*Session, error) {
	signer, err := signing.NewPrivateKeySigner(m.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	tradingAddress := signer.Address().Hex()
	funderAddress := m.cfg.FunderAddress
	if funderAddress == "" {
		funderAddress = tradingAddress
	}

	// Derive credentials with a bare client, then rebuild authenticated.
	bare := m.factory(signer, nil)
	nonce := bare.Nonce(ctx)

	creds, err := bare.CreateOrDeriveAPIKey(ctx, nonce)
	if err != nil {
		log.WithError(err).Warn("create-or-derive API key failed, falling back to derive")
		creds, err = bare.DeriveAPIKey(ctx, nonce)
		if err != nil {
			return nil, err
		}
	}

	authed := m.factory(signer, creds)

	log.WithField("address", tradingAddress).Info("trading session initialized")
	return &Session{
		Client:         authed,
		TradingAddress: tradingAddress,
		FunderAddress:  funderAddress,
		Creds:          creds,
	}, nil
}
