package client

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/signing"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/ratelimit"
)

// Client talks to the Polymarket CLOB REST API. All signed requests go
// through the signer chosen at construction time.
type Client struct {
	host          string
	chainID       types.Chain
	signer        signing.Signer
	creds         *types.ApiKeyCreds
	http          *transport
	limiter       *ratelimit.Manager
	funderAddress string
	signatureType types.SignatureType
	useServerTime bool
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithCreds attaches L2 API credentials.
func WithCreds(creds *types.ApiKeyCreds) Option {
	return func(c *Client) { c.creds = creds }
}

// WithFunder sets the maker address funding orders when it differs from
// the signing address (proxy wallets).
func WithFunder(address string, sigType types.SignatureType) Option {
	return func(c *Client) {
		c.funderAddress = address
		c.signatureType = sigType
	}
}

// WithServerTime makes auth timestamps come from the exchange clock
// instead of the local one.
func WithServerTime() Option {
	return func(c *Client) { c.useServerTime = true }
}

func NewClient(host string, chainID types.Chain, signer signing.Signer, opts ...Option) *Client {
	c := &Client{
		host:          strings.TrimSuffix(host, "/"),
		chainID:       chainID,
		signer:        signer,
		http:          newTransport(host),
		limiter:       ratelimit.NewManager(),
		signatureType: types.SignatureTypeEOA,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Host() string              { return c.host }
func (c *Client) ChainID() types.Chain      { return c.chainID }
func (c *Client) Creds() *types.ApiKeyCreds { return c.creds }

// CanL1Auth reports whether wallet-signature auth is possible.
func (c *Client) CanL1Auth() error {
	if c.signer == nil {
		return errors.New("L1 auth unavailable: no signer configured")
	}
	return nil
}

// CanL2Auth reports whether API-key auth is possible.
func (c *Client) CanL2Auth() error {
	if c.signer == nil {
		return errors.New("L2 auth unavailable: no signer configured")
	}
	if c.creds == nil {
		return errors.New("L2 auth unavailable: API credentials not set")
	}
	return nil
}

// authTimestamp returns the unix-seconds timestamp to sign auth headers
// with, hitting the /time endpoint when server time is enabled.
func (c *Client) authTimestamp(ctx context.Context) *int64 {
	if !c.useServerTime {
		return nil
	}
	ts, err := c.GetServerTime(ctx)
	if err != nil {
		return nil
	}
	return &ts
}

func (c *Client) l1HeaderMap(ctx context.Context, nonce int64) (map[string]string, error) {
	headers, err := signing.CreateL1Headers(c.signer, c.chainID, nonce, c.authTimestamp(ctx))
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"POLY_ADDRESS":   headers.PolyAddress,
		"POLY_SIGNATURE": headers.PolySignature,
		"POLY_TIMESTAMP": headers.PolyTimestamp,
		"POLY_NONCE":     headers.PolyNonce,
	}, nil
}

func (c *Client) l2HeaderMap(ctx context.Context, args *types.L2HeaderArgs) (map[string]string, error) {
	headers, err := signing.CreateL2Headers(c.signer, c.creds, args, c.authTimestamp(ctx))
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"POLY_ADDRESS":    headers.PolyAddress,
		"POLY_SIGNATURE":  headers.PolySignature,
		"POLY_TIMESTAMP":  headers.PolyTimestamp,
		"POLY_API_KEY":    headers.PolyAPIKey,
		"POLY_PASSPHRASE": headers.PolyPassphrase,
	}, nil
}

// GetServerTime fetches the exchange clock as unix seconds.
func (c *Client) GetServerTime(ctx context.Context) (int64, error) {
	if err := c.limiter.Wait(ctx, "clob:market:get"); err != nil {
		return 0, err
	}
	resp, err := c.http.do(ctx, "GET", EndpointTime, nil, nil)
	if err != nil {
		return 0, errors.Wrap(err, "fetch server time")
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(resp.Body())), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse server time")
	}
	return ts, nil
}

// Nonce returns the unix-seconds nonce used when deriving API keys.
func (c *Client) Nonce(ctx context.Context) int64 {
	if ts := c.authTimestamp(ctx); ts != nil {
		return *ts
	}
	return time.Now().Unix()
}
