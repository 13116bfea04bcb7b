package client

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// CreateOrDeriveAPIKey returns the wallet's API credentials, deriving the
// existing key first and falling back to creating a fresh one when the
// exchange reports none exists (HTTP 400 on derive).
func (c *Client) CreateOrDeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	if err := c.CanL1Auth(); err != nil {
		return nil, err
	}

	headers, err := c.l1HeaderMap(ctx, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "build L1 headers")
	}

	var raw types.ApiKeyRaw
	resp, err := c.http.do(ctx, http.MethodGet, EndpointDeriveAPIKey, &requestOptions{Headers: headers}, &raw)
	if err == nil {
		return raw.Creds(), nil
	}
	if !isStatus(resp, http.StatusBadRequest) {
		return nil, errors.Wrap(err, "derive API key")
	}

	// No key registered yet for this wallet, mint one.
	empty := "{}"
	if _, err := c.http.do(ctx, http.MethodPost, EndpointCreateAPIKey, &requestOptions{Headers: headers, Body: &empty}, &raw); err != nil {
		return nil, errors.Wrap(err, "create API key")
	}
	return raw.Creds(), nil
}

// DeriveAPIKey fetches existing credentials only. It never creates a key.
func (c *Client) DeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	if err := c.CanL1Auth(); err != nil {
		return nil, err
	}

	headers, err := c.l1HeaderMap(ctx, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "build L1 headers")
	}

	var raw types.ApiKeyRaw
	if _, err := c.http.do(ctx, http.MethodGet, EndpointDeriveAPIKey, &requestOptions{Headers: headers}, &raw); err != nil {
		return nil, errors.Wrap(err, "derive API key")
	}
	return raw.Creds(), nil
}

func isStatus(resp *resty.Response, code int) bool {
	return resp != nil && resp.StatusCode() == code
}
