package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// GetTickSize returns the minimum price increment for a token.
func (c *Client) GetTickSize(ctx context.Context, tokenID string) (types.TickSize, error) {
	if err := c.limiter.Wait(ctx, "clob:market:get"); err != nil {
		return "", err
	}

	opt := &requestOptions{Params: map[string]string{"token_id": tokenID}}
	var out types.TickSizeResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetTickSize, opt, &out); err != nil {
		return "", errors.Wrap(err, "fetch tick size")
	}

	tick := types.TickSize(strconv.FormatFloat(out.MinimumTickSize, 'f', -1, 64))
	if !types.ValidTickSize(tick) {
		return "", errors.Errorf("unexpected tick size: %v", out.MinimumTickSize)
	}
	return tick, nil
}

// GetNegRisk reports whether the token trades on the neg-risk exchange.
func (c *Client) GetNegRisk(ctx context.Context, tokenID string) (bool, error) {
	if err := c.limiter.Wait(ctx, "clob:market:get"); err != nil {
		return false, err
	}

	opt := &requestOptions{Params: map[string]string{"token_id": tokenID}}
	var out types.NegRiskResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetNegRisk, opt, &out); err != nil {
		return false, errors.Wrap(err, "fetch neg risk")
	}
	return out.NegRisk, nil
}

// GetBalanceAllowance returns the wallet's balance and spending allowance
// for an asset, both as 1e6-scaled integer strings.
func (c *Client) GetBalanceAllowance(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, "clob:balance:get"); err != nil {
		return nil, err
	}

	query := map[string]string{
		"asset_type": string(params.AssetType),
	}
	if params.TokenID != nil {
		query["token_id"] = *params.TokenID
	}
	sigType := c.signatureType
	if params.SignatureType != nil {
		sigType = *params.SignatureType
	}
	query["signature_type"] = strconv.Itoa(int(sigType))

	headers, err := c.l2HeaderMap(ctx, &types.L2HeaderArgs{
		Method:      http.MethodGet,
		RequestPath: EndpointGetBalanceAllowance,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build L2 headers")
	}

	var out types.BalanceAllowanceResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetBalanceAllowance, &requestOptions{Headers: headers, Params: query}, &out); err != nil {
		return nil, errors.Wrap(err, "fetch balance allowance")
	}
	return &out, nil
}
