package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// PostOrder submits a signed order. The JSON body is serialized once and
// the same bytes are used for both the L2 signature and the wire.
func (c *Client) PostOrder(ctx context.Context, order *types.SignedOrder, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, "clob:order:post"); err != nil {
		return nil, err
	}

	payload := types.NewOrder{
		Order:     *order,
		Owner:     c.creds.Key,
		OrderType: orderType,
		PostOnly:  postOnly,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal order payload")
	}
	body := string(bodyBytes)

	headers, err := c.l2HeaderMap(ctx, &types.L2HeaderArgs{
		Method:      http.MethodPost,
		RequestPath: EndpointPostOrder,
		Body:        &body,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build L2 headers")
	}

	var out types.OrderResponse
	if _, err := c.http.do(ctx, http.MethodPost, EndpointPostOrder, &requestOptions{Headers: headers, Body: &body}, &out); err != nil {
		return nil, errors.Wrap(err, "post order")
	}
	return &out, nil
}

// CreateAndPostOrder builds, signs and submits a limit order in one step.
func (c *Client) CreateAndPostOrder(ctx context.Context, userOrder *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
	signedOrder, err := NewOrderBuilder(c).BuildOrder(userOrder, options)
	if err != nil {
		return nil, errors.Wrap(err, "build order")
	}
	return c.PostOrder(ctx, signedOrder, orderType, postOnly)
}

// CreateAndPostMarketOrder builds, signs and submits a marketable order.
func (c *Client) CreateAndPostMarketOrder(ctx context.Context, userOrder *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error) {
	signedOrder, err := NewOrderBuilder(c).BuildMarketOrder(userOrder, options)
	if err != nil {
		return nil, errors.Wrap(err, "build market order")
	}
	return c.PostOrder(ctx, signedOrder, orderType, false)
}

// CancelOrder cancels a resting order by ID.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*types.OrderResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, "clob:order:delete"); err != nil {
		return nil, err
	}

	bodyBytes, err := json.Marshal(map[string]string{"orderID": orderID})
	if err != nil {
		return nil, errors.Wrap(err, "marshal cancel payload")
	}
	body := string(bodyBytes)

	headers, err := c.l2HeaderMap(ctx, &types.L2HeaderArgs{
		Method:      http.MethodDelete,
		RequestPath: EndpointCancelOrder,
		Body:        &body,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build L2 headers")
	}

	var out types.OrderResponse
	if _, err := c.http.do(ctx, http.MethodDelete, EndpointCancelOrder, &requestOptions{Headers: headers, Body: &body}, &out); err != nil {
		return nil, errors.Wrapf(err, "cancel order %s", orderID)
	}
	return &out, nil
}

// GetOrder fetches a single order's current state.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*types.OpenOrder, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, "clob:order:get"); err != nil {
		return nil, err
	}

	endpoint := EndpointGetOrder + orderID
	headers, err := c.l2HeaderMap(ctx, &types.L2HeaderArgs{
		Method:      http.MethodGet,
		RequestPath: endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build L2 headers")
	}

	var out types.OpenOrder
	if _, err := c.http.do(ctx, http.MethodGet, endpoint, &requestOptions{Headers: headers}, &out); err != nil {
		return nil, errors.Wrapf(err, "fetch order %s", orderID)
	}
	return &out, nil
}

// GetTrades returns the trades matching params, first page only.
func (c *Client) GetTrades(ctx context.Context, params *types.TradeParams) ([]types.Trade, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, "clob:trades:get"); err != nil {
		return nil, err
	}

	query := make(map[string]string)
	if params != nil {
		if params.ID != nil {
			query["id"] = *params.ID
		}
		if params.MakerAddress != nil {
			query["maker_address"] = *params.MakerAddress
		}
		if params.Market != nil {
			query["market"] = *params.Market
		}
		if params.AssetID != nil {
			query["asset_id"] = *params.AssetID
		}
		if params.Before != nil {
			query["before"] = *params.Before
		}
		if params.After != nil {
			query["after"] = *params.After
		}
	}

	headers, err := c.l2HeaderMap(ctx, &types.L2HeaderArgs{
		Method:      http.MethodGet,
		RequestPath: EndpointGetTrades,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build L2 headers")
	}

	var out types.TradesAPIResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetTrades, &requestOptions{Headers: headers, Params: query}, &out); err != nil {
		return nil, errors.Wrap(err, "fetch trades")
	}
	return out.Data, nil
}
