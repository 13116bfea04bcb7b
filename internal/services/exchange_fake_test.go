package services

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/signing"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/ports"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/config"
)

// testPrivateKey is an arbitrary valid secp256k1 scalar, never funded.
const testPrivateKey = "0000000000000000000000000000000000000000000000000000000000000001"

var testCreds = &types.ApiKeyCreds{Key: "key", Secret: "c2VjcmV0", Passphrase: "pass"}

// fakeExchange implements ports.ExchangeClient with overridable hooks.
// Nil hooks fall back to benign defaults.
type fakeExchange struct {
	deriveCalls atomic.Int32
	orderCalls  atomic.Int32

	createOrDeriveFn func(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error)
	deriveFn         func(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error)
	tickFn           func(ctx context.Context, tokenID string) (types.TickSize, error)
	negRiskFn        func(ctx context.Context, tokenID string) (bool, error)
	postOrderFn      func(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error)
	postMarketFn     func(ctx context.Context, order *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error)
	getOrderFn       func(ctx context.Context, orderID string) (*types.OpenOrder, error)
	getTradesFn      func(ctx context.Context, params *types.TradeParams) ([]types.Trade, error)
	cancelFn         func(ctx context.Context, orderID string) (*types.OrderResponse, error)
	balanceFn        func(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error)
}

func (f *fakeExchange) CreateOrDeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	f.deriveCalls.Add(1)
	if f.createOrDeriveFn != nil {
		return f.createOrDeriveFn(ctx, nonce)
	}
	return testCreds, nil
}

func (f *fakeExchange) DeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	if f.deriveFn != nil {
		return f.deriveFn(ctx, nonce)
	}
	return testCreds, nil
}

func (f *fakeExchange) GetTickSize(ctx context.Context, tokenID string) (types.TickSize, error) {
	if f.tickFn != nil {
		return f.tickFn(ctx, tokenID)
	}
	return types.TickSize001, nil
}

func (f *fakeExchange) GetNegRisk(ctx context.Context, tokenID string) (bool, error) {
	if f.negRiskFn != nil {
		return f.negRiskFn(ctx, tokenID)
	}
	return false, nil
}

func (f *fakeExchange) CreateAndPostOrder(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
	if f.postOrderFn != nil {
		return f.postOrderFn(ctx, order, options, orderType, postOnly)
	}
	return &types.OrderResponse{Success: true, OrderID: "order-1", Status: "live"}, nil
}

func (f *fakeExchange) CreateAndPostMarketOrder(ctx context.Context, order *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error) {
	if f.postMarketFn != nil {
		return f.postMarketFn(ctx, order, options, orderType)
	}
	return &types.OrderResponse{Success: true, OrderID: "order-1", Status: "matched"}, nil
}

func (f *fakeExchange) GetOrder(ctx context.Context, orderID string) (*types.OpenOrder, error) {
	f.orderCalls.Add(1)
	if f.getOrderFn != nil {
		return f.getOrderFn(ctx, orderID)
	}
	return nil, errors.New("not found")
}

func (f *fakeExchange) GetTrades(ctx context.Context, params *types.TradeParams) ([]types.Trade, error) {
	if f.getTradesFn != nil {
		return f.getTradesFn(ctx, params)
	}
	return nil, nil
}

func (f *fakeExchange) CancelOrder(ctx context.Context, orderID string) (*types.OrderResponse, error) {
	if f.cancelFn != nil {
		return f.cancelFn(ctx, orderID)
	}
	return &types.OrderResponse{Success: true}, nil
}

func (f *fakeExchange) GetBalanceAllowance(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
	if f.balanceFn != nil {
		return f.balanceFn(ctx, params)
	}
	return &types.BalanceAllowanceResponse{Balance: "1000000000", Allowance: "1000000000"}, nil
}

func (f *fakeExchange) Nonce(ctx context.Context) int64 { return 0 }

func enabledConfig() config.TradingConfig {
	return config.TradingConfig{
		Enabled:    true,
		PrivateKey: testPrivateKey,
		APIBaseURL: "https://clob.example.test",
		ChainID:    int(types.ChainPolygon),
	}
}

func fakeFactory(f *fakeExchange) ports.ClientFactory {
	return func(signer signing.Signer, creds *types.ApiKeyCreds) ports.ExchangeClient {
		return f
	}
}

func newTestSessions(f *fakeExchange) *SessionManager {
	return NewSessionManager(enabledConfig(), fakeFactory(f))
}
