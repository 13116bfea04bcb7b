package ports

import (
	"context"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/signing"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// ExchangeClient is the CLOB capability set the trading core consumes.
// Implemented by clob/client and by test fakes.
type ExchangeClient interface {
	// L1 credential acquisition
	CreateOrDeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error)
	DeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error)

	// Instrument metadata
	GetTickSize(ctx context.Context, tokenID string) (types.TickSize, error)
	GetNegRisk(ctx context.Context, tokenID string) (bool, error)

	// Order lifecycle
	CreateAndPostOrder(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error)
	CreateAndPostMarketOrder(ctx context.Context, order *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*types.OpenOrder, error)
	GetTrades(ctx context.Context, params *types.TradeParams) ([]types.Trade, error)
	CancelOrder(ctx context.Context, orderID string) (*types.OrderResponse, error)

	// Balances
	GetBalanceAllowance(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error)

	// Nonce returns the unix-seconds nonce used for credential derivation.
	Nonce(ctx context.Context) int64
}

// ClientFactory builds an exchange client for a signer, unauthenticated
// when creds is nil. The session manager calls it twice during init: once
// bare for key derivation and once with the derived credentials.
type ClientFactory func(signer signing.Signer, creds *types.ApiKeyCreds) ExchangeClient
