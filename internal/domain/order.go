package domain

import (
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// OrderKind distinguishes limit and market submissions.
type OrderKind string

const (
	OrderKindLimit  OrderKind = "LIMIT"
	OrderKindMarket OrderKind = "MARKET"
)

// OrderRequest is one order intent headed for the exchange.
type OrderRequest struct {
	TokenID string
	Side    types.Side
	Kind    OrderKind

	// Price is the limit price, or the marketable price for market orders.
	Price float64

	// Size is the share count for limit orders and market sells.
	Size float64

	// Amount is the USD notional for market buys.
	Amount float64

	// OrderType defaults to GTC for limit and FOK for market.
	OrderType types.OrderType

	// TickSize and NegRisk skip the metadata fetch when both are set.
	TickSize *types.TickSize
	NegRisk  *bool

	PostOnly bool
}

// OrderResult is the normalized outcome of a submission. An empty OrderID
// means the exchange did not accept the order, even when Err is nil on the
// transport level.
type OrderResult struct {
	OrderID string
	Status  string

	// ErrorDetail carries the failure reason, including a truncated raw
	// response when the exchange replied without an order identifier.
	ErrorDetail string
}

// Accepted reports whether the exchange acknowledged the order.
func (r *OrderResult) Accepted() bool {
	return r != nil && r.OrderID != ""
}

// TradeFill is one matched execution attributed to an order.
type TradeFill struct {
	Size  float64 `json:"size"`
	Price float64 `json:"price"`
}

// FillSnapshot is the aggregate fill state observed for an order.
// AvgPrice is nil exactly when FilledSize is zero.
type FillSnapshot struct {
	Status     string           `json:"status"`
	FilledSize float64          `json:"filledSize"`
	AvgPrice   *float64         `json:"avgPrice,omitempty"`
	Trades     []TradeFill      `json:"trades,omitempty"`
	RawOrder   *types.OpenOrder `json:"rawOrder,omitempty"`
}

// Filled reports whether any size has executed.
func (s *FillSnapshot) Filled() bool {
	return s != nil && s.FilledSize > 0
}
