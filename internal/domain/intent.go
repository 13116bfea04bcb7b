package domain

import (
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// OrderIntent is the request surface accepted from the routing layer.
type OrderIntent struct {
	TokenID   string          `json:"tokenID"`
	Side      types.Side      `json:"side"`
	Market    bool            `json:"market"`
	Price     float64         `json:"price"`
	Size      float64         `json:"size,omitempty"`
	Amount    float64         `json:"amount,omitempty"`
	OrderType types.OrderType `json:"orderType,omitempty"`
	TickSize  *types.TickSize `json:"tickSize,omitempty"`
	NegRisk   *bool           `json:"negRisk,omitempty"`
	PostOnly  bool            `json:"postOnly,omitempty"`

	AwaitFill      bool  `json:"awaitFill,omitempty"`
	MaxWaitMs      int64 `json:"maxWaitMs,omitempty"`
	PollIntervalMs int64 `json:"pollIntervalMs,omitempty"`
}

// OrderOutcome is the structured success returned to the routing layer.
// Requested and submitted figures are both reported so sizing adjustments
// are visible to the caller.
type OrderOutcome struct {
	OrderID            string          `json:"orderId"`
	Status             string          `json:"status"`
	RequestedAmount    float64         `json:"requestedAmount,omitempty"`
	SubmittedAmount    float64         `json:"submittedAmount,omitempty"`
	RequestedShares    float64         `json:"requestedShares,omitempty"`
	SubmittedShares    float64         `json:"submittedShares,omitempty"`
	Available          *float64        `json:"available,omitempty"`
	AvailableAssetType types.AssetType `json:"availableAssetType,omitempty"`
	Fill               *FillSnapshot   `json:"fill,omitempty"`
}

// OrderError is the structured failure returned to the routing layer.
type OrderError struct {
	Reason             string          `json:"error"`
	Status             string          `json:"status,omitempty"`
	Available          *float64        `json:"available,omitempty"`
	AvailableAssetType types.AssetType `json:"availableAssetType,omitempty"`
	RequestedAmount    float64         `json:"requestedAmount,omitempty"`
	SubmittedAmount    float64         `json:"submittedAmount,omitempty"`
}

func (e *OrderError) Error() string {
	return e.Reason
}
