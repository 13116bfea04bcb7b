package types

// UserOrder is a limit-order intent before building and signing.
type UserOrder struct {
	// TokenID is the conditional-token asset ID.
	TokenID string

	// Price is the limit price.
	Price float64

	// Size is the share count.
	Size float64

	// Side is the order direction.
	Side Side

	// FeeRateBps is the fee rate in basis points, optional.
	FeeRateBps *int

	// Nonce for on-chain cancellation, optional.
	Nonce *int

	// Expiration unix timestamp (seconds), optional.
	Expiration *int64

	// Taker address; zero address means a public order, optional.
	Taker *string
}

// UserMarketOrder is a market-order intent.
type UserMarketOrder struct {
	// TokenID is the conditional-token asset ID.
	TokenID string

	// Price used to build the marketable order. Optional; resolved from the
	// book when absent.
	Price *float64

	// Amount is USD for BUY orders and shares for SELL orders.
	Amount float64

	// Side is the order direction.
	Side Side

	// FeeRateBps is the fee rate in basis points, optional.
	FeeRateBps *int

	// Nonce for on-chain cancellation, optional.
	Nonce *int

	// Taker address; zero address means a public order, optional.
	Taker *string
}

// SignedOrder is the EIP-712 signed order submitted to the exchange.
type SignedOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          Side   `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// NewOrder is the POST /order payload.
type NewOrder struct {
	Order     SignedOrder `json:"order"`
	Owner     string      `json:"owner"`
	OrderType OrderType   `json:"orderType"`
	PostOnly  bool        `json:"postOnly"`
	DeferExec bool        `json:"deferExec"`
}

// OrderResponse is the exchange's reply to an order submission or cancel.
//
// The order identifier and status have shipped under two field names across
// API revisions; both are kept so callers can normalize.
type OrderResponse struct {
	Success           bool     `json:"success"`
	ErrorMsg          string   `json:"errorMsg"`
	OrderID           string   `json:"orderID"`
	OrderIDAlt        string   `json:"orderId"`
	TransactionHashes []string `json:"transactionsHashes"`
	Status            string   `json:"status"`
	State             string   `json:"state"`
	TakingAmount      string   `json:"takingAmount"`
	MakingAmount      string   `json:"makingAmount"`
}

// ResolvedOrderID returns the order identifier regardless of which field
// name the API revision used.
func (r *OrderResponse) ResolvedOrderID() string {
	if r.OrderID != "" {
		return r.OrderID
	}
	return r.OrderIDAlt
}

// ResolvedStatus returns the order status regardless of field name.
func (r *OrderResponse) ResolvedStatus() string {
	if r.Status != "" {
		return r.Status
	}
	return r.State
}

// OpenOrder is the GET /data/order/{id} record.
type OpenOrder struct {
	ID              string   `json:"id"`
	Status          string   `json:"status"`
	Owner           string   `json:"owner"`
	MakerAddress    string   `json:"maker_address"`
	Market          string   `json:"market"`
	AssetID         string   `json:"asset_id"`
	Side            string   `json:"side"`
	OriginalSize    string   `json:"original_size"`
	SizeMatched     string   `json:"size_matched"`
	Price           string   `json:"price"`
	AssociateTrades []string `json:"associate_trades"`
	Outcome         string   `json:"outcome"`
	CreatedAt       int64    `json:"created_at"`
	Expiration      string   `json:"expiration"`
	OrderType       string   `json:"order_type"`
}

// OrderStatusLive is the exchange's resting-order status. Any other status is
// terminal from the fill tracker's point of view.
const OrderStatusLive = "live"

// CreateOrderOptions carries per-instrument metadata needed to build an order.
type CreateOrderOptions struct {
	TickSize TickSize
	NegRisk  *bool
}
