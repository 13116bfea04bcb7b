package types

// Trade is one matched execution, associated with exactly one order.
// Sizes and prices arrive as decimal strings.
type Trade struct {
	ID              string       `json:"id"`
	TakerOrderID    string       `json:"taker_order_id"`
	Market          string       `json:"market"`
	AssetID         string       `json:"asset_id"`
	Side            Side         `json:"side"`
	Size            string       `json:"size"`
	FeeRateBps      string       `json:"fee_rate_bps"`
	Price           string       `json:"price"`
	Status          string       `json:"status"`
	MatchTime       string       `json:"match_time"`
	LastUpdate      string       `json:"last_update"`
	Outcome         string       `json:"outcome"`
	Owner           string       `json:"owner"`
	MakerAddress    string       `json:"maker_address"`
	MakerOrders     []MakerOrder `json:"maker_orders"`
	TransactionHash string       `json:"transaction_hash"`
	TraderSide      string       `json:"trader_side"` // "TAKER" | "MAKER"
}

// MakerOrder is the maker leg of a trade.
type MakerOrder struct {
	OrderID       string `json:"order_id"`
	Owner         string `json:"owner"`
	MakerAddress  string `json:"maker_address"`
	MatchedAmount string `json:"matched_amount"`
	Price         string `json:"price"`
	FeeRateBps    string `json:"fee_rate_bps"`
	AssetID       string `json:"asset_id"`
	Outcome       string `json:"outcome"`
	Side          Side   `json:"side"`
}

// TradeParams filters GET /data/trades.
type TradeParams struct {
	ID           *string
	MakerAddress *string
	Market       *string
	AssetID      *string
	Before       *string
	After        *string
}

// TradesAPIResponse is the paginated trades envelope.
type TradesAPIResponse struct {
	Data       []Trade `json:"data"`
	NextCursor string  `json:"next_cursor"`
	Limit      int     `json:"limit"`
	Count      int     `json:"count"`
}

// BalanceAllowanceParams scopes a balance/allowance query.
type BalanceAllowanceParams struct {
	AssetType     AssetType
	TokenID       *string
	SignatureType *SignatureType
}

// BalanceAllowanceResponse carries balance and allowance as 1e6-scaled
// integer strings. The collateral* fields are proxy-wallet aliases some API
// revisions return instead of the plain ones.
type BalanceAllowanceResponse struct {
	Balance             string            `json:"balance"`
	Allowance           string            `json:"allowance"`
	CollateralBalance   string            `json:"collateralBalance,omitempty"`
	CollateralAllowance string            `json:"collateralAllowance,omitempty"`
	Allowances          map[string]string `json:"allowances,omitempty"`
}

// TickSizeResponse is GET /tick-size.
type TickSizeResponse struct {
	MinimumTickSize float64 `json:"minimum_tick_size"`
}

// NegRiskResponse is GET /neg-risk.
type NegRiskResponse struct {
	NegRisk bool `json:"neg_risk"`
}
