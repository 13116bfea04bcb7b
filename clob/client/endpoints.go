package client

// API endpoint paths.
const (
	EndpointTime = "/time"

	// API key endpoints
	EndpointCreateAPIKey = "/auth/api-key"
	EndpointDeriveAPIKey = "/auth/derive-api-key"

	// Market metadata
	EndpointGetTickSize = "/tick-size"
	EndpointGetNegRisk  = "/neg-risk"

	// Orders
	EndpointPostOrder   = "/order"
	EndpointCancelOrder = "/order"
	EndpointGetOrder    = "/data/order/"
	EndpointGetTrades   = "/data/trades"

	// Balance
	EndpointGetBalanceAllowance = "/balance-allowance"
)
