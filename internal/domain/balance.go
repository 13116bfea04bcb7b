package domain

import (
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// Balance is a wallet balance and spending allowance for one asset scope,
// in whole units (USDC for collateral, shares for conditional tokens).
type Balance struct {
	Balance   float64
	Allowance float64

	// Available is the balance clamped to a finite non-negative value. All
	// sizing decisions run off this field.
	Available float64

	AssetType types.AssetType
}
