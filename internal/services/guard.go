package services

import (
	"fmt"
	"math"
)

// Exchange sizing floors. Orders below either bound are rejected.
const (
	MinNotionalUSD = 1.0
	MinShares      = 5.0

	// Tradable price band for market orders.
	MinTradablePrice = 0.01
	MaxTradablePrice = 0.99

	// priceEpsilon absorbs binary floating-point representation error in
	// band checks and flooring.
	priceEpsilon = 1e-9
)

// ValidationError is a preflight rejection. It never reaches the network:
// both the requested and the would-be-submitted amounts ride along for
// diagnostics.
type ValidationError struct {
	Reason    string
	Requested float64
	Adjusted  float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (requested=%g, adjusted=%g)", e.Reason, e.Requested, e.Adjusted)
}

// FloorTo floors value at the given decimal precision. An epsilon is added
// first so a value that is conceptually exactly 1.00 does not floor to 0.99.
func FloorTo(value float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Floor((value+priceEpsilon)*multiplier) / multiplier
}

// MinSellSharesAtPrice is the smallest share count that still clears the
// minimum notional at the given price.
func MinSellSharesAtPrice(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return MinShares
	}
	return math.Max(MinShares, MinNotionalUSD/price)
}

// AdjustSellAmountToAvoidDust clamps requested to available and, when the
// leftover would be a positive residual too small to ever sell, returns
// the entire available balance instead.
func AdjustSellAmountToAvoidDust(requested, available, price float64) float64 {
	clamped := math.Min(requested, available)
	remainder := available - clamped
	if remainder > 0 && remainder < MinSellSharesAtPrice(price) {
		return available
	}
	return clamped
}

// PriceInTradableBand reports whether a market-order price is inside
// [0.01, 0.99], with epsilon tolerance at both edges.
func PriceInTradableBand(price float64) bool {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return false
	}
	return price >= MinTradablePrice-priceEpsilon && price <= MaxTradablePrice+priceEpsilon
}

// PreflightLimit validates a limit order's size and notional.
func PreflightLimit(size, price float64) error {
	if size < MinShares {
		return &ValidationError{
			Reason:    fmt.Sprintf("size below minimum of %g shares", MinShares),
			Requested: size,
			Adjusted:  size,
		}
	}
	if size*price < MinNotionalUSD {
		return &ValidationError{
			Reason:    fmt.Sprintf("notional below minimum of $%g", MinNotionalUSD),
			Requested: size,
			Adjusted:  size,
		}
	}
	return nil
}

// PreflightMarketBuy caps the requested USD amount to available collateral
// and validates the result. Returns the amount to submit.
func PreflightMarketBuy(requestedUSD, available, price float64) (float64, error) {
	amount := FloorTo(math.Min(requestedUSD, available), 2)
	if amount < MinNotionalUSD {
		return 0, &ValidationError{
			Reason:    fmt.Sprintf("amount below minimum of $%g", MinNotionalUSD),
			Requested: requestedUSD,
			Adjusted:  amount,
		}
	}
	if price > 0 && amount/price < MinShares {
		return 0, &ValidationError{
			Reason:    fmt.Sprintf("implied shares below minimum of %g", MinShares),
			Requested: requestedUSD,
			Adjusted:  amount,
		}
	}
	return amount, nil
}

// PreflightMarketSell applies dust avoidance against the available
// conditional balance and validates the result. Returns the share count
// to submit.
func PreflightMarketSell(requestedShares, available, price float64) (float64, error) {
	shares := FloorTo(AdjustSellAmountToAvoidDust(requestedShares, available, price), 2)
	if shares < MinShares {
		return 0, &ValidationError{
			Reason:    fmt.Sprintf("shares below minimum of %g", MinShares),
			Requested: requestedShares,
			Adjusted:  shares,
		}
	}
	if shares*price < MinNotionalUSD {
		return 0, &ValidationError{
			Reason:    fmt.Sprintf("notional below minimum of $%g", MinNotionalUSD),
			Requested: requestedShares,
			Adjusted:  shares,
		}
	}
	return shares, nil
}
