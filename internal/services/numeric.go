package services

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// parseFiniteFloat parses a decimal string into a finite float64. Every
// numeric field read off the wire goes through here before any business
// logic sees it.
func parseFiniteFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("empty numeric value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("non-finite value %q", raw)
	}
	return v, nil
}

// unlimitedAllowance is returned when the on-chain allowance is at or
// near the uint256 maximum.
const unlimitedAllowance = 999999999.999

var maxUint256 = func() *big.Int {
	v, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	return v
}()

// parseScaledAmount converts a 1e6-scaled integer string into whole
// units. A near-max-uint256 allowance means unlimited.
func parseScaledAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("empty amount")
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return 0, errors.Errorf("invalid integer amount %q", raw)
	}
	threshold := new(big.Int).Sub(maxUint256, big.NewInt(1000))
	if v.Cmp(threshold) >= 0 {
		return unlimitedAllowance, nil
	}
	f := new(big.Float).SetInt(v)
	f.Quo(f, big.NewFloat(1e6))
	out, _ := f.Float64()
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, errors.Errorf("non-finite amount %q", raw)
	}
	return out, nil
}

// finiteOrZero clamps non-finite values to zero.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
