package client

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/signing"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// RoundConfig sets the decimal precision for each order component.
type RoundConfig struct {
	Price  int
	Size   int
	Amount int
}

// RoundingConfig maps a tick size to its rounding rules.
var RoundingConfig = map[types.TickSize]RoundConfig{
	types.TickSize01:    {Price: 1, Size: 2, Amount: 3},
	types.TickSize001:   {Price: 2, Size: 2, Amount: 4},
	types.TickSize0001:  {Price: 3, Size: 2, Amount: 5},
	types.TickSize00001: {Price: 4, Size: 2, Amount: 6},
}

const zeroAddress = "0x0000000000000000000000000000000000000000"

// OrderBuilder assembles and signs exchange orders for one client.
type OrderBuilder struct {
	client *Client
}

func NewOrderBuilder(client *Client) *OrderBuilder {
	return &OrderBuilder{client: client}
}

// BuildOrder turns a limit-order intent into a signed exchange order.
func (ob *OrderBuilder) BuildOrder(userOrder *types.UserOrder, options *types.CreateOrderOptions) (*types.SignedOrder, error) {
	roundConfig, ok := RoundingConfig[options.TickSize]
	if !ok {
		return nil, errors.Errorf("unsupported tick size: %s", options.TickSize)
	}

	rawMakerAmt, rawTakerAmt := getOrderRawAmounts(userOrder.Side, userOrder.Size, userOrder.Price, roundConfig)

	return ob.sign(orderParts{
		tokenID:     userOrder.TokenID,
		side:        userOrder.Side,
		makerAmount: parseUnits(rawMakerAmt, CollateralTokenDecimals),
		takerAmount: parseUnits(rawTakerAmt, CollateralTokenDecimals),
		feeRateBps:  userOrder.FeeRateBps,
		nonce:       userOrder.Nonce,
		expiration:  userOrder.Expiration,
		taker:       userOrder.Taker,
		negRisk:     options.NegRisk,
	})
}

// BuildMarketOrder turns a market-order intent into a signed marketable
// order at the given price. Amount is USD for BUY and shares for SELL.
func (ob *OrderBuilder) BuildMarketOrder(userOrder *types.UserMarketOrder, options *types.CreateOrderOptions) (*types.SignedOrder, error) {
	roundConfig, ok := RoundingConfig[options.TickSize]
	if !ok {
		return nil, errors.Errorf("unsupported tick size: %s", options.TickSize)
	}
	if userOrder.Price == nil || *userOrder.Price <= 0 {
		return nil, errors.New("market order requires a positive price")
	}

	rawMakerAmt, rawTakerAmt := getMarketOrderRawAmounts(userOrder.Side, userOrder.Amount, *userOrder.Price, roundConfig)

	var expiration *int64
	return ob.sign(orderParts{
		tokenID:     userOrder.TokenID,
		side:        userOrder.Side,
		makerAmount: parseUnits(rawMakerAmt, CollateralTokenDecimals),
		takerAmount: parseUnits(rawTakerAmt, CollateralTokenDecimals),
		feeRateBps:  userOrder.FeeRateBps,
		nonce:       userOrder.Nonce,
		expiration:  expiration,
		taker:       userOrder.Taker,
		negRisk:     options.NegRisk,
	})
}

type orderParts struct {
	tokenID     string
	side        types.Side
	makerAmount *big.Int
	takerAmount *big.Int
	feeRateBps  *int
	nonce       *int
	expiration  *int64
	taker       *string
	negRisk     *bool
}

func (ob *OrderBuilder) sign(p orderParts) (*types.SignedOrder, error) {
	c := ob.client
	if c.signer == nil {
		return nil, errors.New("no signer configured, cannot build order")
	}

	contractConfig, err := GetContractConfig(c.chainID)
	if err != nil {
		return nil, err
	}
	exchangeAddress := contractConfig.Exchange
	if p.negRisk != nil && *p.negRisk {
		exchangeAddress = contractConfig.NegRiskExchange
	}

	signerAddress := c.signer.Address().Hex()
	maker := signerAddress
	if c.funderAddress != "" {
		maker = c.funderAddress
	}

	taker := zeroAddress
	if p.taker != nil && *p.taker != "" {
		taker = *p.taker
	}

	feeRateBps := big.NewInt(0)
	if p.feeRateBps != nil {
		feeRateBps = big.NewInt(int64(*p.feeRateBps))
	}
	nonce := big.NewInt(0)
	if p.nonce != nil {
		nonce = big.NewInt(int64(*p.nonce))
	}
	expiration := big.NewInt(0)
	if p.expiration != nil {
		expiration = big.NewInt(*p.expiration)
	}

	tokenID, ok := new(big.Int).SetString(p.tokenID, 10)
	if !ok {
		return nil, errors.Errorf("invalid tokenID: %s", p.tokenID)
	}

	salt := time.Now().UnixNano()

	orderData := &signing.OrderData{
		Salt:          salt,
		Maker:         maker,
		Signer:        signerAddress,
		Taker:         taker,
		TokenID:       tokenID,
		MakerAmount:   p.makerAmount,
		TakerAmount:   p.takerAmount,
		Expiration:    expiration,
		Nonce:         nonce,
		FeeRateBps:    feeRateBps,
		Side:          p.side,
		SignatureType: c.signatureType,
	}

	signature, err := signing.BuildOrderSignature(c.signer, c.chainID, exchangeAddress, orderData)
	if err != nil {
		return nil, errors.Wrap(err, "sign order")
	}

	return &types.SignedOrder{
		Salt:          salt,
		Maker:         maker,
		Signer:        signerAddress,
		Taker:         taker,
		TokenID:       p.tokenID,
		MakerAmount:   p.makerAmount.String(),
		TakerAmount:   p.takerAmount.String(),
		Expiration:    expiration.String(),
		Nonce:         nonce.String(),
		FeeRateBps:    feeRateBps.String(),
		Side:          p.side,
		SignatureType: int(c.signatureType),
		Signature:     signature,
	}, nil
}

func decimalPlaces(num float64) int {
	if num == math.Trunc(num) {
		return 0
	}
	str := strconv.FormatFloat(num, 'f', -1, 64)
	parts := strings.Split(str, ".")
	if len(parts) < 2 {
		return 0
	}
	return len(parts[1])
}

func roundNormal(num float64, decimals int) float64 {
	if decimalPlaces(num) <= decimals {
		return num
	}
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(num*multiplier) / multiplier
}

func roundDown(num float64, decimals int) float64 {
	if decimalPlaces(num) <= decimals {
		return num
	}
	multiplier := math.Pow(10, float64(decimals))
	return math.Floor(num*multiplier) / multiplier
}

func roundUp(num float64, decimals int) float64 {
	if decimalPlaces(num) <= decimals {
		return num
	}
	multiplier := math.Pow(10, float64(decimals))
	return math.Ceil(num*multiplier) / multiplier
}

// getOrderRawAmounts computes maker and taker amounts for a limit order.
// For BUY the maker pays USDC and takes shares, for SELL the reverse.
func getOrderRawAmounts(side types.Side, size, price float64, roundConfig RoundConfig) (rawMakerAmt, rawTakerAmt float64) {
	rawPrice := roundNormal(price, roundConfig.Price)

	if side == types.SideBuy {
		rawTakerAmt = roundDown(size, roundConfig.Size)
		rawMakerAmt = rawTakerAmt * rawPrice
		if decimalPlaces(rawMakerAmt) > roundConfig.Amount {
			rawMakerAmt = roundUp(rawMakerAmt, roundConfig.Amount+4)
			if decimalPlaces(rawMakerAmt) > roundConfig.Amount {
				rawMakerAmt = roundDown(rawMakerAmt, roundConfig.Amount)
			}
		}
		return rawMakerAmt, rawTakerAmt
	}

	rawMakerAmt = roundDown(size, roundConfig.Size)
	rawTakerAmt = rawMakerAmt * rawPrice
	if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
		rawTakerAmt = roundUp(rawTakerAmt, roundConfig.Amount+4)
		if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
			rawTakerAmt = roundDown(rawTakerAmt, roundConfig.Amount)
		}
	}
	return rawMakerAmt, rawTakerAmt
}

// getMarketOrderRawAmounts computes maker and taker amounts for a market
// order. Amount is USDC for BUY and shares for SELL.
func getMarketOrderRawAmounts(side types.Side, amount, price float64, roundConfig RoundConfig) (rawMakerAmt, rawTakerAmt float64) {
	rawPrice := roundNormal(price, roundConfig.Price)

	if side == types.SideBuy {
		rawMakerAmt = roundDown(amount, roundConfig.Size)
		rawTakerAmt = rawMakerAmt / rawPrice
		if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
			rawTakerAmt = roundUp(rawTakerAmt, roundConfig.Amount+4)
			if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
				rawTakerAmt = roundDown(rawTakerAmt, roundConfig.Amount)
			}
		}
		return rawMakerAmt, rawTakerAmt
	}

	rawMakerAmt = roundDown(amount, roundConfig.Size)
	rawTakerAmt = rawMakerAmt * rawPrice
	if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
		rawTakerAmt = roundUp(rawTakerAmt, roundConfig.Amount+4)
		if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
			rawTakerAmt = roundDown(rawTakerAmt, roundConfig.Amount)
		}
	}
	return rawMakerAmt, rawTakerAmt
}

// parseUnits scales a decimal value into the token's integer units.
func parseUnits(value float64, decimals int) *big.Int {
	multiplier := new(big.Float).SetFloat64(math.Pow(10, float64(decimals)))
	valueBig := new(big.Float).SetFloat64(value)
	result, _ := new(big.Float).Mul(valueBig, multiplier).Int(nil)
	return result
}
