package signing

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// OrderData is the order struct hashed and signed for the exchange contract.
type OrderData struct {
	Salt          int64
	Maker         string
	Signer        string
	Taker         string
	TokenID       *big.Int
	MakerAmount   *big.Int
	TakerAmount   *big.Int
	Expiration    *big.Int
	Nonce         *big.Int
	FeeRateBps    *big.Int
	Side          types.Side
	SignatureType types.SignatureType
}

// BuildOrderSignature signs an order against the given exchange contract.
// The verifying contract differs between regular and neg-risk markets; using
// the wrong one is rejected as an invalid signature.
func BuildOrderSignature(
	signer Signer,
	chainID types.Chain,
	exchangeAddress string,
	order *OrderData,
) (string, error) {
	domain := apitypes.TypedDataDomain{
		Name:              ExchangeDomainName,
		Version:           ExchangeVersion,
		ChainId:           math.NewHexOrDecimal256(int64(chainID)),
		VerifyingContract: exchangeAddress,
	}

	typeDefs := apitypes.Types{
		"EIP712Domain": {
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
			{Name: "verifyingContract", Type: "address"},
		},
		"Order": {
			{Name: "salt", Type: "uint256"},
			{Name: "maker", Type: "address"},
			{Name: "signer", Type: "address"},
			{Name: "taker", Type: "address"},
			{Name: "tokenId", Type: "uint256"},
			{Name: "makerAmount", Type: "uint256"},
			{Name: "takerAmount", Type: "uint256"},
			{Name: "expiration", Type: "uint256"},
			{Name: "nonce", Type: "uint256"},
			{Name: "feeRateBps", Type: "uint256"},
			{Name: "side", Type: "uint8"},
			{Name: "signatureType", Type: "uint8"},
		},
	}

	// BUY = 0, SELL = 1 on-chain.
	var sideUint8 int64 = 1
	if order.Side == types.SideBuy {
		sideUint8 = 0
	}

	message := map[string]interface{}{
		"salt":          big.NewInt(order.Salt),
		"maker":         common.HexToAddress(order.Maker).Hex(),
		"signer":        common.HexToAddress(order.Signer).Hex(),
		"taker":         common.HexToAddress(order.Taker).Hex(),
		"tokenId":       order.TokenID,
		"makerAmount":   order.MakerAmount,
		"takerAmount":   order.TakerAmount,
		"expiration":    order.Expiration,
		"nonce":         order.Nonce,
		"feeRateBps":    order.FeeRateBps,
		"side":          big.NewInt(sideUint8),
		"signatureType": big.NewInt(int64(order.SignatureType)),
	}

	sig, err := signer.SignTypedData(apitypes.TypedData{
		Types:       typeDefs,
		PrimaryType: "Order",
		Domain:      domain,
		Message:     message,
	})
	if err != nil {
		return "", fmt.Errorf("build order signature: %w", err)
	}
	return "0x" + common.Bytes2Hex(sig), nil
}
