package signing

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// BuildClobAuthSignature signs the ClobAuth attestation used for L1
// authentication (credential creation and derivation).
func BuildClobAuthSignature(
	signer Signer,
	chainID types.Chain,
	timestamp int64,
	nonce int64,
) (string, error) {
	domain := apitypes.TypedDataDomain{
		Name:    ClobDomainName,
		Version: ClobVersion,
		ChainId: math.NewHexOrDecimal256(int64(chainID)),
	}

	typeDefs := apitypes.Types{
		"EIP712Domain": {
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
		},
		"ClobAuth": {
			{Name: "address", Type: "address"},
			{Name: "timestamp", Type: "string"},
			{Name: "nonce", Type: "uint256"},
			{Name: "message", Type: "string"},
		},
	}

	message := map[string]interface{}{
		"address":   signer.Address().Hex(),
		"timestamp": fmt.Sprintf("%d", timestamp),
		"nonce":     big.NewInt(nonce),
		"message":   MsgToSign,
	}

	sig, err := signer.SignTypedData(apitypes.TypedData{
		Types:       typeDefs,
		PrimaryType: "ClobAuth",
		Domain:      domain,
		Message:     message,
	})
	if err != nil {
		return "", fmt.Errorf("build clob auth signature: %w", err)
	}
	return "0x" + common.Bytes2Hex(sig), nil
}
