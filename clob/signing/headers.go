package signing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// CreateL1Headers builds wallet-signature auth headers for credential
// endpoints. timestamp defaults to local wall-clock seconds when nil.
func CreateL1Headers(
	signer Signer,
	chainID types.Chain,
	nonce int64,
	timestamp *int64,
) (*types.L1PolyHeader, error) {
	ts := time.Now().Unix()
	if timestamp != nil {
		ts = *timestamp
	}

	sig, err := BuildClobAuthSignature(signer, chainID, ts, nonce)
	if err != nil {
		return nil, fmt.Errorf("create l1 headers: %w", err)
	}

	return &types.L1PolyHeader{
		PolyAddress:   signer.Address().Hex(),
		PolySignature: sig,
		PolyTimestamp: strconv.FormatInt(ts, 10),
		PolyNonce:     strconv.FormatInt(nonce, 10),
	}, nil
}

// CreateL2Headers builds API-key HMAC auth headers for trading endpoints.
func CreateL2Headers(
	signer Signer,
	creds *types.ApiKeyCreds,
	args *types.L2HeaderArgs,
	timestamp *int64,
) (*types.L2PolyHeader, error) {
	ts := time.Now().Unix()
	if timestamp != nil {
		ts = *timestamp
	}

	sig, err := BuildPolyHmacSignature(creds.Secret, ts, args.Method, args.RequestPath, args.Body)
	if err != nil {
		return nil, fmt.Errorf("create l2 headers: %w", err)
	}

	return &types.L2PolyHeader{
		PolyAddress:    signer.Address().Hex(),
		PolySignature:  sig,
		PolyTimestamp:  strconv.FormatInt(ts, 10),
		PolyAPIKey:     creds.Key,
		PolyPassphrase: creds.Passphrase,
	}, nil
}
