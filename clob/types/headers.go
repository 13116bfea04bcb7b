package types

// L1PolyHeader authenticates a request with an EIP-712 wallet signature.
type L1PolyHeader struct {
	PolyAddress   string
	PolySignature string
	PolyTimestamp string
	PolyNonce     string
}

// L2PolyHeader authenticates a request with API-key HMAC.
type L2PolyHeader struct {
	PolyAddress    string
	PolySignature  string
	PolyTimestamp  string
	PolyAPIKey     string
	PolyPassphrase string
}

// L2HeaderArgs describes the request being signed.
type L2HeaderArgs struct {
	Method      string
	RequestPath string
	Body        *string
}
