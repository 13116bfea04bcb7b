package types

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderType is the execution variant accepted by the exchange.
type OrderType string

const (
	OrderTypeGTC OrderType = "GTC" // Good Till Cancel
	OrderTypeFOK OrderType = "FOK" // Fill or Kill
	OrderTypeGTD OrderType = "GTD" // Good Till Date
	OrderTypeFAK OrderType = "FAK" // Fill and Kill
)

// Chain is the target blockchain network.
type Chain int

const (
	ChainPolygon Chain = 137
	ChainAmoy    Chain = 80002
)

// SignatureType selects how the exchange verifies order signatures.
type SignatureType int

const (
	SignatureTypeEOA        SignatureType = 0 // standard Ethereum wallet
	SignatureTypeMagic      SignatureType = 1 // POLY_PROXY - Magic Link login
	SignatureTypeGnosisSafe SignatureType = 2 // GNOSIS_SAFE proxy wallet
)

// AssetType scopes a balance/allowance query.
type AssetType string

const (
	AssetTypeCollateral  AssetType = "COLLATERAL"
	AssetTypeConditional AssetType = "CONDITIONAL"
)

// TickSize is the minimum price increment of an instrument.
type TickSize string

const (
	TickSize01    TickSize = "0.1"
	TickSize001   TickSize = "0.01"
	TickSize0001  TickSize = "0.001"
	TickSize00001 TickSize = "0.0001"
)

// ValidTickSize reports whether s is one of the tick sizes the exchange accepts.
func ValidTickSize(s TickSize) bool {
	switch s {
	case TickSize01, TickSize001, TickSize0001, TickSize00001:
		return true
	}
	return false
}

// ApiKeyCreds is the credential set for L2 authentication.
// Immutable once obtained within a session.
type ApiKeyCreds struct {
	Key        string
	Secret     string
	Passphrase string
}

// ApiKeyRaw is the API wire format for credentials.
type ApiKeyRaw struct {
	ApiKey     string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// Creds converts the wire form into ApiKeyCreds.
func (r *ApiKeyRaw) Creds() *ApiKeyCreds {
	return &ApiKeyCreds{
		Key:        r.ApiKey,
		Secret:     r.Secret,
		Passphrase: r.Passphrase,
	}
}
