package cartera

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssetType is the closed set of asset classes a position can belong to.
// The zero value is not a valid asset type, filters use it to mean "any".
type AssetType int

const (
	Crypto            AssetType = iota + 1 // "Cripto", quoted in USD
	Stock                                  // "Acción", quoted in ARS
	DepositaryReceipt                      // "CEDEAR", quoted in ARS
)

// AssetTypes lists every valid asset type.
var AssetTypes = []AssetType{Crypto, Stock, DepositaryReceipt}

// String returns the canonical label of the asset type.
func (t AssetType) String() string {
	switch t {
	case Crypto:
		return "Cripto"
	case Stock:
		return "Acción"
	case DepositaryReceipt:
		return "CEDEAR"
	default:
		return ""
	}
}

// IsValid reports whether t is one of AssetTypes.
func (t AssetType) IsValid() bool { return t >= Crypto && t <= DepositaryReceipt }

// NativeCurrency is the currency market prices of t are quoted in.
//
// Every currency decision of the valuation goes through this switch.
func (t AssetType) NativeCurrency() Currency {
	switch t {
	case Crypto:
		return USD
	case Stock, DepositaryReceipt:
		return ARS
	default:
		panic(fmt.Sprintf("no native currency for asset type %d", int(t)))
	}
}

// slug is the label stripped of diacritics and lower-cased, "accion" for Stock.
func (t AssetType) slug() string { return StripDiacritics(t.String()) }

// ParseAssetType parses an asset type label. It ignores case and diacritics,
// so "Acción", "accion" and "ACCION" all return Stock.
func ParseAssetType(s string) (AssetType, error) {
	switch StripDiacritics(strings.TrimSpace(s)) {
	case "cripto", "crypto":
		return Crypto, nil
	case "accion", "acciones", "stock":
		return Stock, nil
	case "cedear", "cedears":
		return DepositaryReceipt, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAssetType, s)
}

func (t AssetType) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAssetType, int(t))
	}
	return json.Marshal(t.String())
}

func (t *AssetType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseAssetType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
