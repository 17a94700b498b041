package cartera

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics decomposes s (NFD), removes the combining marks and
// lower-cases the result: "Acción" becomes "accion".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// AssetKey identifies an asset in the price table, in the cost buckets and in
// merged positions. Always build it with KeyOf.
type AssetKey struct {
	Type   AssetType
	Ticker string // upper case
}

// KeyOf returns the canonical key of a ticker of type t.
func KeyOf(t AssetType, ticker string) AssetKey {
	return AssetKey{Type: t, Ticker: strings.ToUpper(strings.TrimSpace(ticker))}
}

// Market returns the market price key, "Acción-GGAL".
func (k AssetKey) Market() string { return k.Type.String() + "-" + k.Ticker }

// Cost returns the cost basis bucket key, "GGAL-accion".
func (k AssetKey) Cost() string { return k.Ticker + "-" + k.Type.slug() }

func (k AssetKey) String() string { return k.Market() }

// ParseMarketKey parses a market key as produced by AssetKey.Market. The type
// label is parsed with ParseAssetType so "accion-ggal" is accepted too.
func ParseMarketKey(s string) (AssetKey, error) {
	label, ticker, ok := strings.Cut(s, "-")
	if !ok || strings.TrimSpace(ticker) == "" {
		return AssetKey{}, fmt.Errorf("invalid market key %q, want <type>-<ticker>", s)
	}
	t, err := ParseAssetType(label)
	if err != nil {
		return AssetKey{}, fmt.Errorf("invalid market key %q: %w", s, err)
	}
	return KeyOf(t, ticker), nil
}
