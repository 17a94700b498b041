// Package feeds fetches market prices and the CCL exchange rate from public
// APIs.
//
// Crypto prices come from CoinGecko in USD, stocks and CEDEARs from
// api.cedears.ar in ARS, and the CCL rate from dolarapi.com.
package feeds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cartera"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CCLPath selects the CCL sell price in the dolarapi answer.
const CCLPath = `$[?(@.casa=="contadoconliqui")].venta`

// Default endpoints.
const (
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd"
	DefaultCedearsURL   = "https://api.cedears.ar"
	DefaultDolarURL     = "https://dolarapi.com/v1/dolares"
)

// ErrNoRate is returned when the rate feed has no usable CCL quote.
var ErrNoRate = errors.New("no CCL rate")

// Quote is the current price of one asset.
type Quote struct {
	Key   cartera.AssetKey
	Name  string
	Price cartera.Money // in the native currency of Key.Type
}

// Client fetches quotes and the rate. Its zero value uses the default
// endpoints and http.DefaultClient.
type Client struct {
	CoinGeckoURL string
	CedearsURL   string // base URL, "/cedears" and "/acciones" are appended
	DolarURL     string
	HTTP         *http.Client
	Log          zerolog.Logger
}

// NewClient returns a Client on the default endpoints with a per request
// timeout.
func NewClient(timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		CoinGeckoURL: DefaultCoinGeckoURL,
		CedearsURL:   DefaultCedearsURL,
		DolarURL:     DefaultDolarURL,
		HTTP:         newHTTPClient(timeout, log),
		Log:          log,
	}
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// coin is one entry of the CoinGecko markets answer.
type coin struct {
	ID           string              `json:"id"`
	Symbol       string              `json:"symbol"`
	Name         string              `json:"name"`
	CurrentPrice decimal.NullDecimal `json:"current_price"`
}

// listing is one entry of the api.cedears.ar answers.
type listing struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	ARS    struct {
		C decimal.NullDecimal `json:"c"`
	} `json:"ars"`
}

// Crypto fetches crypto quotes, in USD. Coins are listed by market cap, when
// two coins share a symbol the first one is kept.
func (c *Client) Crypto(ctx context.Context) ([]Quote, error) {
	var coins []coin
	addr := or(c.CoinGeckoURL, DefaultCoinGeckoURL)
	if err := getJSON(ctx, c.client(), addr, &coins); err != nil {
		return nil, fmt.Errorf("cannot fetch crypto prices: %w", err)
	}
	seen := make(map[string]bool, len(coins))
	quotes := make([]Quote, 0, len(coins))
	for _, x := range coins {
		ticker := strings.ToUpper(strings.TrimSpace(x.Symbol))
		if ticker == "" || !x.CurrentPrice.Valid || seen[ticker] {
			continue
		}
		seen[ticker] = true
		quotes = append(quotes, Quote{
			Key:   cartera.KeyOf(cartera.Crypto, ticker),
			Name:  x.Name,
			Price: cartera.M(x.CurrentPrice.Decimal, cartera.USD),
		})
	}
	c.Log.Debug().Str("feed", "coingecko").Int("count", len(quotes)).Msg("quotes fetched")
	return quotes, nil
}

// Listed fetches the quotes of one api.cedears.ar listing, in ARS. t must be
// Stock or DepositaryReceipt.
func (c *Client) Listed(ctx context.Context, t cartera.AssetType) ([]Quote, error) {
	var path string
	switch t {
	case cartera.Stock:
		path = "/acciones"
	case cartera.DepositaryReceipt:
		path = "/cedears"
	default:
		return nil, fmt.Errorf("%w: %v is not listed on api.cedears.ar", cartera.ErrUnknownAssetType, t)
	}
	var items []listing
	addr := strings.TrimSuffix(or(c.CedearsURL, DefaultCedearsURL), "/") + path
	if err := getJSON(ctx, c.client(), addr, &items); err != nil {
		return nil, fmt.Errorf("cannot fetch %s prices: %w", t, err)
	}
	quotes := make([]Quote, 0, len(items))
	for _, x := range items {
		// a listing without close has no price, the position stays pending.
		if strings.TrimSpace(x.Ticker) == "" || !x.ARS.C.Valid {
			continue
		}
		quotes = append(quotes, Quote{
			Key:   cartera.KeyOf(t, x.Ticker),
			Name:  x.Name,
			Price: cartera.M(x.ARS.C.Decimal, cartera.ARS),
		})
	}
	c.Log.Debug().Str("feed", "cedears").Stringer("type", t).Int("count", len(quotes)).Msg("quotes fetched")
	return quotes, nil
}

// Fetch fetches the quotes of one asset type from its feed.
func (c *Client) Fetch(ctx context.Context, t cartera.AssetType) ([]Quote, error) {
	if t == cartera.Crypto {
		return c.Crypto(ctx)
	}
	return c.Listed(ctx, t)
}

// Quotes fetches the quotes of every asset type. Each feed is independent: the
// quotes of the feeds that succeeded are returned along with the errors of
// the others.
func (c *Client) Quotes(ctx context.Context) ([]Quote, error) {
	var all []Quote
	var errs []error
	for _, t := range cartera.AssetTypes {
		quotes, err := c.Fetch(ctx, t)
		if err != nil {
			errs = append(errs, err)
		}
		all = append(all, quotes...)
	}
	return all, errors.Join(errs...)
}

// Prices fetches a price table of every asset type, see Quotes.
func (c *Client) Prices(ctx context.Context) (cartera.PriceTable, error) {
	quotes, err := c.Quotes(ctx)
	return Table(quotes), err
}

// Table builds a price table out of quotes.
func Table(quotes []Quote) cartera.PriceTable {
	prices := make(cartera.PriceTable, len(quotes))
	for _, q := range quotes {
		prices[q.Key] = q.Price
	}
	return prices
}

// Rate fetches the CCL rate, in ARS per USD.
func (c *Client) Rate(ctx context.Context) (cartera.Rate, error) {
	var jobj any
	addr := or(c.DolarURL, DefaultDolarURL)
	if err := getJSON(ctx, c.client(), addr, &jobj); err != nil {
		return cartera.NoRate, fmt.Errorf("cannot fetch CCL rate: %w", err)
	}
	rate, err := ParseRate(jobj)
	if err != nil {
		return cartera.NoRate, err
	}
	c.Log.Debug().Str("feed", "dolarapi").Stringer("rate", rate).Msg("rate fetched")
	return rate, nil
}

// ParseRate extracts the CCL rate out of a decoded dolarapi answer.
func ParseRate(jobj any) (cartera.Rate, error) {
	jval, err := jsonpath.Get(CCLPath, jobj)
	if err != nil {
		return cartera.NoRate, fmt.Errorf("%w: %q: %w", ErrNoRate, CCLPath, err)
	}
	// a filter always returns a list, keep the first answer if any.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return cartera.NoRate, fmt.Errorf("%w: no %q entry", ErrNoRate, "contadoconliqui")
		}
		jval = jlist[0]
	}
	var v decimal.Decimal
	switch x := jval.(type) {
	case float64:
		v = decimal.NewFromFloat(x)
	case string:
		v, err = decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return cartera.NoRate, fmt.Errorf("%w: invalid value %q: %w", ErrNoRate, x, err)
		}
	default:
		return cartera.NoRate, fmt.Errorf("%w: not a number %v", ErrNoRate, jval)
	}
	rate := cartera.NewRate(v)
	if !rate.IsSet() {
		return cartera.NoRate, fmt.Errorf("%w: %v is not positive", ErrNoRate, v)
	}
	return rate, nil
}

// Snapshot fetches prices and rate together. On error, the snapshot holds
// what could be fetched.
func (c *Client) Snapshot(ctx context.Context) (*cartera.Snapshot, error) {
	prices, perr := c.Prices(ctx)
	rate, rerr := c.Rate(ctx)
	return &cartera.Snapshot{
		Prices: prices,
		Rate:   rate,
		AsOf:   time.Now(),
	}, errors.Join(perr, rerr)
}
