package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/cartera"
	"github.com/rs/zerolog"
)

const (
	coinsJSON = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":25000.5},
  {"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":1800},
  {"id":"bitcoin-wrapped-fake","symbol":"btc","name":"Fake Bitcoin","current_price":1},
  {"id":"nothing","symbol":"nil","name":"No Price","current_price":null}
]`
	cedearsJSON = `[
  {"ticker":"AAPL","name":"Apple Inc.","ars":{"c":8000.25,"o":7900}},
  {"ticker":"KO","name":"Coca-Cola","ars":{"c":null}},
  {"ticker":"MSFT","name":"Microsoft"}
]`
	accionesJSON = `[
  {"ticker":"ggal","name":"Grupo Financiero Galicia","ars":{"c":150}},
  {"ticker":"YPFD","name":"YPF","ars":{"c":20000}}
]`
	dolaresJSON = `[
  {"moneda":"USD","casa":"oficial","nombre":"Oficial","compra":900,"venta":940},
  {"moneda":"USD","casa":"blue","nombre":"Blue","compra":1000,"venta":1020},
  {"moneda":"USD","casa":"contadoconliqui","nombre":"Contado con liquidación","compra":1010.5,"venta":1045.5}
]`
)

// failures lists the paths a test server fails on, and the answers that
// replace the default ones.
type failures struct {
	mu      sync.Mutex
	paths   map[string]int
	answers map[string]string
}

func fails(paths ...string) *failures {
	f := &failures{paths: map[string]int{}, answers: map[string]string{}}
	for _, p := range paths {
		f.paths[p] = http.StatusBadGateway
	}
	return f
}

// set makes path fail with status.
func (f *failures) set(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths[path] = status
}

// answer makes path answer body.
func (f *failures) answer(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers[path] = body
}

func (f *failures) get(path, body string) (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.answers[path]; ok {
		body = b
	}
	return f.paths[path], body
}

// server serves the feeds, failing the paths in fail.
func server(t *testing.T, fail *failures) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handle := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			status, body := fail.get(path, body)
			if status != 0 {
				http.Error(w, "boom", status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		})
	}
	handle("/api/v3/coins/markets", coinsJSON)
	handle("/cedears", cedearsJSON)
	handle("/acciones", accionesJSON)
	handle("/v1/dolares", dolaresJSON)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testClient(srv *httptest.Server) *Client {
	return &Client{
		CoinGeckoURL: srv.URL + "/api/v3/coins/markets?vs_currency=usd",
		CedearsURL:   srv.URL,
		DolarURL:     srv.URL + "/v1/dolares",
		HTTP:         newHTTPClient(5*time.Second, zerolog.Nop()),
		Log:          zerolog.Nop(),
	}
}

func TestClient_Prices(t *testing.T) {
	c := testClient(server(t, fails()))
	prices, err := c.Prices(context.Background())
	if err != nil {
		t.Fatalf("Prices() unexpected error: %v", err)
	}

	want := map[cartera.AssetKey]cartera.Money{
		cartera.KeyOf(cartera.Crypto, "BTC"):             cartera.M(25000.5, cartera.USD),
		cartera.KeyOf(cartera.Crypto, "ETH"):             cartera.M(1800, cartera.USD),
		cartera.KeyOf(cartera.DepositaryReceipt, "AAPL"): cartera.M(8000.25, cartera.ARS),
		cartera.KeyOf(cartera.Stock, "GGAL"):             cartera.M(150, cartera.ARS),
		cartera.KeyOf(cartera.Stock, "YPFD"):             cartera.M(20000, cartera.ARS),
	}
	if len(prices) != len(want) {
		t.Errorf("Prices() returned %d prices, want %d: %v", len(prices), len(want), prices)
	}
	for k, w := range want {
		got, ok := prices.Lookup(k)
		if !ok || !got.Equal(w) {
			t.Errorf("price of %v = %v (%v), want %v", k, got, ok, w)
		}
	}
	// listings without close price are left out, so the positions stay pending.
	for _, k := range []cartera.AssetKey{
		cartera.KeyOf(cartera.DepositaryReceipt, "KO"),
		cartera.KeyOf(cartera.DepositaryReceipt, "MSFT"),
		cartera.KeyOf(cartera.Crypto, "NIL"),
	} {
		if _, ok := prices.Lookup(k); ok {
			t.Errorf("%v has no price, it should not be in the table", k)
		}
	}
}

func TestClient_Quotes(t *testing.T) {
	c := testClient(server(t, fails()))
	quotes, err := c.Listed(context.Background(), cartera.Stock)
	if err != nil {
		t.Fatalf("Listed() unexpected error: %v", err)
	}
	if len(quotes) != 2 || quotes[0].Name != "Grupo Financiero Galicia" || quotes[0].Key.Ticker != "GGAL" {
		t.Errorf("Listed(Stock) = %+v", quotes)
	}
	if _, err := c.Listed(context.Background(), cartera.Crypto); !errors.Is(err, cartera.ErrUnknownAssetType) {
		t.Errorf("Listed(Crypto) error = %v, want ErrUnknownAssetType", err)
	}
}

func TestClient_PartialFailure(t *testing.T) {
	c := testClient(server(t, fails("/cedears")))
	prices, err := c.Prices(context.Background())
	if err == nil {
		t.Fatalf("Prices() expected an error for the failing feed")
	}
	if _, ok := prices.Lookup(cartera.KeyOf(cartera.Stock, "GGAL")); !ok {
		t.Errorf("prices of the other feeds should be returned")
	}
	if _, ok := prices.Lookup(cartera.KeyOf(cartera.DepositaryReceipt, "AAPL")); ok {
		t.Errorf("prices of the failing feed should not be returned")
	}
}

func TestClient_Rate(t *testing.T) {
	c := testClient(server(t, fails()))
	rate, err := c.Rate(context.Background())
	if err != nil {
		t.Fatalf("Rate() unexpected error: %v", err)
	}
	if got := rate.String(); got != "1045.5" {
		t.Errorf("Rate() = %v, want 1045.5", got)
	}

	c = testClient(server(t, fails("/v1/dolares")))
	rate, err = c.Rate(context.Background())
	if err == nil || rate.IsSet() {
		t.Errorf("Rate() = %v, %v, want an error and no rate", rate, err)
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"number", `[{"casa":"contadoconliqui","venta":1200}]`, "1200", false},
		{"string", `[{"casa":"contadoconliqui","venta":" 1200.75 "}]`, "1200.75", false},
		{"missing", `[{"casa":"blue","venta":1200}]`, "-", true},
		{"zero", `[{"casa":"contadoconliqui","venta":0}]`, "-", true},
		{"null", `[{"casa":"contadoconliqui","venta":null}]`, "-", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var jobj any
			if err := json.Unmarshal([]byte(tt.input), &jobj); err != nil {
				t.Fatal(err)
			}
			rate, err := ParseRate(jobj)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrNoRate) {
				t.Errorf("ParseRate() error = %v, want ErrNoRate", err)
			}
			if got := rate.String(); got != tt.want {
				t.Errorf("ParseRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := testClient(srv)
	c.HTTP = newHTTPClient(50*time.Millisecond, zerolog.Nop())
	if _, err := c.Rate(context.Background()); err == nil {
		t.Errorf("Rate() expected a timeout error")
	}
}

func TestPoller(t *testing.T) {
	fail := fails()
	srv := server(t, fail)
	var book cartera.PriceBook
	var updates atomic.Int32
	p := &Poller{
		Client:   testClient(srv),
		Book:     &book,
		Interval: 10 * time.Millisecond,
		Log:      zerolog.Nop(),
		OnUpdate: func(*cartera.Snapshot) { updates.Add(1) },
	}

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	first := book.Load()
	if len(first.Prices) != 5 || !first.Rate.IsSet() {
		t.Fatalf("Refresh() stored %+v", first)
	}

	// the stock feed moves while the crypto feed is rate limited.
	fail.set("/api/v3/coins/markets", http.StatusTooManyRequests)
	fail.answer("/acciones", `[{"ticker":"GGAL","name":"Grupo Financiero Galicia","ars":{"c":999}}]`)
	if err := p.Refresh(context.Background()); err == nil {
		t.Errorf("Refresh() expected an error")
	}
	second := book.Load()
	if got, _ := second.Prices.Lookup(cartera.KeyOf(cartera.Stock, "GGAL")); !got.Equal(cartera.M(999, cartera.ARS)) {
		t.Errorf("GGAL price = %v, want the refreshed 999", got)
	}
	if _, ok := second.Prices.Lookup(cartera.KeyOf(cartera.Stock, "YPFD")); ok {
		t.Errorf("YPFD is no longer listed, its price should be gone")
	}
	if got, _ := second.Prices.Lookup(cartera.KeyOf(cartera.Crypto, "BTC")); !got.Equal(cartera.M(25000.5, cartera.USD)) {
		t.Errorf("BTC price = %v, want the previous 25000.5", got)
	}
	if !second.Rate.Decimal().Equal(first.Rate.Decimal()) {
		t.Errorf("rate = %v, want %v", second.Rate, first.Rate)
	}

	// a failing rate feed keeps the previous rate.
	fail.set("/v1/dolares", http.StatusBadGateway)
	if err := p.Refresh(context.Background()); err == nil {
		t.Errorf("Refresh() expected an error")
	}
	if third := book.Load(); !third.Rate.Decimal().Equal(first.Rate.Decimal()) || len(third.Prices) != len(second.Prices) {
		t.Errorf("Refresh() with failing rate stored %+v", third)
	}
	if got := updates.Load(); got != 3 {
		t.Errorf("OnUpdate called %d times, want 3", got)
	}
}

func TestPoller_Run(t *testing.T) {
	var book cartera.PriceBook
	var updates atomic.Int32
	p := &Poller{
		Client:   testClient(server(t, fails())),
		Book:     &book,
		Interval: 10 * time.Millisecond,
		Log:      zerolog.Nop(),
		OnUpdate: func(*cartera.Snapshot) { updates.Add(1) },
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := p.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want context.DeadlineExceeded", err)
	}
	if got := updates.Load(); got < 2 {
		t.Errorf("Run() refreshed %d times, want at least 2", got)
	}
	if !book.Load().Rate.IsSet() {
		t.Errorf("Run() did not store the rate")
	}
}
