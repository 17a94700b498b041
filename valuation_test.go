package cartera

import "testing"

// single returns the one position of a single record.
func single(p RawPosition) Position { return Unmerged([]RawPosition{p})[0] }

func TestValue_CurrencyDirections(t *testing.T) {
	rate := NewRate(1000)
	tests := []struct {
		name      string
		typ       AssetType
		cost      Money
		price     Money
		display   Currency
		wantPrice Money
		wantCost  Money
	}{
		{"crypto in ARS", Crypto, usd(20), usd(30), ARS, ars(30000), ars(20000)},
		{"crypto in USD", Crypto, usd(20), usd(30), USD, usd(30), usd(20)},
		{"stock in ARS, cost USD", Stock, usd(2), ars(3000), ARS, ars(3000), ars(2000)},
		{"stock in ARS, cost ARS", Stock, ars(2000), ars(3000), ARS, ars(3000), ars(2000)},
		{"cedear in USD, cost ARS", DepositaryReceipt, ars(2000), ars(3000), USD, usd(3), usd(2)},
		{"cedear in USD, cost USD", DepositaryReceipt, usd(2), ars(3000), USD, usd(3), usd(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := single(buy("1", tt.typ, "X", 4, tt.cost, "2024-01-01"))
			prices := PriceTable{}
			prices.Set(tt.typ, "X", tt.price)

			row := Value(p, prices, tt.display, rate)
			if !row.UnitPrice.Equal(tt.wantPrice) {
				t.Errorf("UnitPrice = %v %v, want %v", row.UnitPrice.Decimal(), row.UnitPrice.Currency(), tt.wantPrice)
			}
			if !row.UnitCost.Equal(tt.wantCost) {
				t.Errorf("UnitCost = %v %v, want %v", row.UnitCost.Decimal(), row.UnitCost.Currency(), tt.wantCost)
			}
			if !row.ChangePercent.Equal(50) {
				t.Errorf("ChangePercent = %v, want 50%%", row.ChangePercent)
			}
			if row.Pending || row.Unconverted {
				t.Errorf("Pending, Unconverted = %v, %v, want false, false", row.Pending, row.Unconverted)
			}
		})
	}
}

func TestValue_CryptoInPesos(t *testing.T) {
	p := single(buy("1", Crypto, "BTC", 0.5, usd(20000), "2024-01-01"))
	prices := PriceTable{}
	prices.Set(Crypto, "BTC", usd(25000))

	row := Value(p, prices, ARS, NewRate(1000))

	checks := []struct {
		name      string
		got, want Money
	}{
		{"UnitPrice", row.UnitPrice, ars(25_000_000)},
		{"UnitCost", row.UnitCost, ars(20_000_000)},
		{"Change", row.Change, ars(2_500_000)},
		{"Value", row.Value, ars(12_500_000)},
		{"Invested", row.Invested, ars(10_000_000)},
	}
	for _, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %v %v, want %v", c.name, c.got.Decimal(), c.got.Currency(), c.want)
		}
	}
	if !row.ChangePercent.Equal(25) {
		t.Errorf("ChangePercent = %v, want 25%%", row.ChangePercent)
	}
}

func TestValue_StockInDollars(t *testing.T) {
	p := single(buy("1", Stock, "XYZ", 10, ars(100), "2024-01-01"))
	prices := PriceTable{}
	prices.Set(Stock, "XYZ", ars(150))

	row := Value(p, prices, USD, NewRate(1000))

	if !row.UnitPrice.Equal(usd(0.15)) {
		t.Errorf("UnitPrice = %v, want 0.15", row.UnitPrice.Decimal())
	}
	if !row.UnitCost.Equal(usd(0.10)) {
		t.Errorf("UnitCost = %v, want 0.10", row.UnitCost.Decimal())
	}
	if !row.Change.Equal(usd(0.5)) {
		t.Errorf("Change = %v, want 0.5", row.Change.Decimal())
	}
	if !row.ChangePercent.Equal(50) {
		t.Errorf("ChangePercent = %v, want 50%%", row.ChangePercent)
	}
}

func TestValue_Pending(t *testing.T) {
	p := single(buy("1", Stock, "NOPE", 10, ars(100), "2024-01-01"))
	row := Value(p, PriceTable{}, ARS, NewRate(1000))

	if !row.Pending {
		t.Fatalf("row without price should be pending")
	}
	if !row.Value.IsZero() || !row.Change.IsZero() || !row.UnitPrice.IsZero() || row.ChangePercent != 0 {
		t.Errorf("pending row has price derived values: %+v", row)
	}
	if !row.Invested.Equal(ars(1000)) {
		t.Errorf("Invested = %v, want 1000, the cost is known", row.Invested.Decimal())
	}

	// a zero price is a price.
	prices := PriceTable{}
	prices.Set(Stock, "NOPE", ars(0))
	if row := Value(p, prices, ARS, NewRate(1000)); row.Pending {
		t.Errorf("row with a zero price should not be pending")
	}
}

func TestValue_NoRate(t *testing.T) {
	p := single(buy("1", Crypto, "ETH", 2, usd(1000), "2024-01-01"))
	prices := PriceTable{}
	prices.Set(Crypto, "ETH", usd(1500))

	row := Value(p, prices, ARS, NoRate)

	if !row.Unconverted {
		t.Errorf("row valued without a rate should be marked unconverted")
	}
	// numbers pass through unchanged.
	if got := row.UnitPrice.Decimal(); !got.Equal(usd(1500).Decimal()) {
		t.Errorf("UnitPrice = %v, want 1500", got)
	}
	if got := row.UnitCost.Decimal(); !got.Equal(usd(1000).Decimal()) {
		t.Errorf("UnitCost = %v, want 1000", got)
	}
	if !row.ChangePercent.Equal(50) {
		t.Errorf("ChangePercent = %v, want 50%%", row.ChangePercent)
	}

	// same currency needs no rate.
	row = Value(p, prices, USD, NoRate)
	if row.Unconverted {
		t.Errorf("row valued in its native currency should not be unconverted")
	}
}

func TestValue_ZeroCost(t *testing.T) {
	p := single(buy("1", Stock, "GIFT", 10, ars(0), "2024-01-01"))
	prices := PriceTable{}
	prices.Set(Stock, "GIFT", ars(10))

	row := Value(p, prices, ARS, NoRate)
	if row.ChangePercent != 0 {
		t.Errorf("ChangePercent = %v, want 0 when cost is zero", row.ChangePercent)
	}
	if !row.Change.Equal(ars(100)) {
		t.Errorf("Change = %v, want 100", row.Change.Decimal())
	}
}

func TestValue_UnlabelledCost(t *testing.T) {
	p := single(buy("1", Stock, "GGAL", 10, M(100, ""), "2024-01-01"))
	prices := PriceTable{}
	prices.Set(Stock, "GGAL", ars(150))

	// the cost reads in the native currency of the type.
	row := Value(p, prices, USD, NewRate(1000))
	if !row.UnitCost.Equal(usd(0.1)) {
		t.Errorf("UnitCost = %v %v, want 0.1 USD", row.UnitCost.Decimal(), row.UnitCost.Currency())
	}
	if row.Unconverted {
		t.Errorf("row should be converted")
	}

	// an unknown type cannot be relabelled, the row stays unconverted.
	p.Key = AssetKey{Ticker: "GGAL"}
	row = Value(p, prices, USD, NewRate(1000))
	if !row.Pending || !row.Unconverted {
		t.Errorf("row of unknown type: pending %v, unconverted %v, want both", row.Pending, row.Unconverted)
	}
}

func TestValue_CryptoCostInPesos(t *testing.T) {
	p := single(buy("1", Crypto, "BTC", 1, ars(20000), "2024-01-01"))
	prices := PriceTable{}
	prices.Set(Crypto, "BTC", usd(30))

	// a cost is converted from the currency it was paid in, whatever the type.
	row := Value(p, prices, USD, NewRate(1000))
	if !row.UnitCost.Equal(usd(20)) || !row.UnitPrice.Equal(usd(30)) {
		t.Errorf("Value() = cost %v, price %v, want 20 and 30 USD", row.UnitCost.Decimal(), row.UnitPrice.Decimal())
	}
}
