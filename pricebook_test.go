package cartera

import "testing"

func TestPriceBook(t *testing.T) {
	positions, prices := portfolio()
	var book PriceBook

	if s := book.Load(); s.Prices == nil || s.Rate.IsSet() {
		t.Errorf("zero PriceBook should hold an empty snapshot, got %+v", s)
	}
	e := book.Evaluate(positions, DefaultOptions())
	if e.Summary.Pending != len(e.Rows) {
		t.Errorf("without prices all rows should be pending, got %d of %d", e.Summary.Pending, len(e.Rows))
	}

	book.Store(&Snapshot{Prices: prices, Rate: NewRate(1000)})
	e = book.Evaluate(positions, DefaultOptions())
	if e.Summary.Pending != 1 {
		t.Errorf("Pending = %d, want 1", e.Summary.Pending)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			book.Store(&Snapshot{Prices: prices, Rate: NewRate(1000 + i)})
		}
	}()
	for i := 0; i < 100; i++ {
		if s := book.Load(); !s.Rate.IsSet() || len(s.Prices) != 3 {
			t.Fatalf("Load() returned an inconsistent snapshot: %+v", s)
		}
	}
	<-done
}
