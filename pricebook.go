package cartera

import (
	"sync/atomic"
	"time"
)

// Snapshot is a consistent view of market prices and rate.
type Snapshot struct {
	Prices PriceTable
	Rate   Rate
	AsOf   time.Time
}

// PriceBook holds the latest Snapshot. Writers replace the snapshot as a
// whole, readers never see a partially updated one.
//
// Its zero value is ready to use and holds an empty snapshot.
type PriceBook struct {
	current atomic.Pointer[Snapshot]
}

// Load returns the current snapshot. It must not be modified.
func (b *PriceBook) Load() *Snapshot {
	if s := b.current.Load(); s != nil {
		return s
	}
	return &Snapshot{Prices: PriceTable{}}
}

// Store replaces the current snapshot by s.
func (b *PriceBook) Store(s *Snapshot) {
	if s.Prices == nil {
		s.Prices = PriceTable{}
	}
	b.current.Store(s)
}

// Evaluate evaluates positions against the current snapshot.
func (b *PriceBook) Evaluate(positions []RawPosition, opts Options) *Evaluation {
	s := b.Load()
	return Evaluate(positions, s.Prices, s.Rate, opts)
}
