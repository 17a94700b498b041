package feeds

import (
	"context"
	"errors"
	"time"

	"github.com/etnz/cartera"
	"github.com/rs/zerolog"
)

// Poller refreshes a PriceBook on an interval.
type Poller struct {
	Client   *Client
	Book     *cartera.PriceBook
	Interval time.Duration
	Log      zerolog.Logger

	// OnUpdate, if set, is called after each snapshot stored in Book.
	OnUpdate func(*cartera.Snapshot)
}

// Refresh fetches every feed and stores the result as one new snapshot.
//
// Asset types are refreshed independently: when the feed of a type fails,
// the previous prices of that type are carried over, and when the rate feed
// fails the previous rate is kept. The returned error joins the feed errors.
func (p *Poller) Refresh(ctx context.Context) error {
	prev := p.Book.Load()
	next := &cartera.Snapshot{Prices: cartera.PriceTable{}, AsOf: time.Now()}

	var errs []error
	for _, t := range cartera.AssetTypes {
		quotes, err := p.Client.Fetch(ctx, t)
		if err != nil {
			errs = append(errs, err)
			kept := 0
			for k, price := range prev.Prices {
				if k.Type == t {
					next.Prices[k] = price
					kept++
				}
			}
			p.Log.Warn().Err(err).Stringer("type", t).Int("kept", kept).Msg("feed failed, keeping previous prices")
			continue
		}
		for _, q := range quotes {
			next.Prices[q.Key] = q.Price
		}
	}

	rate, err := p.Client.Rate(ctx)
	if err != nil {
		errs = append(errs, err)
		rate = prev.Rate
		p.Log.Warn().Err(err).Stringer("rate", rate).Msg("rate feed failed, keeping previous rate")
	}
	next.Rate = rate

	p.Book.Store(next)
	p.Log.Info().Int("count", len(next.Prices)).Stringer("rate", next.Rate).Msg("prices updated")
	if p.OnUpdate != nil {
		p.OnUpdate(next)
	}
	return errors.Join(errs...)
}

// Run refreshes the book right away, then every Interval until ctx is done.
// Refresh errors are logged, Run only returns ctx's error.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	p.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}
