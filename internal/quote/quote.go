// Package quote produces priced quotes for configurations and owns the
// asynchronous request flow between the configurator and whatever computes
// prices: the in-process engine, a latency-simulating wrapper, or the remote
// pricing backend.
package quote

import (
	"context"
	"math/rand"
	"time"

	"configureflow/internal/catalog"
	"configureflow/internal/pricing"
	"configureflow/pkg/currency"
)

// Quote is a priced response for one configuration snapshot.
type Quote struct {
	Breakdown      pricing.Breakdown `json:"breakdown"`
	FormattedTotal string            `json:"formatted_total"`
}

// Quoter computes a quote for a configuration snapshot. Implementations may
// block; the caller decides whether to run them asynchronously.
type Quoter interface {
	Quote(ctx context.Context, cfg catalog.Configuration, product catalog.Product) (Quote, error)
}

// Engine is the local quoter: it runs the pricing engine directly and
// formats the total for display. The formatted total is the only place a
// breakdown amount gets rounded.
type Engine struct{}

func (Engine) Quote(_ context.Context, cfg catalog.Configuration, product catalog.Product) (Quote, error) {
	breakdown := pricing.ComputeBreakdown(cfg, product)
	return Quote{
		Breakdown:      breakdown,
		FormattedTotal: currency.Format(pricing.RoundToCents(breakdown.Total), product.Currency),
	}, nil
}

// Delayed wraps a quoter with a randomized delay in [Min, Max], mimicking
// variable backend latency. Overlapping requests complete in arbitrary order,
// which is exactly the condition Session exists to guard against.
type Delayed struct {
	Next Quoter
	Min  time.Duration
	Max  time.Duration
}

func (d Delayed) Quote(ctx context.Context, cfg catalog.Configuration, product catalog.Product) (Quote, error) {
	delay := d.Min
	if d.Max > d.Min {
		delay += time.Duration(rand.Int63n(int64(d.Max - d.Min + 1)))
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return Quote{}, ctx.Err()
	}

	return d.Next.Quote(ctx, cfg, product)
}
