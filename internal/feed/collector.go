// Package feed collects close prices from market data sources into panel rows.
package feed

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pairsbot-go/internal/metrics"
)

const (
	// ProviderStub emits deterministic synthetic rows (useful for tests/offline work).
	ProviderStub = "stub"
	// ProviderBinance streams kline closes from Binance public websockets.
	ProviderBinance = "binance"
)

const defaultInterval = time.Minute

// Row is one complete observation: a timestamp plus a close price for every
// tracked symbol.
type Row struct {
	Ts     time.Time
	Prices map[string]float64
}

// Collector represents a pluggable close-price source.
type Collector struct {
	provider string
	symbols  []string
	log      zerolog.Logger
	interval time.Duration
	mu       sync.RWMutex
}

// Option configures Collector construction parameters.
type Option func(*Collector)

// WithInterval overrides the default row cadence.
func WithInterval(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.interval = d
		}
	}
}

// NewCollector constructs a collector backed by the requested provider.
func NewCollector(provider string, symbols []string, log zerolog.Logger, opts ...Option) *Collector {
	if provider == "" {
		provider = ProviderStub
	}
	c := &Collector{
		provider: strings.ToLower(provider),
		log:      log,
		interval: defaultInterval,
	}
	c.setSymbols(symbols)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) setSymbols(symbols []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	unique := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		unique[sym] = struct{}{}
	}
	c.symbols = c.symbols[:0]
	for sym := range unique {
		c.symbols = append(c.symbols, sym)
	}
	sort.Strings(c.symbols)
}

func (c *Collector) snapshotSymbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// Run pushes rows onto the provided channel until the context is canceled.
func (c *Collector) Run(ctx context.Context, out chan<- Row) error {
	switch c.provider {
	case ProviderBinance:
		return c.runBinance(ctx, out)
	default:
		return c.runStub(ctx, out)
	}
}

func (c *Collector) runStub(ctx context.Context, out chan<- Row) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	step := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts := <-ticker.C:
			step++
			symbols := c.snapshotSymbols()
			prices := make(map[string]float64, len(symbols))
			for i, sym := range symbols {
				prices[sym] = 100 + 10*float64(i) + 0.1*float64(step)
				metrics.RowsTotal.WithLabelValues(sym).Inc()
			}
			select {
			case out <- Row{Ts: ts, Prices: prices}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
