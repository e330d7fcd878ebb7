// Package pairs implements distance-based pair formation and threshold
// signal generation for a market-neutral pairs trading strategy.
package pairs

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pairsbot-go/internal/metrics"
	"pairsbot-go/internal/panel"
)

const defaultDivergence = 2.0

// Config carries the formation and trading knobs for one engine instance.
type Config struct {
	NumTop     int     // pairs to retain after skipping
	SkipTop    int     // best-ranked pairs to discard first
	Divergence float64 // entry threshold in dispersions, default 2
	CloseAtEnd bool    // force open positions flat at the final timestamp
	Measure    Measure // ranking measure, default MeasureDistance
}

func (c Config) withDefaults() Config {
	if c.Divergence <= 0 {
		c.Divergence = defaultDivergence
	}
	if c.Measure == "" {
		c.Measure = MeasureDistance
	}
	return c
}

// Pair is one selected asset pair. Symbols are lexicographically ordered;
// Distance and Dispersion come from the formation period and never change.
type Pair struct {
	A          string
	B          string
	Distance   float64
	Dispersion float64
}

// Key identifies the pair in result maps and metrics labels.
func (p Pair) Key() string { return p.A + "/" + p.B }

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "/" + b
}

// Result holds the portfolio and signal series of the most recent Trade
// call, keyed by Pair.Key and indexed like the trading panel.
type Result struct {
	Times      []time.Time
	Portfolios map[string][]float64
	Signals    map[string][]int
}

// Model is the fitted strategy value produced by Fit: formation scaling,
// the ranked pair list with dispersions, and the latest trading result.
// Re-running Trade replaces the stored result.
type Model struct {
	cfg     Config
	scaling Scaling
	pairs   []Pair
	log     zerolog.Logger

	mu   sync.Mutex
	last *Result
}

// Fit runs the formation stage over the given price panel: min-max scaling,
// pairwise distance ranking, candidate selection, and per-pair dispersion.
func Fit(p *panel.Panel, cfg Config, log zerolog.Logger) (*Model, error) {
	cfg = cfg.withDefaults()
	if p == nil || p.Len() < 2 {
		rows := 0
		if p != nil {
			rows = p.Len()
		}
		return nil, fmt.Errorf("%w: formation panel has %d rows", ErrInsufficientHistory, rows)
	}

	scaling, err := fitScaling(p)
	if err != nil {
		return nil, err
	}
	symbols := p.Symbols()
	normalized, err := normalizePanel(p, scaling, symbols)
	if err != nil {
		return nil, err
	}
	ranked, err := rankPairs(normalized, symbols, cfg.Measure)
	if err != nil {
		return nil, err
	}
	selected, err := selectPairs(ranked, cfg.SkipTop, cfg.NumTop)
	if err != nil {
		return nil, err
	}

	pairList := make([]Pair, len(selected))
	for i, cand := range selected {
		sigma, err := dispersion(spread(normalized[cand.a], normalized[cand.b]))
		if err != nil {
			return nil, fmt.Errorf("pair %s/%s: %w", cand.a, cand.b, err)
		}
		pairList[i] = Pair{A: cand.a, B: cand.b, Distance: cand.distance, Dispersion: sigma}
		log.Debug().Str("pair", pairList[i].Key()).
			Float64("distance", cand.distance).
			Float64("dispersion", sigma).
			Msg("pair selected")
	}
	metrics.PairsFormed.Add(float64(len(pairList)))
	log.Info().Int("pairs", len(pairList)).Int("assets", len(symbols)).Int("rows", p.Len()).
		Str("measure", string(cfg.Measure)).
		Msg("formation complete")

	return &Model{cfg: cfg, scaling: scaling, pairs: pairList, log: log}, nil
}

func (m *Model) fitted() bool {
	return m != nil && len(m.pairs) > 0 && m.scaling != nil
}

// Trade runs the trading stage over an out-of-sample panel: re-normalize
// with the formation scaling, rebuild each pair's spread, and run the
// threshold state machine. Pairs are processed concurrently; the scan
// within each pair stays strictly chronological.
func (m *Model) Trade(p *panel.Panel) (*Result, error) {
	if !m.fitted() {
		return nil, ErrNotFitted
	}
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("%w: empty trading panel", ErrInsufficientHistory)
	}
	for _, pr := range m.pairs {
		if !p.HasSymbol(pr.A) || !p.HasSymbol(pr.B) {
			return nil, fmt.Errorf("%w: trading panel missing a leg of %s", ErrUnknownPair, pr.Key())
		}
	}

	legs := make([]string, 0, 2*len(m.pairs))
	for _, pr := range m.pairs {
		legs = append(legs, pr.A, pr.B)
	}
	normalized, err := normalizePanel(p, m.scaling, legs)
	if err != nil {
		return nil, err
	}

	type pairOut struct {
		key       string
		portfolio []float64
		signals   []int
	}
	outs := make([]pairOut, len(m.pairs))
	var g errgroup.Group
	for i, pr := range m.pairs {
		i, pr := i, pr
		g.Go(func() error {
			portfolio := spread(normalized[pr.A], normalized[pr.B])
			signals := runSignals(portfolio, m.cfg.Divergence*pr.Dispersion, m.cfg.CloseAtEnd)
			outs[i] = pairOut{key: pr.Key(), portfolio: portfolio, signals: signals}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Times:      p.Times(),
		Portfolios: make(map[string][]float64, len(outs)),
		Signals:    make(map[string][]int, len(outs)),
	}
	for _, out := range outs {
		result.Portfolios[out.key] = out.portfolio
		result.Signals[out.key] = out.signals
		for i, s := range out.signals {
			entered := s != SignalFlat && (i == 0 || out.signals[i-1] == SignalFlat)
			if !entered {
				continue
			}
			position := "short"
			if s == SignalLong {
				position = "long"
			}
			metrics.SignalsTotal.WithLabelValues(out.key, position).Inc()
		}
	}

	m.mu.Lock()
	m.last = result
	m.mu.Unlock()
	m.log.Info().Int("pairs", len(outs)).Int("rows", p.Len()).Msg("trading signals generated")
	return result, nil
}
