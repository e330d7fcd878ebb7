package pairs

import (
	"fmt"

	"pairsbot-go/internal/panel"
)

// Extrema holds the formation-period price range of a single asset.
type Extrema struct {
	Min float64
	Max float64
}

// Scaling maps asset symbols to the extrema captured at formation time.
// Trading always reuses these values; recomputing them from the trading
// panel would leak future information into the backtest.
type Scaling map[string]Extrema

func (s Scaling) clone() Scaling {
	out := make(Scaling, len(s))
	for sym, ex := range s {
		out[sym] = ex
	}
	return out
}

// fitScaling captures per-column extrema. A flat series cannot be min-max
// scaled, so a zero range is rejected rather than allowed to divide by zero.
func fitScaling(p *panel.Panel) (Scaling, error) {
	scaling := make(Scaling, len(p.Symbols()))
	for _, sym := range p.Symbols() {
		col, _ := p.Column(sym)
		min, max := col[0], col[0]
		for _, v := range col[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if max <= min {
			return nil, fmt.Errorf("%w: asset %s", ErrDegenerateSeries, sym)
		}
		scaling[sym] = Extrema{Min: min, Max: max}
	}
	return scaling, nil
}

// normalizePanel rescales the requested columns through (p-min)/(max-min)
// using the supplied extrema. Values may legitimately fall outside [0,1]
// when the panel covers a different period than the extrema.
func normalizePanel(p *panel.Panel, scaling Scaling, symbols []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(symbols))
	for _, sym := range symbols {
		if _, done := out[sym]; done {
			continue
		}
		col, ok := p.Column(sym)
		if !ok {
			return nil, fmt.Errorf("%w: panel has no column %s", ErrUnknownPair, sym)
		}
		ex, ok := scaling[sym]
		if !ok {
			return nil, fmt.Errorf("%w: no formation scaling for %s", ErrUnknownPair, sym)
		}
		span := ex.Max - ex.Min
		norm := make([]float64, len(col))
		for i, v := range col {
			norm[i] = (v - ex.Min) / span
		}
		out[sym] = norm
	}
	return out, nil
}
