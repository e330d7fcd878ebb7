// Package panel provides the time-indexed price table consumed by the pairs engine.
package panel

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Panel is an immutable table of prices: one row per timestamp, one column per
// asset symbol. Accessors hand out copies so callers cannot mutate the
// underlying data.
type Panel struct {
	times   []time.Time
	symbols []string
	columns map[string][]float64
}

// New validates and wraps the supplied rows. Timestamps must be strictly
// increasing, every column must match the timestamp count, and all values
// must be finite.
func New(times []time.Time, columns map[string][]float64) (*Panel, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("panel requires at least one column")
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("timestamps not strictly increasing at row %d", i)
		}
	}

	symbols := make([]string, 0, len(columns))
	for sym := range columns {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	copied := make(map[string][]float64, len(columns))
	for _, sym := range symbols {
		col := columns[sym]
		if len(col) != len(times) {
			return nil, fmt.Errorf("column %s has %d values, want %d", sym, len(col), len(times))
		}
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("column %s has non-finite value at row %d", sym, i)
			}
		}
		dup := make([]float64, len(col))
		copy(dup, col)
		copied[sym] = dup
	}

	ts := make([]time.Time, len(times))
	copy(ts, times)
	return &Panel{times: ts, symbols: symbols, columns: copied}, nil
}

// Len reports the number of rows.
func (p *Panel) Len() int { return len(p.times) }

// Symbols returns the column identifiers in lexicographic order.
func (p *Panel) Symbols() []string {
	out := make([]string, len(p.symbols))
	copy(out, p.symbols)
	return out
}

// Times returns a copy of the row timestamps.
func (p *Panel) Times() []time.Time {
	out := make([]time.Time, len(p.times))
	copy(out, p.times)
	return out
}

// Column returns a copy of the named series and whether it exists.
func (p *Panel) Column(symbol string) ([]float64, bool) {
	col, ok := p.columns[symbol]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, true
}

// HasSymbol reports whether the panel carries the named column.
func (p *Panel) HasSymbol(symbol string) bool {
	_, ok := p.columns[symbol]
	return ok
}

// Value returns the price of symbol at row i.
func (p *Panel) Value(i int, symbol string) (float64, bool) {
	col, ok := p.columns[symbol]
	if !ok || i < 0 || i >= len(col) {
		return 0, false
	}
	return col[i], true
}
