package panel

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// Builder accumulates rows arriving from a live feed into panel form.
// Safe for one producer appending while another goroutine snapshots.
type Builder struct {
	mu      sync.Mutex
	symbols []string
	times   []time.Time
	columns map[string][]float64
}

// NewBuilder tracks the given symbols (deduplicated, sorted for determinism).
func NewBuilder(symbols []string) *Builder {
	unique := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		unique[sym] = struct{}{}
	}
	tracked := make([]string, 0, len(unique))
	for sym := range unique {
		tracked = append(tracked, sym)
	}
	sort.Strings(tracked)

	columns := make(map[string][]float64, len(tracked))
	for _, sym := range tracked {
		columns[sym] = nil
	}
	return &Builder{symbols: tracked, columns: columns}
}

// Append adds one row. The timestamp must advance and every tracked symbol
// needs a finite positive price.
func (b *Builder) Append(ts time.Time, prices map[string]float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.times); n > 0 && !ts.After(b.times[n-1]) {
		return fmt.Errorf("timestamp %s does not advance past %s", ts, b.times[n-1])
	}
	for _, sym := range b.symbols {
		v, ok := prices[sym]
		if !ok {
			return fmt.Errorf("row missing price for %s", sym)
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid price %v for %s", v, sym)
		}
	}

	b.times = append(b.times, ts)
	for _, sym := range b.symbols {
		b.columns[sym] = append(b.columns[sym], prices[sym])
	}
	return nil
}

// Len reports the number of accumulated rows.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.times)
}

// Panel snapshots the accumulated rows into an immutable panel.
func (b *Builder) Panel() (*Panel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.times) == 0 {
		return nil, fmt.Errorf("no rows accumulated")
	}
	return New(b.times, b.columns)
}
