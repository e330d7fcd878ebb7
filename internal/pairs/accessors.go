package pairs

import "fmt"

// Read-only views over the fitted parameters and the latest trading result.

// Pairs returns the selected pair list in rank order.
func (m *Model) Pairs() ([]Pair, error) {
	if !m.fitted() {
		return nil, ErrNotFitted
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out, nil
}

// Scaling returns the formation extrema per asset.
func (m *Model) Scaling() (Scaling, error) {
	if !m.fitted() {
		return nil, ErrNotFitted
	}
	return m.scaling.clone(), nil
}

// Portfolios returns the trading-period spread series per pair key.
func (m *Model) Portfolios() (map[string][]float64, error) {
	last, err := m.lastResult()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]float64, len(last.Portfolios))
	for key, series := range last.Portfolios {
		dup := make([]float64, len(series))
		copy(dup, series)
		out[key] = dup
	}
	return out, nil
}

// Signals returns the trading-period signal series per pair key.
func (m *Model) Signals() (map[string][]int, error) {
	last, err := m.lastResult()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]int, len(last.Signals))
	for key, series := range last.Signals {
		dup := make([]int, len(series))
		copy(dup, series)
		out[key] = dup
	}
	return out, nil
}

// PortfolioSeries returns the spread series for the pair (a, b) in either
// leg order.
func (m *Model) PortfolioSeries(a, b string) ([]float64, error) {
	last, err := m.lastResult()
	if err != nil {
		return nil, err
	}
	series, ok := last.Portfolios[pairKey(a, b)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPair, pairKey(a, b))
	}
	dup := make([]float64, len(series))
	copy(dup, series)
	return dup, nil
}

// SignalSeries returns the signal series for the pair (a, b) in either
// leg order.
func (m *Model) SignalSeries(a, b string) ([]int, error) {
	last, err := m.lastResult()
	if err != nil {
		return nil, err
	}
	series, ok := last.Signals[pairKey(a, b)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPair, pairKey(a, b))
	}
	dup := make([]int, len(series))
	copy(dup, series)
	return dup, nil
}

func (m *Model) lastResult() (*Result, error) {
	if !m.fitted() {
		return nil, ErrNotFitted
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return nil, ErrNotTraded
	}
	return m.last, nil
}
