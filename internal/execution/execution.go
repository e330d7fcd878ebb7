// Package execution turns signal transitions into two-leg spread order intents.
package execution

import (
	"time"

	"github.com/rs/zerolog"

	"pairsbot-go/internal/metrics"
	"pairsbot-go/internal/pairs"
)

// Side enumerates leg directions.
type Side string

const (
	// Buy indicates a long leg.
	Buy Side = "BUY"
	// Sell indicates a short leg.
	Sell Side = "SELL"
)

// Order kinds derived from a signal transition.
const (
	KindEnterShort = "enter_short"
	KindEnterLong  = "enter_long"
	KindExit       = "exit"
)

// Leg is one side of a spread order. Quantities are unit-sized; position
// sizing is a strategy-layer concern outside this engine.
type Leg struct {
	Symbol string
	Side   Side
	Qty    float64
}

// SpreadOrder is the paired order intent for one pair at one timestamp.
type SpreadOrder struct {
	Pair string
	Kind string
	Legs [2]Leg
	Ts   time.Time
}

// FromTransition translates a per-pair signal change into a spread order.
// Shorting the spread sells the first leg and buys the second; going long
// does the opposite; an exit reverses whichever position was open. A nil
// return means no action (the generator never emits -1 to +1 directly).
func FromTransition(pr pairs.Pair, prev, next int, ts time.Time) *SpreadOrder {
	if prev == next {
		return nil
	}
	switch {
	case prev == pairs.SignalFlat && next == pairs.SignalShort:
		return &SpreadOrder{
			Pair: pr.Key(),
			Kind: KindEnterShort,
			Legs: [2]Leg{{Symbol: pr.A, Side: Sell, Qty: 1}, {Symbol: pr.B, Side: Buy, Qty: 1}},
			Ts:   ts,
		}
	case prev == pairs.SignalFlat && next == pairs.SignalLong:
		return &SpreadOrder{
			Pair: pr.Key(),
			Kind: KindEnterLong,
			Legs: [2]Leg{{Symbol: pr.A, Side: Buy, Qty: 1}, {Symbol: pr.B, Side: Sell, Qty: 1}},
			Ts:   ts,
		}
	case next == pairs.SignalFlat && prev == pairs.SignalShort:
		return &SpreadOrder{
			Pair: pr.Key(),
			Kind: KindExit,
			Legs: [2]Leg{{Symbol: pr.A, Side: Buy, Qty: 1}, {Symbol: pr.B, Side: Sell, Qty: 1}},
			Ts:   ts,
		}
	case next == pairs.SignalFlat && prev == pairs.SignalLong:
		return &SpreadOrder{
			Pair: pr.Key(),
			Kind: KindExit,
			Legs: [2]Leg{{Symbol: pr.A, Side: Sell, Qty: 1}, {Symbol: pr.B, Side: Buy, Qty: 1}},
			Ts:   ts,
		}
	}
	return nil
}

// Executor implements a logger-backed submitter for spread orders.
type Executor struct{ log zerolog.Logger }

// NewExecutor wraps a zerolog logger for order submissions.
func NewExecutor(log zerolog.Logger) *Executor { return &Executor{log: log} }

// Submit logs the order intent; wire real venue connectors later.
func (executor *Executor) Submit(order SpreadOrder) error {
	metrics.OrdersTotal.WithLabelValues(order.Pair, order.Kind).Inc()
	executor.log.Info().
		Str("pair", order.Pair).
		Str("kind", order.Kind).
		Str("leg_a", order.Legs[0].Symbol+" "+string(order.Legs[0].Side)).
		Str("leg_b", order.Legs[1].Symbol+" "+string(order.Legs[1].Side)).
		Time("ts", order.Ts).
		Msg("submit spread order (stub)")
	return nil
}
