package feed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCollectorStubEmitsRows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := NewCollector(ProviderStub, []string{"BTCUSDT", "ETHUSDT"}, zerolog.Nop(), WithInterval(20*time.Millisecond))
	rows := make(chan Row, 1)

	go func() {
		_ = collector.Run(ctx, rows)
	}()

	select {
	case row := <-rows:
		for _, sym := range []string{"BTCUSDT", "ETHUSDT"} {
			px, ok := row.Prices[sym]
			if !ok {
				t.Fatalf("row missing %s", sym)
			}
			if px <= 0 {
				t.Fatalf("expected positive price for %s, got %v", sym, px)
			}
		}
		cancel()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for row")
	}
}

func TestCollectorStubRowsAdvance(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	collector := NewCollector("", []string{"BTCUSDT"}, zerolog.Nop(), WithInterval(10*time.Millisecond))
	rows := make(chan Row, 4)
	go func() {
		_ = collector.Run(ctx, rows)
	}()

	first := <-rows
	second := <-rows
	if !second.Ts.After(first.Ts) {
		t.Fatalf("timestamps did not advance: %s then %s", first.Ts, second.Ts)
	}
	if second.Prices["BTCUSDT"] <= first.Prices["BTCUSDT"] {
		t.Fatalf("stub prices did not drift upward")
	}
}

func TestParseStreamSymbol(t *testing.T) {
	cases := map[string]string{
		"btcusdt@kline_1m": "BTCUSDT",
		"ethusdt@trade":    "ETHUSDT",
		"dogeusdt":         "DOGEUSDT",
		"":                 "",
	}
	for stream, expected := range cases {
		if got := parseStreamSymbol(stream); got != expected {
			t.Fatalf("expected %s got %s", expected, got)
		}
	}
}
