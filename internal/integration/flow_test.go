package integration

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pairsbot-go/internal/execution"
	"pairsbot-go/internal/feed"
	"pairsbot-go/internal/pairs"
	"pairsbot-go/internal/panel"
)

func TestStreamFlowProducesSignals(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	formationTimes := make([]time.Time, 4)
	for i := range formationTimes {
		formationTimes[i] = base.AddDate(0, 0, i)
	}
	formation, err := panel.New(formationTimes, map[string][]float64{
		"AAA": {90, 100, 110, 120},
		"BBB": {100, 111, 119, 130},
	})
	if err != nil {
		t.Fatalf("panel.New returned error: %v", err)
	}

	model, err := pairs.Fit(formation, pairs.Config{NumTop: 1}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	pairList, err := model.Pairs()
	if err != nil {
		t.Fatalf("Pairs returned error: %v", err)
	}
	if len(pairList) != 1 || pairList[0].Key() != "AAA/BBB" {
		t.Fatalf("unexpected pair list: %+v", pairList)
	}

	collector := feed.NewCollector(feed.ProviderStub, []string{"AAA", "BBB"}, zerolog.Nop(), feed.WithInterval(10*time.Millisecond))
	rows := make(chan feed.Row, 8)
	go func() {
		_ = collector.Run(ctx, rows)
	}()

	builder := panel.NewBuilder([]string{"AAA", "BBB"})
	for builder.Len() < 4 {
		select {
		case row := <-rows:
			if err := builder.Append(row.Ts, row.Prices); err != nil {
				t.Fatalf("Append returned error: %v", err)
			}
		case <-ctx.Done():
			t.Fatal("timed out collecting rows")
		}
	}
	cancel()

	trading, err := builder.Panel()
	if err != nil {
		t.Fatalf("Panel returned error: %v", err)
	}
	result, err := model.Trade(trading)
	if err != nil {
		t.Fatalf("Trade returned error: %v", err)
	}

	key := pairList[0].Key()
	signals := result.Signals[key]
	if len(signals) != trading.Len() {
		t.Fatalf("signal length %d, want %d", len(signals), trading.Len())
	}
	for i, s := range signals {
		if s < pairs.SignalShort || s > pairs.SignalLong {
			t.Fatalf("signal out of range at row %d: %d", i, s)
		}
	}
	if len(result.Portfolios[key]) != trading.Len() {
		t.Fatalf("portfolio length mismatch")
	}

	var buf bytes.Buffer
	exec := execution.NewExecutor(zerolog.New(&buf))
	order := execution.FromTransition(pairList[0], pairs.SignalFlat, pairs.SignalShort, trading.Times()[0])
	if order == nil {
		t.Fatalf("expected entry order")
	}
	if err := exec.Submit(*order); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !strings.Contains(buf.String(), key) {
		t.Fatalf("order log missing pair key: %s", buf.String())
	}
}
