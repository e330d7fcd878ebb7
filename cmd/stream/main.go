// Binary stream fits the model from the formation CSV, then collects live
// close rows and re-generates signals as the trading panel grows.
package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"pairsbot-go/internal/config"
	"pairsbot-go/internal/execution"
	"pairsbot-go/internal/feed"
	"pairsbot-go/internal/metrics"
	"pairsbot-go/internal/pairs"
	"pairsbot-go/internal/panel"
	"pairsbot-go/internal/risk"
	"pairsbot-go/internal/util"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	log := util.NewLogger("info")

	path := defaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	formation, err := panel.LoadCSV(cfg.Data.FormationCSV)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Data.FormationCSV).Msg("load formation panel")
	}
	model, err := pairs.Fit(formation, pairs.Config{
		NumTop:     cfg.Engine.NumTop,
		SkipTop:    cfg.Engine.SkipTop,
		Divergence: cfg.Engine.Divergence,
		CloseAtEnd: false, // the live panel has no final timestamp
		Measure:    pairs.Measure(cfg.Engine.Measure),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("formation failed")
	}
	pairList, err := model.Pairs()
	if err != nil {
		log.Fatal().Err(err).Msg("read pair list")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	collector := feed.NewCollector(
		cfg.Feed.Provider,
		cfg.Feed.Symbols,
		log,
		feed.WithInterval(time.Duration(cfg.Feed.IntervalMs)*time.Millisecond),
	)
	rows := make(chan feed.Row, 256)
	go func() {
		if err := collector.Run(ctx, rows); err != nil {
			log.Error().Err(err).Msg("collector stopped")
			cancel()
		}
	}()

	builder := panel.NewBuilder(cfg.Feed.Symbols)
	exec := execution.NewExecutor(log)
	limits := risk.Limits{MaxOpenPairs: cfg.Risk.MaxOpenPairs}
	prev := make(map[string]int, len(pairList))
	openPairs := make(map[string]bool, len(pairList))

	log.Info().Msg("stream engine started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case row := <-rows:
			if err := builder.Append(row.Ts, row.Prices); err != nil {
				log.Warn().Err(err).Msg("row rejected")
				continue
			}
			if builder.Len() < 2 {
				continue
			}
			trading, err := builder.Panel()
			if err != nil {
				log.Warn().Err(err).Msg("panel snapshot failed")
				continue
			}
			result, err := model.Trade(trading)
			if err != nil {
				log.Error().Err(err).Msg("signal generation failed")
				continue
			}

			idx := len(result.Times) - 1
			for _, pr := range pairList {
				key := pr.Key()
				sig := result.Signals[key][idx]
				if sig == prev[key] {
					continue
				}
				if order := execution.FromTransition(pr, prev[key], sig, result.Times[idx]); order != nil {
					switch {
					case order.Kind == execution.KindExit:
						if openPairs[key] {
							_ = exec.Submit(*order)
							openPairs[key] = false
						}
					case limits.Allow(countOpen(openPairs)):
						_ = exec.Submit(*order)
						openPairs[key] = true
					default:
						log.Warn().Str("pair", key).Msg("entry skipped: open-pair limit reached")
					}
				}
				prev[key] = sig
			}
		}
	}
}

func countOpen(openPairs map[string]bool) int {
	open := 0
	for _, isOpen := range openPairs {
		if isOpen {
			open++
		}
	}
	return open
}
