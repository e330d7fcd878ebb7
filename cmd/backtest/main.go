// Binary backtest runs formation over one CSV panel and signal generation
// over a second, replaying the resulting signals into spread order intents.
package main

import (
	"os"

	"pairsbot-go/internal/config"
	"pairsbot-go/internal/execution"
	"pairsbot-go/internal/metrics"
	"pairsbot-go/internal/pairs"
	"pairsbot-go/internal/panel"
	"pairsbot-go/internal/report"
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
	trading, err := panel.LoadCSV(cfg.Data.TradingCSV)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Data.TradingCSV).Msg("load trading panel")
	}

	model, err := pairs.Fit(formation, pairs.Config{
		NumTop:     cfg.Engine.NumTop,
		SkipTop:    cfg.Engine.SkipTop,
		Divergence: cfg.Engine.Divergence,
		CloseAtEnd: cfg.Engine.CloseAtEnd,
		Measure:    pairs.Measure(cfg.Engine.Measure),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("formation failed")
	}

	result, err := model.Trade(trading)
	if err != nil {
		log.Fatal().Err(err).Msg("signal generation failed")
	}

	recorder, err := report.NewJSONLRecorder(cfg.Report.SignalsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open signal recorder")
	}
	defer recorder.Close()

	pairList, err := model.Pairs()
	if err != nil {
		log.Fatal().Err(err).Msg("read pair list")
	}

	exec := execution.NewExecutor(log)
	limits := risk.Limits{MaxOpenPairs: cfg.Risk.MaxOpenPairs}
	prev := make(map[string]int, len(pairList))
	openPairs := make(map[string]bool, len(pairList))
	entries := make(map[string]int, len(pairList))

	for i, ts := range result.Times {
		for _, pr := range pairList {
			key := pr.Key()
			sig := result.Signals[key][i]
			if sig == prev[key] {
				continue
			}
			if err := recorder.Record(report.Event{
				Pair:      key,
				Ts:        ts,
				Portfolio: result.Portfolios[key][i],
				Signal:    sig,
			}); err != nil {
				log.Fatal().Err(err).Str("pair", key).Msg("record signal event")
			}
			if order := execution.FromTransition(pr, prev[key], sig, ts); order != nil {
				switch {
				case order.Kind == execution.KindExit:
					if openPairs[key] {
						_ = exec.Submit(*order)
						openPairs[key] = false
					}
				case limits.Allow(countOpen(openPairs)):
					_ = exec.Submit(*order)
					openPairs[key] = true
					entries[key]++
				default:
					log.Warn().Str("pair", key).Msg("entry skipped: open-pair limit reached")
				}
			}
			prev[key] = sig
		}
	}

	for _, pr := range pairList {
		key := pr.Key()
		log.Info().
			Str("pair", key).
			Float64("distance", pr.Distance).
			Float64("dispersion", pr.Dispersion).
			Int("entries", entries[key]).
			Int("final_signal", prev[key]).
			Msg("pair summary")
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
