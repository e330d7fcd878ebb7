package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PairsFormed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "pairs_formed_total", Help: "Pairs selected during formation"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Position entries emitted by the signal generator"},
		[]string{"pair", "position"},
	)
	RowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "rows_total", Help: "Price rows collected from the feed"},
		[]string{"symbol"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_total", Help: "Spread orders submitted"},
		[]string{"pair", "kind"},
	)
)

func init() {
	prometheus.MustRegister(PairsFormed, SignalsTotal, RowsTotal, OrdersTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
