package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"pairsbot-go/internal/metrics"
)

type klineEnvelope struct {
	Stream string    `json:"stream"`
	Data   klineData `json:"data"`
}

type klineData struct {
	Kline kline `json:"k"`
}

type kline struct {
	CloseTime int64  `json:"T"`
	Close     string `json:"c"`
	Closed    bool   `json:"x"`
}

func (c *Collector) runBinance(ctx context.Context, out chan<- Row) error {
	symbols := c.snapshotSymbols()
	if len(symbols) == 0 {
		return fmt.Errorf("binance collector requires at least one symbol")
	}

	streams := make([]string, len(symbols))
	for i, sym := range symbols {
		streams[i] = strings.ToLower(sym) + "@kline_1m"
	}

	url := fmt.Sprintf("wss://stream.binance.com:9443/stream?streams=%s", strings.Join(streams, "/"))
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := c.consumeKlineStream(ctx, url, symbols, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Warn().Err(err).Msg("binance collector disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (c *Collector) consumeKlineStream(ctx context.Context, url string, symbols []string, out chan<- Row) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c.log.Info().Str("provider", ProviderBinance).Strs("symbols", symbols).Msg("connected market data collector")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					c.log.Warn().Err(err).Msg("binance ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	// A row needs a closed candle for every symbol in the same bucket.
	pending := make(map[string]float64, len(symbols))
	var bucket int64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env klineEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.log.Warn().Err(err).Msg("failed to decode binance message")
			continue
		}
		if !env.Data.Kline.Closed {
			continue
		}

		symbol := parseStreamSymbol(env.Stream)
		px, err := strconv.ParseFloat(env.Data.Kline.Close, 64)
		if err != nil {
			c.log.Warn().Err(err).Msg("invalid close price from binance")
			continue
		}

		if env.Data.Kline.CloseTime != bucket {
			// new bucket discards any partial row from the previous one
			bucket = env.Data.Kline.CloseTime
			pending = make(map[string]float64, len(symbols))
		}
		pending[symbol] = px
		metrics.RowsTotal.WithLabelValues(symbol).Inc()

		if len(pending) < len(symbols) {
			continue
		}
		row := Row{Ts: time.UnixMilli(bucket), Prices: pending}
		pending = make(map[string]float64, len(symbols))
		select {
		case out <- row:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func parseStreamSymbol(stream string) string {
	parts := strings.Split(stream, "@")
	if len(parts) == 0 || parts[0] == "" {
		return strings.ToUpper(stream)
	}
	return strings.ToUpper(parts[0])
}
