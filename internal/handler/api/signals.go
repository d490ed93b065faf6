package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	icache "IndexPulse/internal/service/cache"
	"IndexPulse/internal/service/metrics"
	"IndexPulse/internal/service/ratelimit"
	"IndexPulse/internal/usecase"
	applogger "IndexPulse/pkg/logger"
	"IndexPulse/pkg/util"
)

// SignalsHandler serves the signal endpoints over plain net/http. Responses
// are cached as rendered bytes; evaluation is cheap but the board fans out
// over every symbol, so the cache keeps dashboard polling off the engine.
type SignalsHandler struct {
	eval    *usecase.EvaluateUseCase
	board   *usecase.BoardUseCase
	history *usecase.HistoryUseCase
	cache   icache.BytesCache
	rl      *ratelimit.Limiter
	l       *applogger.Logger
}

func NewSignalsHandler(eval *usecase.EvaluateUseCase, board *usecase.BoardUseCase, history *usecase.HistoryUseCase) *SignalsHandler {
	metrics.Register()
	return &SignalsHandler{eval: eval, board: board, history: history, rl: ratelimit.New(5, 2)}
}

func (h *SignalsHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *SignalsHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *SignalsHandler) Signal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "signal"
		defer func() { metrics.SignalLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			if h.l != nil {
				h.l.Warn("signals.signal missing symbol")
			}
			http.Error(w, "symbol required", http.StatusBadRequest)
			return
		}
		if !h.rl.Allow(r.RemoteAddr + ":signal") {
			if h.l != nil {
				h.l.Warn("signals.signal rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "signal:" + symbol
		if h.serveCached(w, r, endpoint, cacheKey) {
			return
		}
		res, err := h.eval.Evaluate(r.Context(), symbol)
		if err != nil {
			metrics.SignalErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("signals.signal error", applogger.Error(err))
			}
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrSymbolNotTracked) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		h.writeJSON(r.Context(), w, endpoint, cacheKey, res, 2*time.Second)
	}
}

func (h *SignalsHandler) Board() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "board"
		defer func() { metrics.SignalLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		if !h.rl.Allow(r.RemoteAddr + ":board") {
			if h.l != nil {
				h.l.Warn("signals.board rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "board"
		if h.serveCached(w, r, endpoint, cacheKey) {
			return
		}
		res, err := h.board.GetBoard(r.Context())
		if err != nil {
			metrics.SignalErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("signals.board error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(r.Context(), w, endpoint, cacheKey, res, 2*time.Second)
	}
}

func (h *SignalsHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "history"
		defer func() { metrics.SignalLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			if h.l != nil {
				h.l.Warn("signals.history missing symbol")
			}
			http.Error(w, "symbol required", http.StatusBadRequest)
			return
		}
		if !h.rl.Allow(r.RemoteAddr + ":history") {
			if h.l != nil {
				h.l.Warn("signals.history rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		p := usecase.GetHistoryParams{
			Symbol: symbol,
			Limit:  util.ParseIntDefault(r.URL.Query().Get("limit"), 0),
		}
		if v := r.URL.Query().Get("from"); v != "" {
			t, ok := util.ParseTime(v)
			if !ok {
				http.Error(w, "bad from", http.StatusBadRequest)
				return
			}
			p.From = t
		}
		if v := r.URL.Query().Get("to"); v != "" {
			t, ok := util.ParseTime(v)
			if !ok {
				http.Error(w, "bad to", http.StatusBadRequest)
				return
			}
			p.To = t
		}
		// key on the parsed params so limit and time variants never share a body
		cacheKey := fmt.Sprintf("history:%s:%d:%d:%d", symbol, p.From.Unix(), p.To.Unix(), p.Limit)
		if h.serveCached(w, r, endpoint, cacheKey) {
			return
		}
		res, err := h.history.GetHistory(r.Context(), p)
		if err != nil {
			metrics.SignalErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("signals.history error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(r.Context(), w, endpoint, cacheKey, res, 30*time.Second)
	}
}

func (h *SignalsHandler) serveCached(w http.ResponseWriter, r *http.Request, endpoint, key string) bool {
	if h.cache == nil {
		return false
	}
	b, ok, err := h.cache.GetBytes(r.Context(), key)
	if err != nil {
		if h.l != nil {
			h.l.Warn("signals cache_get_error", applogger.String("endpoint", endpoint), applogger.Error(err))
		}
		return false
	}
	if !ok {
		if h.l != nil {
			h.l.Debug("signals cache_miss", applogger.String("key", key))
		}
		return false
	}
	metrics.CacheHits.WithLabelValues(endpoint).Inc()
	w.Header().Set("Content-Type", "application/json")
	if h.l != nil {
		h.l.Debug("signals cache_hit", applogger.String("key", key))
	}
	if _, err := w.Write(b); err != nil && h.l != nil {
		h.l.Warn("signals write_error", applogger.Error(err))
	}
	return true
}

func (h *SignalsHandler) writeJSON(ctx context.Context, w http.ResponseWriter, endpoint, cacheKey string, v interface{}, ttl time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(v)
	if err != nil {
		if h.l != nil {
			h.l.Error("signals marshal_error", applogger.String("endpoint", endpoint), applogger.Error(err))
		}
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	if h.cache != nil {
		if err := h.cache.SetBytes(ctx, cacheKey, b, ttl); err != nil && h.l != nil {
			h.l.Warn("signals cache_set_error", applogger.Error(err))
		}
	}
	if _, err := w.Write(b); err != nil && h.l != nil {
		h.l.Warn("signals write_error", applogger.Error(err))
	}
}
