package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
	pkgcache "IndexPulse/pkg/cache"
	"IndexPulse/pkg/util"
)

// HistoryUseCase provides business logic for retrieving stored signals.
// Query results can be cached in a layered cache; a short lock keeps
// concurrent dashboard clients from hammering ClickHouse with the same range.
type HistoryUseCase struct {
	history domrepo.SignalHistory
	cache   pkgcache.Service
	ttl     time.Duration
}

func NewHistoryUseCase(history domrepo.SignalHistory) *HistoryUseCase {
	return &HistoryUseCase{history: history, ttl: 30 * time.Second}
}

// SetCache enables query-result caching.
func (uc *HistoryUseCase) SetCache(c pkgcache.Service) { uc.cache = c }

type GetHistoryParams struct {
	Symbol string
	From   time.Time
	To     time.Time
	Limit  int
}

type GetHistoryResult struct {
	Symbol  string                 `json:"symbol"`
	From    time.Time              `json:"from"`
	To      time.Time              `json:"to"`
	Count   int                    `json:"count"`
	Signals []*models.SignalResult `json:"signals"`
}

func (uc *HistoryUseCase) GetHistory(ctx context.Context, p GetHistoryParams) (*GetHistoryResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.To.IsZero() {
		p.To = time.Now().UTC()
	}
	if p.From.IsZero() {
		p.From = p.To.Add(-24 * time.Hour)
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 500
	}
	if p.Limit > 10000 {
		p.Limit = 10000
	}
	// second-aligned boundaries keep cache keys stable across near-identical requests
	p.From, p.To = util.AlignFromTo(p.From, p.To, "1s")

	key := pkgcache.GenerateKeyWithParams("history", p.Symbol, p.From.Unix(), p.To.Unix(), p.Limit)
	if uc.cache != nil {
		var cached GetHistoryResult
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, pkgcache.ErrCacheMiss) {
			// cache trouble is not a query failure; fall through to the store
		}
		if ok, _ := uc.cache.TryLock(ctx, key+":lock", 5*time.Second); ok {
			defer func() { _ = uc.cache.Unlock(ctx, key+":lock") }()
		}
	}

	signals, err := uc.history.Query(ctx, p.Symbol, p.From, p.To, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	res := &GetHistoryResult{
		Symbol:  p.Symbol,
		From:    p.From,
		To:      p.To,
		Count:   len(signals),
		Signals: signals,
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, res, uc.ttl)
	}
	return res, nil
}
