package usecase

import (
	"context"
	"testing"
	"time"

	"IndexPulse/internal/domain/models"
)

// stubHistory records the query it served.
type stubHistory struct {
	lastSymbol string
	lastFrom   time.Time
	lastTo     time.Time
	lastLimit  int
	out        []*models.SignalResult
}

func (s *stubHistory) Init(ctx context.Context) error                          { return nil }
func (s *stubHistory) Store(ctx context.Context, r *models.SignalResult) error { return nil }
func (s *stubHistory) StoreBatch(ctx context.Context, rs []*models.SignalResult) error {
	return nil
}
func (s *stubHistory) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.SignalResult, error) {
	s.lastSymbol, s.lastFrom, s.lastTo, s.lastLimit = symbol, from, to, limit
	return s.out, nil
}
func (s *stubHistory) Health(ctx context.Context) error { return nil }
func (s *stubHistory) Close() error                     { return nil }

func TestHistoryDefaultsAndClamps(t *testing.T) {
	h := &stubHistory{}
	uc := NewHistoryUseCase(h)

	res, err := uc.GetHistory(context.Background(), GetHistoryParams{Symbol: "NIFTY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.lastLimit != 500 {
		t.Fatalf("default limit should be 500, got %d", h.lastLimit)
	}
	if d := res.To.Sub(res.From); d != 24*time.Hour {
		t.Fatalf("default range should be 24h, got %v", d)
	}

	_, err = uc.GetHistory(context.Background(), GetHistoryParams{Symbol: "NIFTY", Limit: 99999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.lastLimit != 10000 {
		t.Fatalf("limit should clamp to 10000, got %d", h.lastLimit)
	}
}

func TestHistoryRejectsInvertedRange(t *testing.T) {
	uc := NewHistoryUseCase(&stubHistory{})
	now := time.Now()
	_, err := uc.GetHistory(context.Background(), GetHistoryParams{
		Symbol: "NIFTY",
		From:   now,
		To:     now.Add(-time.Hour),
	})
	if err == nil {
		t.Fatalf("expected error for from > to")
	}
}

func TestHistoryRequiresSymbol(t *testing.T) {
	uc := NewHistoryUseCase(&stubHistory{})
	if _, err := uc.GetHistory(context.Background(), GetHistoryParams{}); err == nil {
		t.Fatalf("expected error for missing symbol")
	}
}
