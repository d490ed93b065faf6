package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"IndexPulse/internal/domain/models"
	internalrepo "IndexPulse/internal/repository"
)

// stubEvaluator returns a canned result and records what it saw.
type stubEvaluator struct {
	action     models.Action
	lastStatus models.MarketStatus
	calls      int
}

func (e *stubEvaluator) Evaluate(snap models.IndicatorSnapshot, status models.MarketStatus) models.SignalResult {
	e.calls++
	e.lastStatus = status
	return models.SignalResult{
		Symbol:       snap.Symbol,
		Timestamp:    snap.Timestamp,
		MarketStatus: status,
		Action:       e.action,
		Confidence:   70,
	}
}

func TestEvaluateUnknownSymbol(t *testing.T) {
	store := internalrepo.NewMemorySnapshotStore()
	uc := NewEvaluateUseCase(store, &stubEvaluator{action: models.ActionBuy})

	_, err := uc.Evaluate(context.Background(), "GHOST")
	if !errors.Is(err, ErrSymbolNotTracked) {
		t.Fatalf("expected ErrSymbolNotTracked, got %v", err)
	}
}

func TestEvaluateUsesCurrentStatus(t *testing.T) {
	store := internalrepo.NewMemorySnapshotStore()
	store.Put(&models.IndicatorSnapshot{Symbol: "NIFTY", Timestamp: time.Now(), Price: 100})
	store.SetMarketStatus(models.MarketClosed)

	ev := &stubEvaluator{action: models.ActionBuy}
	uc := NewEvaluateUseCase(store, ev)

	r, err := uc.Evaluate(context.Background(), "NIFTY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Symbol != "NIFTY" || r.Action != models.ActionBuy {
		t.Fatalf("unexpected result %+v", r)
	}
	if ev.lastStatus != models.MarketClosed {
		t.Fatalf("evaluator should see current session status, got %v", ev.lastStatus)
	}
}

func TestEvaluateEmptySymbol(t *testing.T) {
	store := internalrepo.NewMemorySnapshotStore()
	uc := NewEvaluateUseCase(store, &stubEvaluator{})
	if _, err := uc.Evaluate(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty symbol")
	}
}
