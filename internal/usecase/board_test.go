package usecase

import (
	"context"
	"testing"
	"time"

	"IndexPulse/internal/domain/models"
	internalrepo "IndexPulse/internal/repository"
)

func TestBoardCoversAllSymbols(t *testing.T) {
	store := internalrepo.NewMemorySnapshotStore()
	for _, sym := range []string{"NIFTY", "BANKNIFTY", "SENSEX"} {
		store.Put(&models.IndicatorSnapshot{Symbol: sym, Timestamp: time.Now(), Price: 100})
	}
	store.SetMarketStatus(models.MarketLive)

	uc := NewBoardUseCase(store, &stubEvaluator{action: models.ActionSideways})
	board, err := uc.GetBoard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.MarketStatus != models.MarketLive {
		t.Fatalf("board should carry session status, got %v", board.MarketStatus)
	}
	if len(board.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(board.Entries))
	}
	seen := map[string]bool{}
	for _, e := range board.Entries {
		if e.Signal == nil {
			t.Fatalf("entry %s missing signal: %+v", e.Symbol, e)
		}
		if e.Error != "" {
			t.Fatalf("entry %s unexpected error %q", e.Symbol, e.Error)
		}
		seen[e.Symbol] = true
	}
	for _, sym := range []string{"NIFTY", "BANKNIFTY", "SENSEX"} {
		if !seen[sym] {
			t.Fatalf("symbol %s missing from board", sym)
		}
	}
}

func TestBoardEmptyStore(t *testing.T) {
	store := internalrepo.NewMemorySnapshotStore()
	uc := NewBoardUseCase(store, &stubEvaluator{})
	board, err := uc.GetBoard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board.Entries) != 0 {
		t.Fatalf("expected empty board, got %d entries", len(board.Entries))
	}
}
