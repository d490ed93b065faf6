package repository

import (
	"testing"
	"time"

	"IndexPulse/internal/domain/models"
)

func snap(symbol string) *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{Symbol: symbol, Timestamp: time.Now(), Price: 100}
}

func TestSnapshotStorePutGet(t *testing.T) {
	s := NewMemorySnapshotStore()

	if _, ok := s.Get("NIFTY"); ok {
		t.Fatalf("empty store should miss")
	}
	s.Put(snap("NIFTY"))
	got, ok := s.Get("NIFTY")
	if !ok || got.Symbol != "NIFTY" {
		t.Fatalf("expected stored snapshot, got %v ok=%v", got, ok)
	}

	// later snapshot replaces
	s2 := snap("NIFTY")
	s2.Price = 101
	s.Put(s2)
	got, _ = s.Get("NIFTY")
	if got.Price != 101 {
		t.Fatalf("expected freshest snapshot, got price %v", got.Price)
	}
}

func TestSnapshotStoreIgnoresInvalid(t *testing.T) {
	s := NewMemorySnapshotStore()
	s.Put(nil)
	s.Put(&models.IndicatorSnapshot{})
	if len(s.Symbols()) != 0 {
		t.Fatalf("invalid snapshots should be ignored")
	}
}

func TestSnapshotStoreSymbolsSorted(t *testing.T) {
	s := NewMemorySnapshotStore()
	for _, sym := range []string{"SENSEX", "BANKNIFTY", "NIFTY"} {
		s.Put(snap(sym))
	}
	got := s.Symbols()
	want := []string{"BANKNIFTY", "NIFTY", "SENSEX"}
	if len(got) != len(want) {
		t.Fatalf("expected %d symbols, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("symbols not sorted: %v", got)
		}
	}
}

func TestSnapshotStoreMarketStatus(t *testing.T) {
	s := NewMemorySnapshotStore()
	if s.MarketStatus() != models.MarketOffline {
		t.Fatalf("default status should be OFFLINE, got %v", s.MarketStatus())
	}
	s.SetMarketStatus(models.MarketLive)
	if s.MarketStatus() != models.MarketLive {
		t.Fatalf("expected LIVE, got %v", s.MarketStatus())
	}
}
