package repository

import (
	"sort"
	"sync"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
)

// MemorySnapshotStore holds the freshest snapshot per symbol plus the current
// session state. Reads vastly outnumber writes, hence the RWMutex.
type MemorySnapshotStore struct {
	mu     sync.RWMutex
	m      map[string]*models.IndicatorSnapshot
	status models.MarketStatus
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		m:      make(map[string]*models.IndicatorSnapshot),
		status: models.MarketOffline, // conservative until the feed says otherwise
	}
}

func (s *MemorySnapshotStore) Put(snap *models.IndicatorSnapshot) {
	if snap == nil || snap.Symbol == "" {
		return
	}
	s.mu.Lock()
	s.m[snap.Symbol] = snap
	s.mu.Unlock()
}

func (s *MemorySnapshotStore) Get(symbol string) (*models.IndicatorSnapshot, bool) {
	s.mu.RLock()
	snap, ok := s.m[symbol]
	s.mu.RUnlock()
	return snap, ok
}

func (s *MemorySnapshotStore) Symbols() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.m))
	for sym := range s.m {
		out = append(out, sym)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}

func (s *MemorySnapshotStore) SetMarketStatus(st models.MarketStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *MemorySnapshotStore) MarketStatus() models.MarketStatus {
	s.mu.RLock()
	st := s.status
	s.mu.RUnlock()
	return st
}

var _ domrepo.SnapshotStore = (*MemorySnapshotStore)(nil)
