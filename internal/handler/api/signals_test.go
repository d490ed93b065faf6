package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"IndexPulse/internal/domain/models"
	icache "IndexPulse/internal/service/cache"
	"IndexPulse/internal/usecase"
)

// fakeHistory returns as many signals as the query asks for and records
// every limit it was queried with.
type fakeHistory struct {
	limits []int
}

func (f *fakeHistory) Init(ctx context.Context) error                          { return nil }
func (f *fakeHistory) Store(ctx context.Context, r *models.SignalResult) error { return nil }
func (f *fakeHistory) StoreBatch(ctx context.Context, rs []*models.SignalResult) error {
	return nil
}
func (f *fakeHistory) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.SignalResult, error) {
	f.limits = append(f.limits, limit)
	out := make([]*models.SignalResult, limit)
	for i := range out {
		out[i] = &models.SignalResult{Symbol: symbol}
	}
	return out, nil
}
func (f *fakeHistory) Health(ctx context.Context) error { return nil }
func (f *fakeHistory) Close() error                     { return nil }

func TestHistoryCacheKeyVariesByLimit(t *testing.T) {
	fh := &fakeHistory{}
	h := NewSignalsHandler(nil, nil, usecase.NewHistoryUseCase(fh))
	h.SetCache(icache.NewMemoryCache())

	do := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.History()(rec, httptest.NewRequest(http.MethodGet, url, nil))
		return rec
	}

	r1 := do("/v1/history?symbol=NIFTY&limit=2")
	r2 := do("/v1/history?symbol=NIFTY&limit=40")
	if r1.Code != http.StatusOK || r2.Code != http.StatusOK {
		t.Fatalf("status %d / %d", r1.Code, r2.Code)
	}
	if len(fh.limits) != 2 || fh.limits[0] != 2 || fh.limits[1] != 40 {
		t.Fatalf("store should see both limits, got %v", fh.limits)
	}
	if !strings.Contains(r1.Body.String(), `"count":2`) {
		t.Fatalf("limit=2 body wrong: %s", r1.Body.String())
	}
	if !strings.Contains(r2.Body.String(), `"count":40`) {
		t.Fatalf("limit=40 must not reuse the limit=2 body: %s", r2.Body.String())
	}

	// an identical request is served from cache without another query
	r3 := do("/v1/history?symbol=NIFTY&limit=40")
	if r3.Code != http.StatusOK || !strings.Contains(r3.Body.String(), `"count":40`) {
		t.Fatalf("cached replay wrong: %d %s", r3.Code, r3.Body.String())
	}
	if len(fh.limits) != 2 {
		t.Fatalf("identical request should hit the cache, store saw %v", fh.limits)
	}
}
