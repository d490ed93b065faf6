package middleware

import (
	"context"
	"fmt"
	"testing"
	"time"

	"IndexPulse/internal/domain/models"
)

type recordingProc struct {
	calls int
	fail  bool
}

func (p *recordingProc) Process(ctx context.Context, s *models.IndicatorSnapshot) error {
	p.calls++
	if p.fail {
		return fmt.Errorf("downstream down")
	}
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordSnapshot(backend, symbol string)      {}
func (nopMetrics) RecordEvaluation(symbol string, act string) {}
func (nopMetrics) RecordError(kind string)                    {}
func (nopMetrics) RecordLastScore(symbol string, sc float64)  {}
func (nopMetrics) RecordLatency(op string, sec float64)       {}

func validSnap(symbol string) *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{Symbol: symbol, Timestamp: time.Now(), Price: 100}
}

func TestPipelineRejectsInvalid(t *testing.T) {
	proc := &recordingProc{}
	p := NewRealtimePipeline(proc, nopMetrics{})

	cases := []*models.IndicatorSnapshot{
		nil,
		{Timestamp: time.Now(), Price: 100},                      // empty symbol
		{Symbol: "NIFTY", Price: 100},                            // zero timestamp
		{Symbol: "NIFTY", Timestamp: time.Now(), Price: -1},      // negative price
	}
	for i, s := range cases {
		if err := p.Process(context.Background(), s); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if proc.calls != 0 {
		t.Fatalf("invalid snapshots must not reach downstream, got %d calls", proc.calls)
	}
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &recordingProc{}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithMaxRPS(1))
	ctx := context.Background()

	if err := p.Process(ctx, validSnap("NIFTY")); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	// immediate second frame for the same symbol is dropped silently
	if err := p.Process(ctx, validSnap("NIFTY")); err != nil {
		t.Fatalf("throttled snapshot should not error: %v", err)
	}
	if proc.calls != 1 {
		t.Fatalf("expected 1 downstream call, got %d", proc.calls)
	}
	// a different symbol is not affected
	if err := p.Process(ctx, validSnap("SENSEX")); err != nil {
		t.Fatalf("other symbol: %v", err)
	}
	if proc.calls != 2 {
		t.Fatalf("expected 2 downstream calls, got %d", proc.calls)
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &recordingProc{fail: true}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithBufferSize(4))

	err := p.Process(context.Background(), validSnap("NIFTY"))
	if err == nil {
		t.Fatalf("expected downstream error to surface")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("failed snapshot should be buffered, depth %d", len(p.bufCh))
	}
}

func TestPipelineStartStopIdempotent(t *testing.T) {
	p := NewRealtimePipeline(&recordingProc{}, nopMetrics{})
	ctx := context.Background()
	p.Start(ctx)
	p.Start(ctx) // second start is a no-op
	p.Stop()
	p.Stop() // second stop must not panic on a closed channel
}
