package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"IndexPulse/internal/domain/models"
	internalrepo "IndexPulse/internal/repository"
)

type stubMetrics struct{}

func (stubMetrics) RecordSnapshot(backend, symbol string)      {}
func (stubMetrics) RecordEvaluation(symbol string, act string) {}
func (stubMetrics) RecordError(kind string)                    {}
func (stubMetrics) RecordLastScore(symbol string, sc float64)  {}
func (stubMetrics) RecordLatency(op string, sec float64)       {}

type stubAlertSink struct {
	alerts []*models.Alert
}

func (s *stubAlertSink) Enqueue(ctx context.Context, a *models.Alert) error {
	s.alerts = append(s.alerts, a)
	return nil
}

func snapshotPayload(t *testing.T, symbol string) []byte {
	t.Helper()
	b, err := json.Marshal(&models.SnapshotMessage{
		Symbol:    symbol,
		Timestamp: time.Now().Unix(),
		Price:     100,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestHandleRejectsGarbage(t *testing.T) {
	h := NewKafkaSnapshotsHandler("t", internalrepo.NewMemorySnapshotStore(),
		&stubHistory{}, &stubEvaluator{}, nil, stubMetrics{})
	if err := h.Handle(context.Background(), []byte("{not json")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestAlertOnlyOnFlipIntoStrongZone(t *testing.T) {
	sink := &stubAlertSink{}
	ev := &stubEvaluator{action: models.ActionBuy}
	h := NewKafkaSnapshotsHandler("t", internalrepo.NewMemorySnapshotStore(),
		&stubHistory{}, ev, sink, stubMetrics{})
	ctx := context.Background()
	msg := snapshotPayload(t, "NIFTY")

	// BUY is not a strong zone
	if err := h.Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sink.alerts) != 0 {
		t.Fatalf("BUY should not alert, got %d", len(sink.alerts))
	}

	// flip into STRONG_BUY alerts once
	ev.action = models.ActionStrongBuy
	if err := h.Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Fatalf("flip into STRONG_BUY should alert, got %d", len(sink.alerts))
	}
	a := sink.alerts[0]
	if a.Symbol != "NIFTY" || a.Action != models.ActionStrongBuy || a.Previous != models.ActionBuy {
		t.Fatalf("unexpected alert %+v", a)
	}

	// same action again, no repeat alert
	if err := h.Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Fatalf("repeated STRONG_BUY should not alert again, got %d", len(sink.alerts))
	}

	// dropping back to SELL does not alert either
	ev.action = models.ActionSell
	if err := h.Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Fatalf("leaving the strong zone should not alert, got %d", len(sink.alerts))
	}
}

func TestHandleNilSinkIsSafe(t *testing.T) {
	ev := &stubEvaluator{action: models.ActionStrongSell}
	h := NewKafkaSnapshotsHandler("t", internalrepo.NewMemorySnapshotStore(),
		&stubHistory{}, ev, nil, stubMetrics{})
	if err := h.Handle(context.Background(), snapshotPayload(t, "SENSEX")); err != nil {
		t.Fatalf("handle with nil sink: %v", err)
	}
}
