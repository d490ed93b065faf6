package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
	domsvc "IndexPulse/internal/domain/service"
	pkgkafka "IndexPulse/pkg/kafka"
)

// KafkaSnapshotsHandler consumes snapshot messages, evaluates them and
// persists the resulting signals. Action flips into a strong zone raise
// alerts.
type KafkaSnapshotsHandler struct {
	topic     string
	store     domrepo.SnapshotStore
	history   domrepo.SignalHistory
	evaluator domsvc.SignalEvaluator
	alerts    domrepo.AlertSink
	metrics   domrepo.Metrics

	mu         sync.Mutex
	lastAction map[string]models.Action
}

func NewKafkaSnapshotsHandler(
	topic string,
	store domrepo.SnapshotStore,
	history domrepo.SignalHistory,
	evaluator domsvc.SignalEvaluator,
	alerts domrepo.AlertSink,
	metrics domrepo.Metrics,
) *KafkaSnapshotsHandler {
	return &KafkaSnapshotsHandler{
		topic:      topic,
		store:      store,
		history:    history,
		evaluator:  evaluator,
		alerts:     alerts,
		metrics:    metrics,
		lastAction: make(map[string]models.Action),
	}
}

func (h *KafkaSnapshotsHandler) Topic() string { return h.topic }

func (h *KafkaSnapshotsHandler) Handle(ctx context.Context, b []byte) error {
	var m models.SnapshotMessage
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	snap := m.ToSnapshot()

	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(snap.Timestamp).Seconds())

	h.store.Put(snap)

	r := h.evaluator.Evaluate(*snap, h.store.MarketStatus())
	h.metrics.RecordEvaluation(r.Symbol, string(r.Action))
	h.metrics.RecordLastScore(r.Symbol, r.TotalScore)

	start := time.Now()
	err := h.history.Store(ctx, &r)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordSnapshot("clickhouse", snap.Symbol)

	h.maybeAlert(ctx, &r)
	return nil
}

// maybeAlert raises an alert when a symbol flips into STRONG_BUY or
// STRONG_SELL from any other action.
func (h *KafkaSnapshotsHandler) maybeAlert(ctx context.Context, r *models.SignalResult) {
	if h.alerts == nil {
		return
	}
	h.mu.Lock()
	prev := h.lastAction[r.Symbol]
	h.lastAction[r.Symbol] = r.Action
	h.mu.Unlock()

	if r.Action == prev {
		return
	}
	if r.Action != models.ActionStrongBuy && r.Action != models.ActionStrongSell {
		return
	}
	a := &models.Alert{
		Symbol:     r.Symbol,
		Action:     r.Action,
		Previous:   prev,
		Confidence: r.Confidence,
		TotalScore: r.TotalScore,
		Timestamp:  r.Timestamp,
	}
	if err := h.alerts.Enqueue(ctx, a); err != nil {
		h.metrics.RecordError("alert_enqueue")
	}
}

var _ pkgkafka.MessageHandler = (*KafkaSnapshotsHandler)(nil)
