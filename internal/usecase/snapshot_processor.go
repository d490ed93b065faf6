package usecase

import (
	"context"
	"fmt"
	"time"

	"IndexPulse/internal/domain/models"
	drepo "IndexPulse/internal/domain/repository"
	domsvc "IndexPulse/internal/domain/service"
)

// SnapshotProcessor updates the in-memory store and routes each snapshot to
// the configured backend. With the kafka backend the snapshot is fanned out
// and evaluated by the consumer; with the clickhouse backend it is evaluated
// inline and the result persisted directly.
type SnapshotProcessor struct {
	store     drepo.SnapshotStore
	pub       drepo.Publisher
	history   drepo.SignalHistory
	evaluator domsvc.SignalEvaluator
	metrics   drepo.Metrics
	backend   string
	batchSz   int
	batchTO   time.Duration
}

// NewSnapshotProcessor creates a new SnapshotProcessor instance.
func NewSnapshotProcessor(
	store drepo.SnapshotStore,
	pub drepo.Publisher,
	history drepo.SignalHistory,
	evaluator domsvc.SignalEvaluator,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *SnapshotProcessor {
	return &SnapshotProcessor{
		store:     store,
		pub:       pub,
		history:   history,
		evaluator: evaluator,
		metrics:   metrics,
		backend:   backend,
		batchSz:   batchSz,
		batchTO:   batchTO,
	}
}

// Process handles a single snapshot.
func (p *SnapshotProcessor) Process(ctx context.Context, s *models.IndicatorSnapshot) error {
	if s == nil {
		return fmt.Errorf("snapshot is nil")
	}

	start := time.Now()
	p.store.Put(s)

	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, s)
	case "clickhouse":
		r := p.evaluator.Evaluate(*s, p.store.MarketStatus())
		p.metrics.RecordEvaluation(r.Symbol, string(r.Action))
		p.metrics.RecordLastScore(r.Symbol, r.TotalScore)
		err = p.history.Store(ctx, &r)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process snapshot: %w", err)
	}

	p.metrics.RecordSnapshot(p.backend, s.Symbol)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch handles multiple snapshots at once.
func (p *SnapshotProcessor) ProcessBatch(ctx context.Context, snaps []*models.IndicatorSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	start := time.Now()
	for _, s := range snaps {
		p.store.Put(s)
	}

	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, snaps)
	case "clickhouse":
		status := p.store.MarketStatus()
		rs := make([]*models.SignalResult, 0, len(snaps))
		for _, s := range snaps {
			r := p.evaluator.Evaluate(*s, status)
			p.metrics.RecordEvaluation(r.Symbol, string(r.Action))
			p.metrics.RecordLastScore(r.Symbol, r.TotalScore)
			rs = append(rs, &r)
		}
		err = p.history.StoreBatch(ctx, rs)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, s := range snaps {
		p.metrics.RecordSnapshot(p.backend, s.Symbol)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *SnapshotProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.history != nil {
		_ = p.history.Close()
	}
}
