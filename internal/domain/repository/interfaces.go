package repository

import (
	"context"
	"time"

	"IndexPulse/internal/domain/models"
)

// IndicatorStream is a live feed of indicator snapshots from the market-data backend.
type IndicatorStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.IndicatorSnapshot, <-chan models.MarketStatus, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// SnapshotStore keeps the freshest snapshot per symbol plus the current
// session state. Evaluations always read from here.
type SnapshotStore interface {
	Put(s *models.IndicatorSnapshot)
	Get(symbol string) (*models.IndicatorSnapshot, bool)
	Symbols() []string
	SetMarketStatus(st models.MarketStatus)
	MarketStatus() models.MarketStatus
}

// Publisher fans snapshots out to the message bus.
type Publisher interface {
	Publish(ctx context.Context, s *models.IndicatorSnapshot) error
	PublishBatch(ctx context.Context, snaps []*models.IndicatorSnapshot) error
	Close() error
}

// SignalHistory persists evaluated signals and serves range queries for the
// dashboard's history view.
type SignalHistory interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, r *models.SignalResult) error
	StoreBatch(ctx context.Context, rs []*models.SignalResult) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.SignalResult, error)
	Health(ctx context.Context) error
	Close() error
}

// AlertSink receives action-flip alerts for async dispatch.
type AlertSink interface {
	Enqueue(ctx context.Context, a *models.Alert) error
}

// Metrics records operational counters for the ingest and evaluation paths.
type Metrics interface {
	RecordSnapshot(backend, symbol string)
	RecordEvaluation(symbol string, action string)
	RecordError(kind string)
	RecordLastScore(symbol string, score float64)
	RecordLatency(op string, seconds float64)
}
