package usecase

import (
	"context"

	"IndexPulse/internal/domain/models"
	drepo "IndexPulse/internal/domain/repository"
	mid "IndexPulse/internal/middleware"
)

// SnapshotCollector drains the indicator feed and pushes snapshots through
// the pipeline. Session status changes bypass the pipeline and hit the store
// directly so confidence adjustment reacts immediately.
type SnapshotCollector struct {
	stream  drepo.IndicatorStream
	proc    *SnapshotProcessor
	store   drepo.SnapshotStore
	metrics drepo.Metrics
	pipe    *mid.RealtimePipeline
}

// NewSnapshotCollector creates a new SnapshotCollector instance.
func NewSnapshotCollector(stream drepo.IndicatorStream, proc *SnapshotProcessor, store drepo.SnapshotStore, metrics drepo.Metrics, pipe *mid.RealtimePipeline) *SnapshotCollector {
	return &SnapshotCollector{stream: stream, proc: proc, store: store, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the feed is connected.
func (c *SnapshotCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *SnapshotCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	snapCh, statusCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, snapCh, statusCh, errCh)
	return nil
}

func (c *SnapshotCollector) consume(ctx context.Context, snapCh <-chan *models.IndicatorSnapshot, statusCh <-chan models.MarketStatus, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case st := <-statusCh:
			c.store.SetMarketStatus(st)
		case s := <-snapCh:
			if s == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, s)
			} else {
				_ = c.proc.Process(ctx, s)
			}
		}
	}
}

func (c *SnapshotCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying SnapshotProcessor for lifecycle management.
func (c *SnapshotCollector) Processor() *SnapshotProcessor { return c.proc }

// Shutdown stops the pipeline and closes the feed.
func (c *SnapshotCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
