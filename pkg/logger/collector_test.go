package logger

import (
	"context"
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu      sync.Mutex
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	logs, _ := payload.([]AggregatedLogEntry)
	p.mu.Lock()
	p.batches = append(p.batches, logs)
	p.mu.Unlock()
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.batches)
}

func TestCollectorAggregatesDuplicates(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "logs",
		Publisher:      pub,
	})

	fields := map[string]interface{}{"attempt": 1}
	c.AddLog("error", "db down", fields, "repo.go:10")
	c.AddLog("error", "db down", fields, "repo.go:10")

	c.mutex.RLock()
	if len(c.logMap) != 1 {
		c.mutex.RUnlock()
		t.Fatalf("identical logs should collapse into one entry, got %d", len(c.logMap))
	}
	for _, e := range c.logMap {
		if e.Count != 2 {
			c.mutex.RUnlock()
			t.Fatalf("expected count 2, got %d", e.Count)
		}
	}
	c.mutex.RUnlock()
	c.Close()
}

func TestCollectorFlushesOnThreshold(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "logs",
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "a", nil, "x.go:1")
	c.AddLog("error", "b", nil, "x.go:2")

	deadline := time.Now().Add(2 * time.Second)
	for pub.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("threshold flush never published")
		}
		time.Sleep(5 * time.Millisecond)
	}
	pub.mu.Lock()
	got := len(pub.batches[0])
	pub.mu.Unlock()
	if got != 2 {
		t.Fatalf("expected 2 aggregated entries in the batch, got %d", got)
	}
}
