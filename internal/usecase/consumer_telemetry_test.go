package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgkafka "IndexPulse/pkg/kafka"
	applogger "IndexPulse/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type countingMetrics struct {
	errs map[string]int
	lats map[string]float64
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{errs: map[string]int{}, lats: map[string]float64{}}
}

func (m *countingMetrics) RecordSnapshot(backend, symbol string)      {}
func (m *countingMetrics) RecordEvaluation(symbol string, act string) {}
func (m *countingMetrics) RecordError(kind string)                    { m.errs[kind]++ }
func (m *countingMetrics) RecordLastScore(symbol string, sc float64)  {}
func (m *countingMetrics) RecordLatency(op string, sec float64)       { m.lats[op] = sec }

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestConsumerTelemetryHookThreadsTraceAndLatency(t *testing.T) {
	m := newCountingMetrics()
	hook := pkgkafka.NewHookChain(NewConsumerTelemetryHook(testLogger(t), m))

	msg := kafka.Message{Headers: []kafka.Header{{Key: "trace_id", Value: []byte("abc-123")}}}
	ctx, msg, data, err := hook.BeforeHandle(context.Background(), "snapshots", msg, []byte("{}"))
	if err != nil {
		t.Fatalf("before: %v", err)
	}
	if got, _ := ctx.Value(pkgkafka.CtxTraceID).(string); got != "abc-123" {
		t.Fatalf("trace id not threaded, got %q", got)
	}
	if _, ok := ctx.Value(pkgkafka.CtxStartTime).(time.Time); !ok {
		t.Fatalf("start time not threaded")
	}

	hook.AfterHandle(ctx, "snapshots", msg, data, nil)
	if _, ok := m.lats["consumer_handle_seconds"]; !ok {
		t.Fatalf("handle latency not recorded: %v", m.lats)
	}

	hook.OnError(ctx, "snapshots", msg, data, errors.New("boom"))
	if m.errs["consumer_hook"] != 1 {
		t.Fatalf("hook error not counted: %v", m.errs)
	}
}

func TestConsumerTelemetryHookNoTraceHeader(t *testing.T) {
	m := newCountingMetrics()
	hook := NewConsumerTelemetryHook(testLogger(t), m)

	ctx, _, _, err := hook.BeforeHandle(context.Background(), "snapshots", kafka.Message{}, nil)
	if err != nil {
		t.Fatalf("before: %v", err)
	}
	if v := ctx.Value(pkgkafka.CtxTraceID); v != nil {
		t.Fatalf("absent header must not set a trace id, got %v", v)
	}
}
