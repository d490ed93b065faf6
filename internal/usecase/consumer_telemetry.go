package usecase

import (
	"context"
	"time"

	domrepo "IndexPulse/internal/domain/repository"
	pkgkafka "IndexPulse/pkg/kafka"
	applogger "IndexPulse/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// NewConsumerTelemetryHook threads the upstream trace id and a start time
// through the consumer context, records handling latency per message, and
// logs failed deliveries with their trace id so they can be correlated with
// the producer side.
func NewConsumerTelemetryHook(l *applogger.Logger, m domrepo.Metrics) pkgkafka.ConsumerHook {
	return pkgkafka.HookFuncs{
		Before: func(ctx context.Context, topic string, km kafka.Message, data []byte) (context.Context, kafka.Message, []byte, error) {
			ctx = pkgkafka.WithStartTime(ctx, time.Now())
			ctx = pkgkafka.WithTraceID(ctx, pkgkafka.ExtractTraceID(km))
			return ctx, km, data, nil
		},
		After: func(ctx context.Context, topic string, km kafka.Message, data []byte, err error) {
			if start, ok := ctx.Value(pkgkafka.CtxStartTime).(time.Time); ok {
				m.RecordLatency("consumer_handle_seconds", time.Since(start).Seconds())
			}
			if err == nil {
				return
			}
			fields := []applogger.Field{applogger.String("topic", topic), applogger.Error(err)}
			if trace, ok := ctx.Value(pkgkafka.CtxTraceID).(string); ok && trace != "" {
				fields = append(fields, applogger.String("trace_id", trace))
			}
			l.Error("consumer handle failed", fields...)
		},
		Err: func(ctx context.Context, topic string, km kafka.Message, data []byte, err error) {
			m.RecordError("consumer_hook")
		},
	}
}
