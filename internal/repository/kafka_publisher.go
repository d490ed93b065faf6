package repository

import (
	"context"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
	pkgkafka "IndexPulse/pkg/kafka"
)

// KafkaPublisher fans sanitized snapshots out to the snapshot topic, keyed by
// symbol so each symbol's stream stays ordered within a partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) domrepo.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, s *models.IndicatorSnapshot) error {
	return p.producer.Publish(ctx, p.topic, []byte(s.Symbol), models.FromSnapshot(s))
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, snaps []*models.IndicatorSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(snaps))
	for i, s := range snaps {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(s.Symbol),
			Value: models.FromSnapshot(s),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
