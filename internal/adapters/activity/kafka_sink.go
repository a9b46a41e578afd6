package activity

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/core/ports"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
)

// KafkaSink publishes events to a topic, keyed by entity id so one entity's history
// stays ordered within a partition. SendMessage blocks; wrap it in an AsyncSink.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

var _ ports.ActivitySink = (*KafkaSink)(nil)

// NewProducerConfig returns the idempotent, all-acks producer settings used for activity.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "frontdesk-activity"
	cfg.Version = sarama.V2_1_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

// NewKafkaSink connects a synchronous producer to brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, err
	}
	return NewKafkaSinkWithProducer(producer, topic), nil
}

// NewKafkaSinkWithProducer wraps an existing producer.
func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (k *KafkaSink) Record(ctx context.Context, event domain.ActivityEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payload, err := json.Marshal(event)
	if err != nil {
		metrics.IncActivityEvent("kafka", metrics.ActivityFailed)
		logger.Error("Failed to encode activity event", slog.String("event_id", event.EventID), slog.String("error", err.Error()))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(event.EntityID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("action"), Value: []byte(event.Action)},
			{Key: []byte("entity_type"), Value: []byte(event.EntityType)},
		},
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		metrics.IncActivityEvent("kafka", metrics.ActivityFailed)
		logger.Warn("Failed to publish activity event", slog.String("event_id", event.EventID), slog.String("error", err.Error()))
		return
	}
	metrics.IncActivityEvent("kafka", metrics.ActivityPublished)
}

// Close flushes and closes the producer.
func (k *KafkaSink) Close() error {
	if k.producer == nil {
		return nil
	}
	return k.producer.Close()
}
