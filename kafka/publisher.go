package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/stockroomlabs/stockroom/pkg/logger"
)

// Publisher wraps a Kafka producer. A nil *Publisher is safe to call: every
// publish becomes a no-op, so the service runs without a broker.
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishMovementRecorded publishes a stock movement event
func (p *Publisher) PublishMovementRecorded(ctx context.Context, event StockMovementRecordedEvent) error {
	if p == nil {
		return nil
	}
	event.EventID = uuid.NewString()
	event.EventType = EventTypeStockMovementRecorded
	event.Timestamp = time.Now()

	key := fmt.Sprintf("product_%d", event.ProductID)
	return p.publish(ctx, TopicStockMovements, key, event.EventType, event.EventID, event)
}

// PublishLowStockAlert publishes a low stock alert
func (p *Publisher) PublishLowStockAlert(ctx context.Context, event LowStockAlertEvent) error {
	if p == nil {
		return nil
	}
	event.EventID = uuid.NewString()
	event.EventType = EventTypeLowStockAlert
	event.Timestamp = time.Now()

	key := fmt.Sprintf("product_%d", event.ProductID)
	return p.publish(ctx, TopicStockAlerts, key, event.EventType, event.EventID, event)
}

// PublishImportCompleted publishes an import run summary
func (p *Publisher) PublishImportCompleted(ctx context.Context, event ImportCompletedEvent) error {
	if p == nil {
		return nil
	}
	event.EventID = uuid.NewString()
	event.EventType = EventTypeImportCompleted
	event.Timestamp = time.Now()

	return p.publish(ctx, TopicImports, event.RunID, event.EventType, event.EventID, event)
}

func (p *Publisher) publish(ctx context.Context, topic, key, eventType, eventID string, payload interface{}) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
	)
	defer span.End()

	eventBytes, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into message headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Logger.Debug().
		Str("topic", topic).
		Str("event_id", eventID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
	return nil
}

// Close shuts down the underlying producer
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
