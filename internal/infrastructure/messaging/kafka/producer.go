package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/jurisdesk/prazo-engine/internal/application/computation"
	"github.com/jurisdesk/prazo-engine/internal/config"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

const (
	eventSource   = "prazo-engine"
	schemaVersion = "1"
)

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes computation audit and calendar update events.  It
// satisfies the application's EventPublisher port.  The topic is set per
// message so one writer serves both event streams.
type Producer struct {
	writer        WriterInterface
	computedTopic string
	logger        logging.Logger
	closed        atomic.Bool
}

// NewProducer builds a producer from config.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = TopicPrazoComputed
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
		MaxAttempts:  maxRetries,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{
		writer:        writer,
		computedTopic: topic,
		logger:        log.Named("kafka-producer"),
	}, nil
}

// NewProducerWithWriter wraps an existing writer (for tests).
func NewProducerWithWriter(w WriterInterface, topic string, log logging.Logger) *Producer {
	return &Producer{writer: w, computedTopic: topic, logger: log.Named("kafka-producer")}
}

// PublishComputed emits one prazo.computed event keyed by tribunal so
// per-tribunal ordering holds.
func (p *Producer) PublishComputed(ctx context.Context, event computation.ComputedEvent) error {
	eventID, err := p.publish(ctx, p.computedTopic, event.TribunalCode, event)
	if err != nil {
		return err
	}
	p.logger.Debug("computed event published",
		logging.String("event_id", eventID),
		logging.String("computation_id", event.ComputationID))
	return nil
}

// PublishCalendarUpdated announces a calendar upsert.
func (p *Producer) PublishCalendarUpdated(ctx context.Context, event computation.CalendarUpdatedEvent) error {
	eventID, err := p.publish(ctx, TopicCalendarUpdated, event.TribunalCode, event)
	if err != nil {
		return err
	}
	p.logger.Debug("calendar update event published",
		logging.String("event_id", eventID),
		logging.String("tribunal", event.TribunalCode),
		logging.Int("year", event.Year))
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, key string, payload interface{}) (string, error) {
	if p.closed.Load() {
		return "", errors.New(errors.ErrCodeInternal, "producer is closed")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event payload")
	}

	envelope := EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     topic,
		Source:        eventSource,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       body,
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event envelope")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  envelope.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to publish event to "+topic)
	}
	return envelope.EventID, nil
}

// Close flushes and closes the writer once.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
