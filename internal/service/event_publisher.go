package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/pkg/logger"
	"github.com/prohmpiriya/smart-parking/pkg/retry"
)

// EventPublisher defines the interface for publishing booking lifecycle events
type EventPublisher interface {
	// PublishBookingCreated publishes a booking created event
	PublishBookingCreated(ctx context.Context, booking *domain.Booking) error

	// PublishBookingCompleted publishes a booking completed event
	PublishBookingCompleted(ctx context.Context, booking *domain.Booking) error

	// PublishBookingCancelled publishes a booking cancelled event
	PublishBookingCancelled(ctx context.Context, booking *domain.Booking) error

	// Close closes the event publisher
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	client *kgo.Client
	topic  string
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(ctx context.Context, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("event publisher config is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "parking-booking-events"
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "smart-parking-producer"
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(clientID),
		kgo.ProducerBatchMaxBytes(1 << 20),
		kgo.RecordRetries(3),
		kgo.ProduceRequestTimeout(10 * time.Second),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	// Brokers often come up after the API does, so the startup ping
	// retries with backoff before giving up
	result := retry.Do(ctx, &retry.Config{MaxRetries: 3, InitialInterval: time.Second}, func(ctx context.Context) error {
		return client.Ping(ctx)
	})
	if result.Err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping kafka after %d attempts: %w", result.Attempts, result.Err)
	}

	return &KafkaEventPublisher{
		client: client,
		topic:  topic,
	}, nil
}

// PublishBookingCreated publishes a booking created event
func (p *KafkaEventPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, domain.NewBookingEvent(domain.BookingEventCreated, booking, uuid.New().String()))
}

// PublishBookingCompleted publishes a booking completed event
func (p *KafkaEventPublisher) PublishBookingCompleted(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, domain.NewBookingEvent(domain.BookingEventCompleted, booking, uuid.New().String()))
}

// PublishBookingCancelled publishes a booking cancelled event
func (p *KafkaEventPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, domain.NewBookingEvent(domain.BookingEventCancelled, booking, uuid.New().String()))
}

func (p *KafkaEventPublisher) publish(ctx context.Context, event *domain.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.Key()),
		Value: payload,
	}

	results := p.client.ProduceSync(ctx, record)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}

	logger.Get().Debug("booking event published",
		zap.String("event_type", string(event.EventType)),
		zap.String("booking_id", event.BookingID))
	return nil
}

// Close flushes pending records and closes the Kafka client
func (p *KafkaEventPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		logger.Get().Warn("kafka flush on close failed", zap.Error(err))
	}
	p.client.Close()
	return nil
}

// NoOpEventPublisher implements EventPublisher without a broker. Used when
// Kafka is disabled or unreachable so booking flows never depend on it.
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new NoOpEventPublisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

func (p *NoOpEventPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	return nil
}

func (p *NoOpEventPublisher) PublishBookingCompleted(ctx context.Context, booking *domain.Booking) error {
	return nil
}

func (p *NoOpEventPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return nil
}

func (p *NoOpEventPublisher) Close() error {
	return nil
}

var (
	_ EventPublisher = (*KafkaEventPublisher)(nil)
	_ EventPublisher = (*NoOpEventPublisher)(nil)
)
