package publisher

import (
	"context"
	"errors"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/repository"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const defaultBatchSize = 100

type OutboxStore interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*repository.OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutboxPoller publishes recorded order events to Kafka. Publishing goes
// through a circuit breaker; while it is open the remaining batch is left for
// the next tick.
type OutboxPoller struct {
	timeout   time.Duration
	eventTick time.Duration
	batchSize int
	repo      OutboxStore
	writer    MessageWriter
	breaker   *gobreaker.CircuitBreaker[any]
	logger    *zap.Logger
}

func NewOutboxPoller(repo OutboxStore, breaker *gobreaker.CircuitBreaker[any], logger *zap.Logger, topic string, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		timeout:   5 * time.Second,
		eventTick: time.Second,
		batchSize: defaultBatchSize,
		repo:      repo,
		writer:    w,
		breaker:   breaker,
		logger:    logger,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	eventTicker := time.NewTicker(p.eventTick)
	defer eventTicker.Stop()
	for {
		select {
		case <-eventTicker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) Close() error {
	return p.writer.Close()
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("failed to fetch outbox events", zap.Error(err))
		return
	}

	for _, event := range events {
		_, errPublish := p.breaker.Execute(func() (any, error) {
			return nil, p.publishToKafka(ctx, event)
		})
		if errors.Is(errPublish, gobreaker.ErrOpenState) || errors.Is(errPublish, gobreaker.ErrTooManyRequests) {
			p.logger.Warn("event publishing paused, breaker open", zap.Int64("event_id", event.ID))
			return
		}
		if errPublish != nil {
			p.logger.Error("failed to publish event",
				zap.Int64("event_id", event.ID),
				zap.String("order_id", event.AggregateID),
				zap.Error(errPublish))
			continue
		}

		if errMark := p.repo.MarkEventAsProcessed(ctx, event.ID); errMark != nil {
			p.logger.Error("failed to mark event as processed", zap.Int64("event_id", event.ID), zap.Error(errMark))
		}
	}
}

func (p *OutboxPoller) publishToKafka(ctx context.Context, event *repository.OutboxEvent) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id keeps one order's events ordered
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}
