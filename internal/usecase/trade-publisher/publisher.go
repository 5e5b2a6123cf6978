package tradepublisher

import (
	"context"

	"github.com/segmentio/kafka-go"

	tradepublisherv1 "github.com/agrihedge/hedging-worker/internal/domain/trade-publisher/v1"
	"github.com/agrihedge/hedging-worker/pkg/config"
	"github.com/agrihedge/hedging-worker/pkg/errors"
	"github.com/agrihedge/hedging-worker/pkg/logger"
)

// Publisher represents a Kafka publisher for trade events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

var _ tradepublisherv1.TradePublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for trade events.
func NewPublisher(config config.TradePublisherConfig, logger logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      logger,
	}
}

// PublishTradeEvent publishes a trade event to the Kafka topic. The event
// is keyed by commodity so one lane stays ordered within a partition.
func (p *Publisher) PublishTradeEvent(ctx context.Context, payload *tradepublisherv1.TradeEventPayload) error {
	value, err := payload.ToBytes()
	if err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "tradeEvent", Value: payload},
		)
		return errors.NewTracer("trade_event_marshal_error").Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.Commodity),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "tradeEvent", Value: payload},
		)
		return errors.NewTracer("trade_event_publish_error").Wrap(err)
	}
	return nil
}

// Close properly closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
