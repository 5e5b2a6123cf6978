package jobreader

import (
	"context"

	"github.com/segmentio/kafka-go"

	jobreaderv1 "github.com/agrihedge/hedging-worker/internal/domain/job-reader/v1"
	"github.com/agrihedge/hedging-worker/pkg/config"
	"github.com/agrihedge/hedging-worker/pkg/errors"
	"github.com/agrihedge/hedging-worker/pkg/logger"
)

// Reader represents a Kafka reader for consuming job messages.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

var _ jobreaderv1.JobReader = Reader{}

// NewReader creates a new Kafka reader for consuming job messages.
func NewReader(config config.KafkaConfig, log logger.Interface) Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  config.Brokers,
		Topic:    config.Topic,
		GroupID:  config.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r Reader) logError(ctx context.Context, err error, operation string) {
	r.logger.ErrorContext(ctx, err,
		logger.Field{Key: "error", Value: err.Error()},
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadMessage reads a message from the job topic and parses its envelope.
func (r Reader) ReadMessage(ctx context.Context) (kafka.Message, *jobreaderv1.Envelope, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(ctx, err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	envelope, err := jobreaderv1.FromBytes(msg.Value)
	if err != nil {
		r.logError(ctx, err, "UnmarshalEnvelope")
		return msg, nil, errors.NewErrorDetails(err.Error(), string(errors.InvalidJobPayloadError), "envelope")
	}

	r.logger.InfoContext(ctx, "ReadMessage",
		logger.Field{Key: "kind", Value: envelope.Kind},
		logger.Field{Key: "commodity", Value: envelope.Commodity},
		logger.Field{Key: "offset", Value: msg.Offset},
	)

	return msg, envelope, nil
}

// CommitMessages commits the messages to Kafka after successful processing.
func (r Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(ctx, err, "CommitMessages")
		return err
	}
	return nil
}

// Close properly closes the Kafka reader.
func (r Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(context.Background(), err, "Close")
		return err
	}
	return nil
}
