package v1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// JobReader consumes job messages from the queue.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=jobreader_mock
type JobReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, *Envelope, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
