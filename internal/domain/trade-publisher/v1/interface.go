package v1

import "context"

// TradePublisher emits trade events to downstream consumers.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradepublisher_mock
type TradePublisher interface {
	PublishTradeEvent(ctx context.Context, payload *TradeEventPayload) error
	Close() error
}
