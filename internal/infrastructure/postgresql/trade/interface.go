package trade

import "context"

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// TradeRepository is the repository for executed trades.
type TradeRepository interface {
	StoreBatch(ctx context.Context, trades []*Trade) error
	List(ctx context.Context, filter Filter) ([]*Trade, error)
}
