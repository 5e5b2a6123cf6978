package v1

import "context"

// Store persists and loads the residual book per commodity.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=book_mock
type Store interface {
	Store(ctx context.Context, book *ResidualBook) error
	Load(ctx context.Context, commodity string) (*ResidualBook, error)
}
