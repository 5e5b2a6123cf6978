package book

import (
	"context"
	"encoding/json"
	"fmt"

	bookv1 "github.com/agrihedge/hedging-worker/internal/domain/book/v1"
	"github.com/agrihedge/hedging-worker/pkg/errors"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	"github.com/agrihedge/hedging-worker/pkg/redis"
)

// Store keeps the residual book for each commodity lane in Redis.
type Store struct {
	logger      logger.Interface
	redisclient redis.Client
}

var _ bookv1.Store = (*Store)(nil)

// NewStore creates a new residual book store backed by Redis.
func NewStore(redisclient redis.Client, logger logger.Interface) *Store {
	return &Store{
		logger:      logger,
		redisclient: redisclient,
	}
}

func bookKey(commodity string) string {
	return fmt.Sprintf("book:%s", commodity)
}

// Store persists the residual book, replacing whatever was there.
func (s *Store) Store(ctx context.Context, book *bookv1.ResidualBook) error {
	buf, err := json.Marshal(book)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: book.Commodity,
		})
		return errors.NewTracer("book_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, bookKey(book.Commodity), buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: book.Commodity,
		})
		return errors.NewTracer("book_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Residual book stored",
		logger.Field{Key: "commodity", Value: book.Commodity},
		logger.Field{Key: "batchId", Value: book.BatchID},
		logger.Field{Key: "orders", Value: len(book.Orders)},
	)
	return nil
}

// Load returns the residual book for a commodity, or nil when none exists.
func (s *Store) Load(ctx context.Context, commodity string) (*bookv1.ResidualBook, error) {
	data, err := s.redisclient.Get(ctx, bookKey(commodity))
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: commodity,
		})
		return nil, errors.NewTracer("book_load_error").Wrap(err)
	}

	if data == "" {
		return nil, nil
	}

	var book bookv1.ResidualBook
	if err := json.Unmarshal([]byte(data), &book); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: commodity,
		})
		return nil, errors.NewTracer("book_unmarshal_error").Wrap(err)
	}

	return &book, nil
}
