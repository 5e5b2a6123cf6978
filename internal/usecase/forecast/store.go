package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	forecastv1 "github.com/agrihedge/hedging-worker/internal/domain/forecast/v1"
	"github.com/agrihedge/hedging-worker/pkg/errors"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	"github.com/agrihedge/hedging-worker/pkg/redis"
)

// DefaultTTL bounds how stale a cached projection can get.
const DefaultTTL = 24 * time.Hour

// Store caches forecast results per commodity in Redis.
type Store struct {
	logger      logger.Interface
	redisclient redis.Client
	ttl         time.Duration
}

var _ forecastv1.Store = (*Store)(nil)

// NewStore creates a forecast cache backed by Redis.
func NewStore(redisclient redis.Client, ttl time.Duration, logger logger.Interface) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		logger:      logger,
		redisclient: redisclient,
		ttl:         ttl,
	}
}

func forecastKey(commodity string) string {
	return fmt.Sprintf("forecast:%s", commodity)
}

// Store caches the projection for its commodity.
func (s *Store) Store(ctx context.Context, result *forecastv1.Result) error {
	buf, err := json.Marshal(result)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: result.Commodity,
		})
		return errors.NewTracer("forecast_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, forecastKey(result.Commodity), buf, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: result.Commodity,
		})
		return errors.NewTracer("forecast_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Forecast stored",
		logger.Field{Key: "commodity", Value: result.Commodity},
		logger.Field{Key: "points", Value: len(result.Forecast)},
	)
	return nil
}

// Load returns the cached projection, or nil when none exists.
func (s *Store) Load(ctx context.Context, commodity string) (*forecastv1.Result, error) {
	data, err := s.redisclient.Get(ctx, forecastKey(commodity))
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: commodity,
		})
		return nil, errors.NewTracer("forecast_load_error").Wrap(err)
	}

	if data == "" {
		return nil, nil
	}

	var result forecastv1.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: commodity,
		})
		return nil, errors.NewTracer("forecast_unmarshal_error").Wrap(err)
	}

	return &result, nil
}
