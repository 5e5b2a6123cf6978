package lock

import (
	"context"
	"fmt"
	"time"

	lockv1 "github.com/agrihedge/hedging-worker/internal/domain/lock/v1"
	"github.com/agrihedge/hedging-worker/pkg/errors"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	"github.com/agrihedge/hedging-worker/pkg/redis"
)

// DefaultLease is how long a lane lease lives if the holder dies without
// releasing it.
const DefaultLease = 30 * time.Second

// Lock serializes batch processing per commodity lane with a Redis lease.
type Lock struct {
	logger      logger.Interface
	redisclient redis.Client
	holder      string
	lease       time.Duration
}

var _ lockv1.CommodityLock = (*Lock)(nil)

// NewLock creates a lane lock. holder identifies this worker instance in
// the lease value.
func NewLock(redisclient redis.Client, holder string, lease time.Duration, logger logger.Interface) *Lock {
	if lease <= 0 {
		lease = DefaultLease
	}
	return &Lock{
		logger:      logger,
		redisclient: redisclient,
		holder:      holder,
		lease:       lease,
	}
}

func laneKey(commodity string) string {
	return fmt.Sprintf("lane:%s", commodity)
}

// Acquire takes the lane lease. It returns false without error when the
// lane is already held.
func (l *Lock) Acquire(ctx context.Context, commodity string) (bool, error) {
	acquired, err := l.redisclient.SetNX(ctx, laneKey(commodity), l.holder, l.lease)
	if err != nil {
		l.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: commodity,
		})
		return false, errors.NewTracer("lane_acquire_error").Wrap(err)
	}
	return acquired, nil
}

// Release frees the lane lease.
func (l *Lock) Release(ctx context.Context, commodity string) error {
	if _, err := l.redisclient.Del(ctx, laneKey(commodity)); err != nil {
		l.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "commodity",
			Value: commodity,
		})
		return errors.NewTracer("lane_release_error").Wrap(err)
	}
	return nil
}
