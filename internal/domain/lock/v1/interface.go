package v1

import "context"

// CommodityLock serializes batch processing per commodity lane. Acquire
// returns false without error when another holder owns the lane.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=lock_mock
type CommodityLock interface {
	Acquire(ctx context.Context, commodity string) (bool, error)
	Release(ctx context.Context, commodity string) error
}
