package v1

import "context"

//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=forecast_mock

// Projector computes a price band from recent history.
type Projector interface {
	Project(history []float64, horizonDays int) []Point
}

// Store caches forecast results per commodity.
type Store interface {
	Store(ctx context.Context, result *Result) error
	Load(ctx context.Context, commodity string) (*Result, error)
}
