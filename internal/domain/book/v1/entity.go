package v1

import (
	"time"

	matching "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
)

// ResidualBook holds the unfilled remainder of the last matched batch
// for a commodity lane.
type ResidualBook struct {
	Commodity string           `json:"commodity"`
	Orders    []matching.Order `json:"orders"`
	BatchID   string           `json:"batchId"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
