package trade

import (
	"time"

	matchingv1 "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
)

// Trade is a persisted fill from one matched batch.
type Trade struct {
	ID          string    `json:"id"`
	Commodity   string    `json:"commodity"`
	BuyOrderID  string    `json:"buyId"`
	SellOrderID string    `json:"sellId"`
	Price       float64   `json:"price"`
	Quantity    float64   `json:"qty"`
	BatchID     string    `json:"batchId"`
	ExecutedAt  time.Time `json:"executedAt"`
}

// FromMatch builds a persistable record from an executed trade.
func FromMatch(id, batchID, commodity string, match matchingv1.Trade) *Trade {
	return &Trade{
		ID:          id,
		Commodity:   commodity,
		BuyOrderID:  match.BuyOrderID,
		SellOrderID: match.SellOrderID,
		Price:       match.Price,
		Quantity:    match.Quantity,
		BatchID:     batchID,
		ExecutedAt:  match.ExecutedAt,
	}
}

// Filter represents the filter criteria for listing trades.
type Filter struct {
	Commodity string     `json:"commodity"`
	BatchID   string     `json:"batchId"`
	From      *time.Time `json:"from"`
	To        *time.Time `json:"to"`
	Limit     int        `json:"limit"`
}
