package v1

import (
	"encoding/json"
	"time"

	matching "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
)

// TradeEventPayload is the event published for every executed trade.
type TradeEventPayload struct {
	ID          string    `json:"id"`
	BatchID     string    `json:"batchId"`
	Commodity   string    `json:"commodity"`
	BuyOrderID  string    `json:"buyId"`
	SellOrderID string    `json:"sellId"`
	Price       float64   `json:"price"`
	Quantity    float64   `json:"qty"`
	ExecutedAt  time.Time `json:"executedAt"`
}

// CreateFromTrade builds an event payload from an executed trade.
func CreateFromTrade(id, batchID, commodity string, trade matching.Trade) *TradeEventPayload {
	return &TradeEventPayload{
		ID:          id,
		BatchID:     batchID,
		Commodity:   commodity,
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		Price:       trade.Price,
		Quantity:    trade.Quantity,
		ExecutedAt:  trade.ExecutedAt,
	}
}

// ToBytes serializes the payload for the wire.
func (p *TradeEventPayload) ToBytes() ([]byte, error) {
	return json.Marshal(p)
}

// FromBytes deserializes a payload from the wire.
func FromBytes(data []byte) (*TradeEventPayload, error) {
	var payload TradeEventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
