package v1

import (
	"encoding/json"

	matching "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
)

// Kind selects which handler processes a job.
type Kind string

const (
	// KindMatchOrders crosses a batch of orders for a commodity lane.
	KindMatchOrders Kind = "matchOrders"
	// KindForecast projects a short price band from recent history.
	KindForecast Kind = "forecast"
)

// Envelope is the payload carried by every job message.
type Envelope struct {
	Kind      Kind   `json:"kind"`
	Commodity string `json:"commodity"`

	// matchOrders payload
	Orders []matching.Order `json:"orders,omitempty"`

	// forecast payload
	History     []float64 `json:"history,omitempty"`
	HorizonDays int       `json:"horizonDays,omitempty"`
}

// FromBytes decodes an Envelope from a job message value.
func FromBytes(data []byte) (*Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
