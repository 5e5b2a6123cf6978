package v1

import (
	"math"
	"time"
)

// Side is the direction of an order.
type Side string

const (
	// SideBuy bids for a quantity at or below the order price.
	SideBuy Side = "buy"
	// SideSell offers a quantity at or above the order price.
	SideSell Side = "sell"
)

// Order is a resting order submitted to a commodity lane.
type Order struct {
	ID          string    `json:"id"`
	Side        Side      `json:"side"`
	Price       float64   `json:"price"`
	Quantity    float64   `json:"qty"`
	SubmittedAt time.Time `json:"ts"`
}

// IsBuy reports whether the order is on the buy side.
func (o Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsFilled reports whether the order has no remaining quantity.
func (o Order) IsFilled() bool {
	return o.Quantity <= 0
}

// Validate checks the order fields. The negated comparisons also reject NaN.
func (o Order) Validate() error {
	if o.ID == "" {
		return NewInvalidOrderError(o.ID, "order id is empty")
	}
	if o.Side != SideBuy && o.Side != SideSell {
		return NewInvalidOrderError(o.ID, "side must be buy or sell")
	}
	if !(o.Price > 0) || math.IsInf(o.Price, 0) {
		return NewInvalidOrderError(o.ID, "price must be a positive finite number")
	}
	if !(o.Quantity > 0) || math.IsInf(o.Quantity, 0) {
		return NewInvalidOrderError(o.ID, "quantity must be a positive finite number")
	}
	if o.SubmittedAt.IsZero() {
		return NewInvalidOrderError(o.ID, "submitted timestamp is missing")
	}
	return nil
}
