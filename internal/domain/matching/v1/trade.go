package v1

import "time"

// Trade records a fill between one buy order and one sell order.
type Trade struct {
	BuyOrderID  string    `json:"buyId"`
	SellOrderID string    `json:"sellId"`
	Price       float64   `json:"price"`
	Quantity    float64   `json:"qty"`
	ExecutedAt  time.Time `json:"executedAt"`
}

// Result is the outcome of matching one batch of orders.
type Result struct {
	Trades         []Trade `json:"trades"`
	ResidualOrders []Order `json:"residualOrders"`
}
