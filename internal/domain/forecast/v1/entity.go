package v1

import "time"

// Point is one projected day of the price band.
type Point struct {
	Day   int     `json:"day"`
	Price float64 `json:"price"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Result is a stored projection for a commodity.
type Result struct {
	Commodity   string    `json:"commodity"`
	Forecast    []Point   `json:"forecast"`
	GeneratedAt time.Time `json:"generatedAt"`
}
