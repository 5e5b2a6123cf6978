package forecast

import (
	"math"

	forecastv1 "github.com/agrihedge/hedging-worker/internal/domain/forecast/v1"
)

// Forecaster projects a naive price band from recent closing prices: a
// small daily drift around the historical average with a flat two percent
// confidence band.
type Forecaster struct{}

// NewForecaster creates a new Forecaster.
func NewForecaster() *Forecaster {
	return &Forecaster{}
}

var _ forecastv1.Projector = (*Forecaster)(nil)

// Project returns one point per day of the horizon. An empty history or a
// non-positive horizon yields an empty projection.
func (f *Forecaster) Project(history []float64, horizonDays int) []forecastv1.Point {
	points := []forecastv1.Point{}
	if len(history) == 0 || horizonDays <= 0 {
		return points
	}

	var sum float64
	for _, price := range history {
		sum += price
	}
	avg := sum / float64(len(history))

	lower := roundToCents(avg * 0.98)
	upper := roundToCents(avg * 1.02)

	for k := 0; k < horizonDays; k++ {
		points = append(points, forecastv1.Point{
			Day:   k + 1,
			Price: roundToCents(avg * (1 + 0.001*float64(k))),
			Lower: lower,
			Upper: upper,
		})
	}

	return points
}

func roundToCents(x float64) float64 {
	return math.Round(x*100) / 100
}
