package matching

import (
	"math"
	"sort"
	"time"

	matching "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
)

// Matcher crosses a batch of orders with price-time priority. Buys are
// ranked highest price first, sells lowest price first, ties broken by
// submission time. Each trade executes at the midpoint of the two resting
// prices, rounded to cents.
type Matcher struct {
	clock func() time.Time
}

// NewMatcher creates a Matcher that stamps trades with the wall clock.
func NewMatcher() *Matcher {
	return NewMatcherWithClock(time.Now)
}

// NewMatcherWithClock creates a Matcher with an injected clock.
func NewMatcherWithClock(clock func() time.Time) *Matcher {
	return &Matcher{clock: clock}
}

var _ matching.Matcher = (*Matcher)(nil)

// Match validates the batch, crosses it, and returns the executed trades
// plus the residual orders. A single malformed order fails the whole
// batch and no trades are produced. The input slice is not mutated.
func (m *Matcher) Match(orders []matching.Order) (*matching.Result, error) {
	for _, order := range orders {
		if err := order.Validate(); err != nil {
			return nil, err
		}
	}

	var buys, sells []matching.Order
	for _, order := range orders {
		if order.IsBuy() {
			buys = append(buys, order)
		} else {
			sells = append(sells, order)
		}
	}

	// Stable sort keeps arrival order for orders equal on both keys.
	sort.SliceStable(buys, func(a, b int) bool {
		if buys[a].Price != buys[b].Price {
			return buys[a].Price > buys[b].Price
		}
		return buys[a].SubmittedAt.Before(buys[b].SubmittedAt)
	})
	sort.SliceStable(sells, func(a, b int) bool {
		if sells[a].Price != sells[b].Price {
			return sells[a].Price < sells[b].Price
		}
		return sells[a].SubmittedAt.Before(sells[b].SubmittedAt)
	})

	trades := []matching.Trade{}

	i, j := 0, 0
	for i < len(buys) && j < len(sells) {
		buy := &buys[i]
		sell := &sells[j]

		// Matching stops at the first uncrossed pair. Deeper orders are
		// not probed even if some later pair might still cross.
		if buy.Price < sell.Price {
			break
		}

		quantity := math.Min(buy.Quantity, sell.Quantity)
		trades = append(trades, matching.Trade{
			BuyOrderID:  buy.ID,
			SellOrderID: sell.ID,
			Price:       roundToCents((buy.Price + sell.Price) / 2),
			Quantity:    quantity,
			ExecutedAt:  m.clock(),
		})

		buy.Quantity -= quantity
		sell.Quantity -= quantity

		if buy.IsFilled() {
			i++
		}
		if sell.IsFilled() {
			j++
		}
	}

	residuals := []matching.Order{}
	for ; i < len(buys); i++ {
		if !buys[i].IsFilled() {
			residuals = append(residuals, buys[i])
		}
	}
	for ; j < len(sells); j++ {
		if !sells[j].IsFilled() {
			residuals = append(residuals, sells[j])
		}
	}

	return &matching.Result{
		Trades:         trades,
		ResidualOrders: residuals,
	}, nil
}

// roundToCents rounds half away from zero to two decimal places.
func roundToCents(x float64) float64 {
	return math.Round(x*100) / 100
}
