package matching

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	matching "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
)

func genBatch(t *rapid.T) []matching.Order {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	count := rapid.IntRange(0, 40).Draw(t, "count")

	orders := make([]matching.Order, 0, count)
	for i := 0; i < count; i++ {
		side := matching.SideBuy
		if rapid.Bool().Draw(t, fmt.Sprintf("sell_%d", i)) {
			side = matching.SideSell
		}

		// Whole-cent prices and integral quantities keep float arithmetic exact.
		priceCents := rapid.Int64Range(1, 1_000_000).Draw(t, fmt.Sprintf("price_%d", i))
		quantity := rapid.Int64Range(1, 10_000).Draw(t, fmt.Sprintf("qty_%d", i))
		offset := rapid.Int64Range(0, 86_400).Draw(t, fmt.Sprintf("ts_%d", i))

		orders = append(orders, matching.Order{
			ID:          fmt.Sprintf("o%d", i),
			Side:        side,
			Price:       float64(priceCents) / 100,
			Quantity:    float64(quantity),
			SubmittedAt: base.Add(time.Duration(offset) * time.Second),
		})
	}
	return orders
}

func TestMatch_QuantityConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		orders := genBatch(t)

		matcher := NewMatcherWithClock(testClock)
		result, err := matcher.Match(orders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		filled := make(map[string]float64)
		for _, trade := range result.Trades {
			if trade.Quantity <= 0 {
				t.Fatalf("trade with non-positive quantity: %+v", trade)
			}
			filled[trade.BuyOrderID] += trade.Quantity
			filled[trade.SellOrderID] += trade.Quantity
		}

		residual := make(map[string]float64)
		for _, order := range result.ResidualOrders {
			if order.Quantity <= 0 {
				t.Fatalf("residual with non-positive quantity: %+v", order)
			}
			residual[order.ID] += order.Quantity
		}

		for _, order := range orders {
			total := filled[order.ID] + residual[order.ID]
			if total != order.Quantity {
				t.Fatalf("order %s: filled %v + residual %v != submitted %v",
					order.ID, filled[order.ID], residual[order.ID], order.Quantity)
			}
		}
	})
}

func TestMatch_PriceBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		orders := genBatch(t)

		byID := make(map[string]matching.Order, len(orders))
		for _, order := range orders {
			byID[order.ID] = order
		}

		matcher := NewMatcherWithClock(testClock)
		result, err := matcher.Match(orders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, trade := range result.Trades {
			buy := byID[trade.BuyOrderID]
			sell := byID[trade.SellOrderID]

			if buy.Price < sell.Price {
				t.Fatalf("phantom cross: buy %v below sell %v", buy.Price, sell.Price)
			}
			// Rounding to cents can nudge the midpoint by at most half a cent.
			if trade.Price < sell.Price-0.005 || trade.Price > buy.Price+0.005 {
				t.Fatalf("trade price %v outside [%v, %v]", trade.Price, sell.Price, buy.Price)
			}
		}
	})
}

func TestMatch_DeterministicOverRuns(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		orders := genBatch(t)

		matcher := NewMatcherWithClock(testClock)

		first, err := matcher.Match(orders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := matcher.Match(orders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(first.Trades) != len(second.Trades) {
			t.Fatalf("trade count differs between runs: %d vs %d", len(first.Trades), len(second.Trades))
		}
		for i := range first.Trades {
			if first.Trades[i] != second.Trades[i] {
				t.Fatalf("trade %d differs between runs", i)
			}
		}
		if len(first.ResidualOrders) != len(second.ResidualOrders) {
			t.Fatalf("residual count differs between runs")
		}
		for i := range first.ResidualOrders {
			if first.ResidualOrders[i] != second.ResidualOrders[i] {
				t.Fatalf("residual %d differs between runs", i)
			}
		}
	})
}
