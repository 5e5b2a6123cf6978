package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matching "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func submittedAt(offsetSeconds int) time.Time {
	return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(offsetSeconds) * time.Second)
}

func TestMatch_PartialFillAcrossTwoSells(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 4580, Quantity: 50, SubmittedAt: submittedAt(0)},
		{ID: "s1", Side: matching.SideSell, Price: 4570, Quantity: 30, SubmittedAt: submittedAt(1)},
		{ID: "s2", Side: matching.SideSell, Price: 4580, Quantity: 25, SubmittedAt: submittedAt(2)},
	}

	result, err := matcher.Match(orders)
	require.NoError(t, err)

	require.Len(t, result.Trades, 2)

	assert.Equal(t, "b1", result.Trades[0].BuyOrderID)
	assert.Equal(t, "s1", result.Trades[0].SellOrderID)
	assert.Equal(t, 4575.0, result.Trades[0].Price)
	assert.Equal(t, 30.0, result.Trades[0].Quantity)

	assert.Equal(t, "b1", result.Trades[1].BuyOrderID)
	assert.Equal(t, "s2", result.Trades[1].SellOrderID)
	assert.Equal(t, 4580.0, result.Trades[1].Price)
	assert.Equal(t, 20.0, result.Trades[1].Quantity)

	require.Len(t, result.ResidualOrders, 1)
	assert.Equal(t, "s2", result.ResidualOrders[0].ID)
	assert.Equal(t, 5.0, result.ResidualOrders[0].Quantity)
}

func TestMatch_NoCross(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 100, Quantity: 10, SubmittedAt: submittedAt(0)},
		{ID: "s1", Side: matching.SideSell, Price: 101, Quantity: 10, SubmittedAt: submittedAt(1)},
	}

	result, err := matcher.Match(orders)
	require.NoError(t, err)

	assert.Empty(t, result.Trades)
	require.Len(t, result.ResidualOrders, 2)
	assert.Equal(t, "b1", result.ResidualOrders[0].ID)
	assert.Equal(t, "s1", result.ResidualOrders[1].ID)
}

func TestMatch_ExactFill(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 100, Quantity: 10, SubmittedAt: submittedAt(0)},
		{ID: "s1", Side: matching.SideSell, Price: 100, Quantity: 10, SubmittedAt: submittedAt(1)},
	}

	result, err := matcher.Match(orders)
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, 100.0, result.Trades[0].Price)
	assert.Equal(t, 10.0, result.Trades[0].Quantity)
	assert.Empty(t, result.ResidualOrders)
}

func TestMatch_TimePriorityAtEqualPrice(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	// b2 arrived before b1 at the same price, so b2 trades first.
	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 200, Quantity: 5, SubmittedAt: submittedAt(10)},
		{ID: "b2", Side: matching.SideBuy, Price: 200, Quantity: 5, SubmittedAt: submittedAt(5)},
		{ID: "s1", Side: matching.SideSell, Price: 200, Quantity: 5, SubmittedAt: submittedAt(20)},
	}

	result, err := matcher.Match(orders)
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, "b2", result.Trades[0].BuyOrderID)

	require.Len(t, result.ResidualOrders, 1)
	assert.Equal(t, "b1", result.ResidualOrders[0].ID)
}

func TestMatch_MidpointRoundedToCents(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 100.05, Quantity: 1, SubmittedAt: submittedAt(0)},
		{ID: "s1", Side: matching.SideSell, Price: 100.00, Quantity: 1, SubmittedAt: submittedAt(1)},
	}

	result, err := matcher.Match(orders)
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	// Midpoint 100.025 rounds half away from zero to 100.03.
	assert.Equal(t, 100.03, result.Trades[0].Price)
}

func TestMatch_StopsAtFirstUncrossedPair(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	// Best bid 90 does not reach best ask 95, so the deeper crossable
	// pair (b2 at 100 vs s2 at 96) must not trade either.
	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 90, Quantity: 10, SubmittedAt: submittedAt(0)},
		{ID: "b2", Side: matching.SideBuy, Price: 100, Quantity: 10, SubmittedAt: submittedAt(1)},
		{ID: "s1", Side: matching.SideSell, Price: 95, Quantity: 10, SubmittedAt: submittedAt(2)},
		{ID: "s2", Side: matching.SideSell, Price: 96, Quantity: 10, SubmittedAt: submittedAt(3)},
	}

	result, err := matcher.Match(orders)
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, "b2", result.Trades[0].BuyOrderID)
	assert.Equal(t, "s1", result.Trades[0].SellOrderID)

	// b1 at 90 vs s2 at 96 does not cross, so matching stops there.
	require.Len(t, result.ResidualOrders, 2)
	assert.Equal(t, "b1", result.ResidualOrders[0].ID)
	assert.Equal(t, "s2", result.ResidualOrders[1].ID)
}

func TestMatch_InvalidOrderFailsWholeBatch(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	tests := []struct {
		name   string
		orders []matching.Order
	}{
		{
			name: "zero quantity",
			orders: []matching.Order{
				{ID: "b1", Side: matching.SideBuy, Price: 100, Quantity: 10, SubmittedAt: submittedAt(0)},
				{ID: "s1", Side: matching.SideSell, Price: 100, Quantity: 0, SubmittedAt: submittedAt(1)},
			},
		},
		{
			name: "negative price",
			orders: []matching.Order{
				{ID: "b1", Side: matching.SideBuy, Price: -1, Quantity: 10, SubmittedAt: submittedAt(0)},
			},
		},
		{
			name: "unknown side",
			orders: []matching.Order{
				{ID: "x1", Side: "hold", Price: 100, Quantity: 10, SubmittedAt: submittedAt(0)},
			},
		},
		{
			name: "missing id",
			orders: []matching.Order{
				{ID: "", Side: matching.SideBuy, Price: 100, Quantity: 10, SubmittedAt: submittedAt(0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := matcher.Match(tt.orders)
			require.Error(t, err)
			assert.Nil(t, result)

			var invalidErr *matching.InvalidOrderError
			assert.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestMatch_EmptyBatch(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	result, err := matcher.Match(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Trades)
	assert.Empty(t, result.ResidualOrders)
}

func TestMatch_DoesNotMutateInput(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 100, Quantity: 10, SubmittedAt: submittedAt(0)},
		{ID: "s1", Side: matching.SideSell, Price: 100, Quantity: 4, SubmittedAt: submittedAt(1)},
	}

	_, err := matcher.Match(orders)
	require.NoError(t, err)

	assert.Equal(t, 10.0, orders[0].Quantity)
	assert.Equal(t, 4.0, orders[1].Quantity)
}

func TestMatch_Deterministic(t *testing.T) {
	matcher := NewMatcherWithClock(testClock)

	orders := []matching.Order{
		{ID: "b1", Side: matching.SideBuy, Price: 105, Quantity: 7, SubmittedAt: submittedAt(0)},
		{ID: "b2", Side: matching.SideBuy, Price: 103, Quantity: 3, SubmittedAt: submittedAt(1)},
		{ID: "s1", Side: matching.SideSell, Price: 101, Quantity: 5, SubmittedAt: submittedAt(2)},
		{ID: "s2", Side: matching.SideSell, Price: 104, Quantity: 6, SubmittedAt: submittedAt(3)},
	}

	first, err := matcher.Match(orders)
	require.NoError(t, err)

	second, err := matcher.Match(orders)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
