package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookv1 "github.com/agrihedge/hedging-worker/internal/domain/book/v1"
	book_mock "github.com/agrihedge/hedging-worker/internal/domain/book/v1/mock"
	forecastv1 "github.com/agrihedge/hedging-worker/internal/domain/forecast/v1"
	forecast_mock "github.com/agrihedge/hedging-worker/internal/domain/forecast/v1/mock"
	jobreaderv1 "github.com/agrihedge/hedging-worker/internal/domain/job-reader/v1"
	jobreader_mock "github.com/agrihedge/hedging-worker/internal/domain/job-reader/v1/mock"
	lock_mock "github.com/agrihedge/hedging-worker/internal/domain/lock/v1/mock"
	matchingv1 "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
	tradepublisher_mock "github.com/agrihedge/hedging-worker/internal/domain/trade-publisher/v1/mock"
	"github.com/agrihedge/hedging-worker/internal/infrastructure/postgresql/trade"
	trade_mock "github.com/agrihedge/hedging-worker/internal/infrastructure/postgresql/trade/mock"
	"github.com/agrihedge/hedging-worker/internal/usecase/forecast"
	"github.com/agrihedge/hedging-worker/internal/usecase/matching"
	"github.com/agrihedge/hedging-worker/pkg/config"
	"github.com/agrihedge/hedging-worker/pkg/logger"
)

type testFixture struct {
	ctrl              *gomock.Controller
	mockJobReader     *jobreader_mock.MockJobReader
	mockForecastStore *forecast_mock.MockStore
	mockBookStore     *book_mock.MockStore
	mockTradeRepo     *trade_mock.MockTradeRepository
	mockPublisher     *tradepublisher_mock.MockTradePublisher
	mockLock          *lock_mock.MockCommodityLock
	worker            *Worker
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	f := &testFixture{
		ctrl:              ctrl,
		mockJobReader:     jobreader_mock.NewMockJobReader(ctrl),
		mockForecastStore: forecast_mock.NewMockStore(ctrl),
		mockBookStore:     book_mock.NewMockStore(ctrl),
		mockTradeRepo:     trade_mock.NewMockTradeRepository(ctrl),
		mockPublisher:     tradepublisher_mock.NewMockTradePublisher(ctrl),
		mockLock:          lock_mock.NewMockCommodityLock(ctrl),
	}

	log, err := logger.NewLogger()
	require.NoError(t, err)

	cfg := &config.Config{Commodity: "soybean"}

	options := DefaultOptions()
	options.ReadBackoff = time.Millisecond

	f.worker = NewWorkerWithOptions(
		f.mockJobReader,
		matching.NewMatcher(),
		forecast.NewForecaster(),
		f.mockForecastStore,
		f.mockBookStore,
		f.mockTradeRepo,
		f.mockPublisher,
		f.mockLock,
		log,
		cfg,
		options,
	)

	return f
}

func matchEnvelope() *jobreaderv1.Envelope {
	submittedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &jobreaderv1.Envelope{
		Kind:      jobreaderv1.KindMatchOrders,
		Commodity: "soybean",
		Orders: []matchingv1.Order{
			{ID: "b1", Side: matchingv1.SideBuy, Price: 4580, Quantity: 50, SubmittedAt: submittedAt},
			{ID: "s1", Side: matchingv1.SideSell, Price: 4570, Quantity: 30, SubmittedAt: submittedAt.Add(time.Second)},
			{ID: "s2", Side: matchingv1.SideSell, Price: 4580, Quantity: 25, SubmittedAt: submittedAt.Add(2 * time.Second)},
		},
	}
}

func TestProcessMatchBatch(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	f.mockLock.EXPECT().Acquire(ctx, "soybean").Return(true, nil)
	f.mockLock.EXPECT().Release(ctx, "soybean").Return(nil)

	var stored []*trade.Trade
	f.mockTradeRepo.EXPECT().
		StoreBatch(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, trades []*trade.Trade) error {
			stored = trades
			return nil
		})

	var storedBook *bookv1.ResidualBook
	f.mockBookStore.EXPECT().
		Store(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, book *bookv1.ResidualBook) error {
			storedBook = book
			return nil
		})

	f.mockPublisher.EXPECT().
		PublishTradeEvent(ctx, gomock.Any()).
		Return(nil).
		Times(2)

	err := f.worker.processMatchBatch(ctx, matchEnvelope())
	require.NoError(t, err)

	require.Len(t, stored, 2)
	assert.Equal(t, "b1", stored[0].BuyOrderID)
	assert.Equal(t, "s1", stored[0].SellOrderID)
	assert.Equal(t, 4575.0, stored[0].Price)
	assert.Equal(t, 30.0, stored[0].Quantity)
	assert.Equal(t, "s2", stored[1].SellOrderID)
	assert.Equal(t, 20.0, stored[1].Quantity)
	assert.Equal(t, stored[0].BatchID, stored[1].BatchID)

	require.NotNil(t, storedBook)
	assert.Equal(t, "soybean", storedBook.Commodity)
	require.Len(t, storedBook.Orders, 1)
	assert.Equal(t, "s2", storedBook.Orders[0].ID)
	assert.Equal(t, 5.0, storedBook.Orders[0].Quantity)

	assert.Equal(t, int64(2), f.worker.GetTotalTrades())
}

func TestProcessMatchBatch_LaneBusy(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	f.mockLock.EXPECT().Acquire(ctx, "soybean").Return(false, nil)

	err := f.worker.processMatchBatch(ctx, matchEnvelope())
	assert.ErrorIs(t, err, ErrLaneBusy)
}

func TestProcessMatchBatch_InvalidOrderCommitsNothing(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	f.mockLock.EXPECT().Acquire(ctx, "soybean").Return(true, nil)
	f.mockLock.EXPECT().Release(ctx, "soybean").Return(nil)

	envelope := matchEnvelope()
	envelope.Orders[1].Quantity = 0

	err := f.worker.processMatchBatch(ctx, envelope)
	require.Error(t, err)

	var invalidErr *matchingv1.InvalidOrderError
	assert.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, int64(0), f.worker.GetTotalTrades())
}

func TestProcessMatchBatch_StoreErrorStopsPublish(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	f.mockLock.EXPECT().Acquire(ctx, "soybean").Return(true, nil)
	f.mockLock.EXPECT().Release(ctx, "soybean").Return(nil)

	f.mockTradeRepo.EXPECT().
		StoreBatch(ctx, gomock.Any()).
		Return(errors.New("insert failed"))

	err := f.worker.processMatchBatch(ctx, matchEnvelope())
	assert.Error(t, err)
}

func TestProcessMatchBatch_NoTradesStillStoresBook(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	f.mockLock.EXPECT().Acquire(ctx, "soybean").Return(true, nil)
	f.mockLock.EXPECT().Release(ctx, "soybean").Return(nil)

	var storedBook *bookv1.ResidualBook
	f.mockBookStore.EXPECT().
		Store(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, book *bookv1.ResidualBook) error {
			storedBook = book
			return nil
		})

	submittedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	envelope := &jobreaderv1.Envelope{
		Kind:      jobreaderv1.KindMatchOrders,
		Commodity: "soybean",
		Orders: []matchingv1.Order{
			{ID: "b1", Side: matchingv1.SideBuy, Price: 100, Quantity: 10, SubmittedAt: submittedAt},
			{ID: "s1", Side: matchingv1.SideSell, Price: 101, Quantity: 10, SubmittedAt: submittedAt},
		},
	}

	err := f.worker.processMatchBatch(ctx, envelope)
	require.NoError(t, err)

	require.NotNil(t, storedBook)
	assert.Len(t, storedBook.Orders, 2)
}

func TestProcessForecast(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	var storedResult *forecastv1.Result
	f.mockForecastStore.EXPECT().
		Store(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, result *forecastv1.Result) error {
			storedResult = result
			return nil
		})

	envelope := &jobreaderv1.Envelope{
		Kind:        jobreaderv1.KindForecast,
		Commodity:   "soybean",
		History:     []float64{100, 102, 104},
		HorizonDays: 3,
	}

	err := f.worker.processForecast(ctx, envelope)
	require.NoError(t, err)

	require.NotNil(t, storedResult)
	assert.Equal(t, "soybean", storedResult.Commodity)
	require.Len(t, storedResult.Forecast, 3)
	assert.Equal(t, 102.0, storedResult.Forecast[0].Price)
}

func TestProcessJob_UnknownKind(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	envelope := &jobreaderv1.Envelope{Kind: "rebalance"}

	err := f.worker.processJob(context.Background(), envelope)
	assert.Error(t, err)
}

func TestProcessJob_FallsBackToConfiguredCommodity(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	var storedResult *forecastv1.Result
	f.mockForecastStore.EXPECT().
		Store(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, result *forecastv1.Result) error {
			storedResult = result
			return nil
		})

	envelope := &jobreaderv1.Envelope{
		Kind:        jobreaderv1.KindForecast,
		History:     []float64{100},
		HorizonDays: 1,
	}

	err := f.worker.processJob(ctx, envelope)
	require.NoError(t, err)
	assert.Equal(t, "soybean", storedResult.Commodity)
}

func TestStartStop(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	f.mockJobReader.EXPECT().
		ReadMessage(gomock.Any()).
		Return(kafka.Message{}, nil, context.Canceled).
		AnyTimes()
	f.mockJobReader.EXPECT().Close().Return(nil)

	require.NoError(t, f.worker.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, f.worker.Stop(stopCtx))
}
