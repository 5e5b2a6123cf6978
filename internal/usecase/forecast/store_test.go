package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	forecastv1 "github.com/agrihedge/hedging-worker/internal/domain/forecast/v1"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	redis_mock "github.com/agrihedge/hedging-worker/pkg/redis/mock"
)

type storeFixture struct {
	ctrl      *gomock.Controller
	mockRedis *redis_mock.MockClient
	store     *Store
}

func setupStoreFixture(t *testing.T) *storeFixture {
	ctrl := gomock.NewController(t)
	mockRedis := redis_mock.NewMockClient(ctrl)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	return &storeFixture{
		ctrl:      ctrl,
		mockRedis: mockRedis,
		store:     NewStore(mockRedis, 6*time.Hour, log),
	}
}

func testResult() *forecastv1.Result {
	return &forecastv1.Result{
		Commodity: "soybean",
		Forecast: []forecastv1.Point{
			{Day: 1, Price: 4580, Lower: 4488.4, Upper: 4671.6},
		},
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_Store(t *testing.T) {
	f := setupStoreFixture(t)
	defer f.ctrl.Finish()

	result := testResult()
	expected, err := json.Marshal(result)
	require.NoError(t, err)

	f.mockRedis.EXPECT().
		Set(gomock.Any(), "forecast:soybean", expected, 6*time.Hour).
		Return(nil)

	assert.NoError(t, f.store.Store(context.Background(), result))
}

func TestStore_StoreError(t *testing.T) {
	f := setupStoreFixture(t)
	defer f.ctrl.Finish()

	f.mockRedis.EXPECT().
		Set(gomock.Any(), "forecast:soybean", gomock.Any(), 6*time.Hour).
		Return(fmt.Errorf("connection refused"))

	assert.Error(t, f.store.Store(context.Background(), testResult()))
}

func TestStore_Load(t *testing.T) {
	f := setupStoreFixture(t)
	defer f.ctrl.Finish()

	result := testResult()
	buf, err := json.Marshal(result)
	require.NoError(t, err)

	f.mockRedis.EXPECT().
		Get(gomock.Any(), "forecast:soybean").
		Return(string(buf), nil)

	loaded, err := f.store.Load(context.Background(), "soybean")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, result.Commodity, loaded.Commodity)
	require.Len(t, loaded.Forecast, 1)
	assert.Equal(t, result.Forecast[0], loaded.Forecast[0])
}

func TestStore_LoadMissing(t *testing.T) {
	f := setupStoreFixture(t)
	defer f.ctrl.Finish()

	f.mockRedis.EXPECT().
		Get(gomock.Any(), "forecast:soybean").
		Return("", nil)

	loaded, err := f.store.Load(context.Background(), "soybean")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestNewStore_DefaultTTL(t *testing.T) {
	f := setupStoreFixture(t)
	defer f.ctrl.Finish()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	store := NewStore(f.mockRedis, 0, log)
	assert.Equal(t, DefaultTTL, store.ttl)
}
