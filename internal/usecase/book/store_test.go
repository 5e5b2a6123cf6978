package book

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookv1 "github.com/agrihedge/hedging-worker/internal/domain/book/v1"
	matchingv1 "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	redis_mock "github.com/agrihedge/hedging-worker/pkg/redis/mock"
)

type testFixture struct {
	ctrl      *gomock.Controller
	mockRedis *redis_mock.MockClient
	store     *Store
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)
	mockRedis := redis_mock.NewMockClient(ctrl)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	return &testFixture{
		ctrl:      ctrl,
		mockRedis: mockRedis,
		store:     NewStore(mockRedis, log),
	}
}

func testBook() *bookv1.ResidualBook {
	return &bookv1.ResidualBook{
		Commodity: "soybean",
		BatchID:   "01JWP3V5YJ3Z2X9Q8R7T6S5D4C",
		Orders: []matchingv1.Order{
			{
				ID:          "s2",
				Side:        matchingv1.SideSell,
				Price:       4580,
				Quantity:    5,
				SubmittedAt: time.Date(2025, 6, 1, 9, 0, 2, 0, time.UTC),
			},
		},
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_Store(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	book := testBook()
	expected, err := json.Marshal(book)
	require.NoError(t, err)

	f.mockRedis.EXPECT().
		Set(gomock.Any(), "book:soybean", expected, time.Duration(0)).
		Return(nil)

	assert.NoError(t, f.store.Store(context.Background(), book))
}

func TestStore_StoreError(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	f.mockRedis.EXPECT().
		Set(gomock.Any(), "book:soybean", gomock.Any(), time.Duration(0)).
		Return(fmt.Errorf("connection refused"))

	err := f.store.Store(context.Background(), testBook())
	assert.Error(t, err)
}

func TestStore_Load(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	book := testBook()
	buf, err := json.Marshal(book)
	require.NoError(t, err)

	f.mockRedis.EXPECT().
		Get(gomock.Any(), "book:soybean").
		Return(string(buf), nil)

	loaded, err := f.store.Load(context.Background(), "soybean")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, book.Commodity, loaded.Commodity)
	assert.Equal(t, book.BatchID, loaded.BatchID)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, "s2", loaded.Orders[0].ID)
}

func TestStore_LoadMissing(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	f.mockRedis.EXPECT().
		Get(gomock.Any(), "book:soybean").
		Return("", nil)

	loaded, err := f.store.Load(context.Background(), "soybean")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadCorrupt(t *testing.T) {
	f := setupTestFixture(t)
	defer f.ctrl.Finish()

	f.mockRedis.EXPECT().
		Get(gomock.Any(), "book:soybean").
		Return("{not json", nil)

	loaded, err := f.store.Load(context.Background(), "soybean")
	assert.Error(t, err)
	assert.Nil(t, loaded)
}
