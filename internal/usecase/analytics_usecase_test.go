package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"
	"bakehub/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func analyticsOrder(id int64, total int64, at time.Time, items ...model.OrderItem) model.Order {
	return model.Order{ID: id, Total: decimal.NewFromInt(total), CreatedAt: at, Items: items}
}

func item(name string, qty int64) model.OrderItem {
	return model.OrderItem{Name: name, Qty: qty, Price: decimal.NewFromInt(10)}
}

func TestBuildOwnerAnalytics(t *testing.T) {
	day1 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 1, 2, 23, 30, 0, 0, time.UTC)

	orders := []model.Order{
		analyticsOrder(1, 100, day1, item("Bun", 2), item("Cake", 1)),
		analyticsOrder(2, 250, day2, item("Bun", 3), item("Tart", 4)),
		analyticsOrder(3, 50, day1.Add(time.Hour), item("Cake", 1), item("Scone", 1), item("Pie", 1), item("Donut", 1)),
	}

	out := usecase.BuildOwnerAnalytics(orders)

	assert.Equal(t, 3, out.TotalOrders)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(400)))

	require.Len(t, out.TopItems, 5)
	assert.Equal(t, usecase.TopItem{Name: "Bun", Qty: 5}, out.TopItems[0])
	assert.Equal(t, usecase.TopItem{Name: "Tart", Qty: 4}, out.TopItems[1])
	assert.Equal(t, usecase.TopItem{Name: "Cake", Qty: 2}, out.TopItems[2])
	// 同数は名前順
	assert.Equal(t, "Donut", out.TopItems[3].Name)
	assert.Equal(t, "Pie", out.TopItems[4].Name)

	require.Len(t, out.DailySales, 2)
	assert.Equal(t, "2025-01-01", out.DailySales[0].Date)
	assert.True(t, out.DailySales[0].Revenue.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "2025-01-02", out.DailySales[1].Date)

	require.Len(t, out.RecentOrders, 3)
	assert.Equal(t, int64(2), out.RecentOrders[0].ID)
	assert.Equal(t, int64(3), out.RecentOrders[1].ID)
	assert.Equal(t, int64(1), out.RecentOrders[2].ID)
}

func TestBuildOwnerAnalytics_RecentCappedAtFive(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var orders []model.Order
	for i := int64(1); i <= 7; i++ {
		orders = append(orders, analyticsOrder(i, 10, base.Add(time.Duration(i)*time.Minute)))
	}

	out := usecase.BuildOwnerAnalytics(orders)
	require.Len(t, out.RecentOrders, 5)
	assert.Equal(t, int64(7), out.RecentOrders[0].ID)
	assert.Equal(t, int64(3), out.RecentOrders[4].ID)
}

func TestAnalyticsUsecase_OwnerWithoutBakery_IsEmpty(t *testing.T) {
	bRepo := new(BakeryRepoMock)
	bRepo.On("FindByOwnerID", mock.Anything, int64(4)).Return(model.Bakery{}, repo.ErrNotFound)

	out, err := usecase.NewAnalyticsUsecase(new(OrderRepoMock), bRepo, zap.NewNop()).OwnerAnalytics(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalOrders)
	assert.True(t, out.TotalRevenue.IsZero())
	assert.NotNil(t, out.TopItems)
	assert.Empty(t, out.TopItems)
	assert.Empty(t, out.DailySales)
	assert.Empty(t, out.RecentOrders)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"totalRevenue":0`)
}

func TestAnalyticsUsecase_OwnerAnalytics(t *testing.T) {
	bRepo := new(BakeryRepoMock)
	oRepo := new(OrderRepoMock)
	bRepo.On("FindByOwnerID", mock.Anything, int64(4)).Return(model.Bakery{ID: 8, OwnerID: 4}, nil)
	oRepo.On("ListByBakeryID", mock.Anything, int64(8)).Return([]model.Order{
		analyticsOrder(1, 100, time.Now(), item("Bun", 1)),
	}, nil)

	out, err := usecase.NewAnalyticsUsecase(oRepo, bRepo, zap.NewNop()).OwnerAnalytics(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalOrders)
	oRepo.AssertExpectations(t)
}

func TestAnalyticsUsecase_AdminBakeryStats(t *testing.T) {
	bRepo := new(BakeryRepoMock)
	bRepo.On("CountByStatus", mock.Anything).Return(map[model.BakeryStatus]int64{
		model.BakeryStatusPending:  2,
		model.BakeryStatusApproved: 5,
	}, nil)

	s, err := usecase.NewAnalyticsUsecase(new(OrderRepoMock), bRepo, zap.NewNop()).AdminBakeryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usecase.BakeryStats{Pending: 2, Approved: 5, Rejected: 0, Total: 7}, s)
}
