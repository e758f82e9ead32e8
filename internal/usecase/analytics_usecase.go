package usecase

import (
	"context"
	"errors"
	"sort"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	topItemsLimit     = 5
	recentOrdersLimit = 5
)

type TopItem struct {
	Name string `json:"name"`
	Qty  int64  `json:"qty"`
}

type DailySales struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

type OwnerAnalytics struct {
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TopItems     []TopItem       `json:"topItems"`
	DailySales   []DailySales    `json:"dailySales"`
	RecentOrders []model.Order   `json:"recentOrders"`
}

type BakeryStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

type AnalyticsUsecase struct {
	orders   repo.OrderRepository
	bakeries repo.BakeryRepository
	log      *zap.Logger
}

func NewAnalyticsUsecase(orders repo.OrderRepository, bakeries repo.BakeryRepository, log *zap.Logger) *AnalyticsUsecase {
	return &AnalyticsUsecase{orders: orders, bakeries: bakeries, log: log}
}

// ベーカリーが無いオーナーは空の集計
func (u *AnalyticsUsecase) OwnerAnalytics(ctx context.Context, ownerID int64) (OwnerAnalytics, error) {
	b, err := u.bakeries.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return BuildOwnerAnalytics(nil), nil
	}
	if err != nil {
		u.log.Error("find bakery by owner", zap.Error(err))
		return OwnerAnalytics{}, errInternal
	}

	orders, err := u.orders.ListByBakeryID(ctx, b.ID)
	if err != nil {
		u.log.Error("list bakery orders", zap.Error(err))
		return OwnerAnalytics{}, errInternal
	}
	return BuildOwnerAnalytics(orders), nil
}

// 注文一覧から集計する。入力の並び順には依存しない
func BuildOwnerAnalytics(orders []model.Order) OwnerAnalytics {
	out := OwnerAnalytics{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
		TopItems:     []TopItem{},
		DailySales:   []DailySales{},
		RecentOrders: []model.Order{},
	}
	if len(orders) == 0 {
		return out
	}

	qtyByName := map[string]int64{}
	revenueByDay := map[string]decimal.Decimal{}
	for _, o := range orders {
		out.TotalRevenue = out.TotalRevenue.Add(o.Total)
		for _, it := range o.Items {
			qtyByName[it.Name] += it.Qty
		}
		day := o.CreatedAt.UTC().Format("2006-01-02")
		revenueByDay[day] = revenueByDay[day].Add(o.Total)
	}

	for name, qty := range qtyByName {
		out.TopItems = append(out.TopItems, TopItem{Name: name, Qty: qty})
	}
	// 数量の多い順、同数なら名前順
	sort.Slice(out.TopItems, func(i, j int) bool {
		if out.TopItems[i].Qty != out.TopItems[j].Qty {
			return out.TopItems[i].Qty > out.TopItems[j].Qty
		}
		return out.TopItems[i].Name < out.TopItems[j].Name
	})
	if len(out.TopItems) > topItemsLimit {
		out.TopItems = out.TopItems[:topItemsLimit]
	}

	for day, rev := range revenueByDay {
		out.DailySales = append(out.DailySales, DailySales{Date: day, Revenue: rev})
	}
	sort.Slice(out.DailySales, func(i, j int) bool {
		return out.DailySales[i].Date < out.DailySales[j].Date
	})

	recent := make([]model.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].CreatedAt.After(recent[j].CreatedAt)
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	out.RecentOrders = recent

	return out
}

func (u *AnalyticsUsecase) AdminBakeryStats(ctx context.Context) (BakeryStats, error) {
	counts, err := u.bakeries.CountByStatus(ctx)
	if err != nil {
		u.log.Error("count bakeries", zap.Error(err))
		return BakeryStats{}, errInternal
	}
	s := BakeryStats{
		Pending:  counts[model.BakeryStatusPending],
		Approved: counts[model.BakeryStatusApproved],
		Rejected: counts[model.BakeryStatusRejected],
	}
	s.Total = s.Pending + s.Approved + s.Rejected
	return s, nil
}
