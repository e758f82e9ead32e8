package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"bakehub/internal/config"
	"bakehub/internal/domain/model"
	"bakehub/internal/infra/db"
	infraRepo "bakehub/internal/infra/repository"
	repo "bakehub/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type seed struct {
	ctx      context.Context
	db       *gorm.DB
	customer *model.User
	owner    *model.User
	bakery   model.Bakery
}

func newSeed(t *testing.T) *seed {
	t.Helper()

	gdb, err := db.Connect(config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "repo.db")})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s := &seed{ctx: context.Background(), db: gdb}
	users := infraRepo.NewUserGormRepository(gdb)
	s.customer = &model.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: model.RoleCustomer, Phone: "1"}
	s.owner = &model.User{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x", Role: model.RoleOwner, Phone: "2"}
	require.NoError(t, users.Create(s.ctx, s.customer))
	require.NoError(t, users.Create(s.ctx, s.owner))

	s.bakery = model.Bakery{OwnerID: s.owner.ID, Name: "Ravi's", Status: model.BakeryStatusApproved}
	require.NoError(t, infraRepo.NewBakeryGormRepository(gdb).Create(s.ctx, &s.bakery))
	return s
}

func (s *seed) order(t *testing.T, status model.OrderStatus, pay model.PaymentStatus, total int64) model.Order {
	t.Helper()
	amount := decimal.NewFromInt(total)
	o := model.Order{
		CustomerID:    s.customer.ID,
		BakeryID:      s.bakery.ID,
		Total:         amount,
		Address:       "12 Baker St",
		Phone:         "1",
		Status:        status,
		PaymentMethod: model.PaymentMethodCOD,
		PaymentStatus: pay,
		Items:         []model.OrderItem{{BakeryID: s.bakery.ID, Name: "Loaf", Price: amount, Qty: 1}},
	}
	require.NoError(t, infraRepo.NewOrderGormRepository(s.db).Create(s.ctx, &o))
	return o
}

func (s *seed) payout(total int64) *model.Payout {
	return &model.Payout{
		BakeryID:      s.bakery.ID,
		OwnerID:       s.owner.ID,
		TotalAmount:   decimal.NewFromInt(total),
		PlatformFee:   decimal.Zero,
		PayoutAmount:  decimal.NewFromInt(total),
		Status:        model.PayoutStatusPending,
		PaymentMethod: model.PayoutMethodUPI,
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	s := newSeed(t)
	users := infraRepo.NewUserGormRepository(s.db)

	err := users.Create(s.ctx, &model.User{Name: "x", Email: "asha@example.com", PasswordHash: "x", Role: model.RoleCustomer})
	assert.ErrorIs(t, err, repo.ErrConflict)

	_, err = users.FindByEmail(s.ctx, "ghost@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestPayoutRepository_ClaimIsUnique(t *testing.T) {
	s := newSeed(t)
	payouts := infraRepo.NewPayoutGormRepository(s.db)
	o1 := s.order(t, model.OrderStatusCompleted, model.PaymentStatusPaid, 100)
	o2 := s.order(t, model.OrderStatusCompleted, model.PaymentStatusPaid, 200)

	first := s.payout(100)
	require.NoError(t, payouts.Create(s.ctx, first, []int64{o1.ID}))
	assert.Equal(t, []int64{o1.ID}, first.OrderIDs)

	second := s.payout(300)
	err := payouts.Create(s.ctx, second, []int64{o2.ID, o1.ID})
	assert.ErrorIs(t, err, repo.ErrConflict)

	// 失敗した方は行ごと残らない
	var n int64
	require.NoError(t, s.db.Model(&model.Payout{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	claimed, err := payouts.AnyClaimed(s.ctx, []int64{o2.ID})
	require.NoError(t, err)
	assert.False(t, claimed)

	got, err := payouts.FindByID(s.ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{o1.ID}, got.OrderIDs)
	require.Len(t, got.Orders, 1)
	assert.True(t, got.Orders[0].Total.Equal(decimal.NewFromInt(100)))
}

func TestPayoutRepository_MarkProcessed(t *testing.T) {
	s := newSeed(t)
	payouts := infraRepo.NewPayoutGormRepository(s.db)
	o := s.order(t, model.OrderStatusCompleted, model.PaymentStatusPaid, 100)
	p := s.payout(100)
	require.NoError(t, payouts.Create(s.ctx, p, []int64{o.ID}))

	upd := repo.PayoutProcessUpdate{
		ProcessedBy:    s.owner.ID,
		ProcessedAt:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		PaymentMethod:  model.PayoutMethodBankTransfer,
		PaymentDetails: model.PaymentDetails{AccountNumber: "0001", IFSCCode: "BANK0001"},
		Notes:          "march",
	}
	require.NoError(t, payouts.MarkProcessed(s.ctx, p.ID, upd))
	assert.ErrorIs(t, payouts.MarkProcessed(s.ctx, p.ID, upd), repo.ErrConflict)
	assert.ErrorIs(t, payouts.MarkProcessed(s.ctx, p.ID+100, upd), repo.ErrNotFound)

	got, err := payouts.FindByID(s.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PayoutStatusCompleted, got.Status)
	assert.Equal(t, model.PayoutMethodBankTransfer, got.PaymentMethod)
	assert.Equal(t, "0001", got.PaymentDetails.AccountNumber)
	require.NotNil(t, got.ProcessedBy)
	assert.Equal(t, s.owner.ID, *got.ProcessedBy)
}

func TestOrderRepository_ListEligible(t *testing.T) {
	s := newSeed(t)
	orders := infraRepo.NewOrderGormRepository(s.db)
	payouts := infraRepo.NewPayoutGormRepository(s.db)

	done := s.order(t, model.OrderStatusCompleted, model.PaymentStatusPaid, 100)
	claimed := s.order(t, model.OrderStatusCompleted, model.PaymentStatusPaid, 200)
	s.order(t, model.OrderStatusCompleted, model.PaymentStatusPending, 300)
	s.order(t, model.OrderStatusReady, model.PaymentStatusPaid, 400)
	require.NoError(t, payouts.Create(s.ctx, s.payout(200), []int64{claimed.ID}))

	list, err := orders.ListEligible(s.ctx, &s.bakery.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[int64]bool{}
	for _, e := range list {
		byID[e.ID] = e.HasPayout
	}
	assert.Equal(t, map[int64]bool{done.ID: false, claimed.ID: true}, byID)

	other := s.bakery.ID + 99
	list, err = orders.ListEligible(s.ctx, &other)
	require.NoError(t, err)
	assert.Empty(t, list)

	found, err := orders.FindEligibleByIDs(s.ctx, s.bakery.ID, []int64{done.ID, claimed.ID, done.ID + 1000})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestProductRepository_ListByBakery(t *testing.T) {
	s := newSeed(t)
	products := infraRepo.NewProductGormRepository(s.db)

	mk := func(name string, visible, soldOut bool, cat model.ProductCategory) {
		_, err := products.Create(s.ctx, model.Product{
			BakeryID: s.bakery.ID, Name: name, Price: decimal.NewFromInt(50),
			IsVisible: visible, IsSoldOut: soldOut, Category: cat,
		})
		require.NoError(t, err)
	}
	mk("Croissant", true, false, model.CategoryPastries)
	mk("Hidden cake", false, false, model.CategoryCakes)
	mk("Sold out loaf", true, true, model.CategoryBreads)
	mk("Baguette", true, false, model.CategoryBreads)

	all, err := products.ListByBakery(s.ctx, repo.ProductListQuery{BakeryID: s.bakery.ID})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	avail, err := products.ListByBakery(s.ctx, repo.ProductListQuery{BakeryID: s.bakery.ID, OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, avail, 2)
	for _, p := range avail {
		assert.True(t, p.Available(), p.Name)
	}

	breads := model.CategoryBreads
	got, err := products.ListByBakery(s.ctx, repo.ProductListQuery{BakeryID: s.bakery.ID, OnlyAvailable: true, Category: &breads})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Baguette", got[0].Name)

	assert.ErrorIs(t, products.Delete(s.ctx, 9999), repo.ErrNotFound)
}
