package usecase_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"bakehub/internal/config"
	"bakehub/internal/domain/model"
	"bakehub/internal/infra/db"
	infraRepo "bakehub/internal/infra/repository"
	"bakehub/internal/notification"
	repo "bakehub/internal/repository"
	"bakehub/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// 積まれた通知を覚えておく
type captureNotifier struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (n *captureNotifier) Notify(msg notification.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return true
}

func (n *captureNotifier) sent() []notification.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Message(nil), n.msgs...)
}

// テストごとに一時ファイルのSQLite
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Connect(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "bakehub_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	tx       repo.TransactionManager
	users    repo.UserRepository
	bakeries *infraRepo.BakeryGormRepository
	orders   *infraRepo.OrderGormRepository
	payouts  *infraRepo.PayoutGormRepository
	notifier *captureNotifier
	clock    fixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := newTestDB(t)
	return &fixture{
		ctx:      context.Background(),
		db:       gdb,
		tx:       infraRepo.NewTxManagerGorm(gdb),
		users:    infraRepo.NewUserGormRepository(gdb),
		bakeries: infraRepo.NewBakeryGormRepository(gdb),
		orders:   infraRepo.NewOrderGormRepository(gdb),
		payouts:  infraRepo.NewPayoutGormRepository(gdb),
		notifier: &captureNotifier{},
		clock:    fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func (f *fixture) orderUC() *usecase.OrderUsecase {
	return usecase.NewOrderUsecase(f.tx, f.orders, f.bakeries, f.users, f.notifier, f.clock, zap.NewNop())
}

func (f *fixture) payoutUC() *usecase.PayoutUsecase {
	return usecase.NewPayoutUsecase(f.tx, f.orders, f.bakeries, f.payouts, f.clock, zap.NewNop())
}

func (f *fixture) user(t *testing.T, role model.Role, email string) *model.User {
	t.Helper()
	u := &model.User{Name: string(role) + " " + email, Email: email, PasswordHash: "x", Role: role, Phone: "9876543210"}
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

func (f *fixture) bakery(t *testing.T, owner *model.User) model.Bakery {
	t.Helper()
	b := model.Bakery{OwnerID: owner.ID, Name: "Bakery of " + owner.Email, Status: model.BakeryStatusApproved}
	require.NoError(t, f.bakeries.Create(f.ctx, &b))
	return b
}

// 精算対象になる注文を直接作る
func (f *fixture) completedPaidOrder(t *testing.T, customerID, bakeryID int64, total int64) model.Order {
	t.Helper()
	amount := decimal.NewFromInt(total)
	o := model.Order{
		CustomerID:    customerID,
		BakeryID:      bakeryID,
		Total:         amount,
		Address:       "12 Baker St",
		Phone:         "9876543210",
		Status:        model.OrderStatusCompleted,
		PaymentMethod: model.PaymentMethodOnline,
		PaymentStatus: model.PaymentStatusPaid,
		PaidAmount:    amount,
		Items: []model.OrderItem{
			{BakeryID: bakeryID, Name: "Loaf", Price: amount, Qty: 1},
		},
	}
	require.NoError(t, f.orders.Create(f.ctx, &o))
	return o
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func requireHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, status, he.Status)
	if msg != "" {
		require.Equal(t, msg, he.Message)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
