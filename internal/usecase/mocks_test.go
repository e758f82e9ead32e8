package usecase_test

import (
	"context"
	"io"
	"time"

	"bakehub/internal/domain/model"
	"bakehub/internal/notification"
	repo "bakehub/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListByBakery(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	panic("not used")
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.ProductRepository = (*ProductRepoMock)(nil)

type BakeryRepoMock struct{ mock.Mock }

func (m *BakeryRepoMock) Create(ctx context.Context, b *model.Bakery) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BakeryRepoMock) FindByID(ctx context.Context, id int64) (model.Bakery, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Bakery)
	return b, args.Error(1)
}

func (m *BakeryRepoMock) FindByOwnerID(ctx context.Context, ownerID int64) (model.Bakery, error) {
	args := m.Called(ctx, ownerID)
	b, _ := args.Get(0).(model.Bakery)
	return b, args.Error(1)
}

func (m *BakeryRepoMock) ListAll(ctx context.Context) ([]model.Bakery, error) {
	panic("not used")
}

func (m *BakeryRepoMock) ListByStatus(ctx context.Context, status model.BakeryStatus) ([]model.Bakery, error) {
	panic("not used")
}

func (m *BakeryRepoMock) UpdateStatus(ctx context.Context, id int64, status model.BakeryStatus) error {
	panic("not used")
}

func (m *BakeryRepoMock) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *BakeryRepoMock) CountByStatus(ctx context.Context) (map[model.BakeryStatus]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[model.BakeryStatus]int64)
	return counts, args.Error(1)
}

var _ repo.BakeryRepository = (*BakeryRepoMock)(nil)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error { panic("not used") }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	panic("not used")
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error) {
	panic("not used")
}

func (m *OrderRepoMock) ListByBakeryID(ctx context.Context, bakeryID int64) ([]model.Order, error) {
	args := m.Called(ctx, bakeryID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	panic("not used")
}

func (m *OrderRepoMock) UpdatePayment(ctx context.Context, orderID int64, status model.PaymentStatus, paidAmount decimal.Decimal) error {
	panic("not used")
}

func (m *OrderRepoMock) ListEligible(ctx context.Context, bakeryID *int64) ([]repo.EligibleOrder, error) {
	panic("not used")
}

func (m *OrderRepoMock) FindEligibleByIDs(ctx context.Context, bakeryID int64, orderIDs []int64) ([]model.Order, error) {
	panic("not used")
}

var _ repo.OrderRepository = (*OrderRepoMock)(nil)

type MessageRepoMock struct{ mock.Mock }

func (m *MessageRepoMock) Create(ctx context.Context, msg *model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepoMock) FindByID(ctx context.Context, id int64) (model.Message, error) {
	args := m.Called(ctx, id)
	msg, _ := args.Get(0).(model.Message)
	return msg, args.Error(1)
}

func (m *MessageRepoMock) List(ctx context.Context) ([]model.Message, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Message)
	return items, args.Error(1)
}

func (m *MessageRepoMock) UpdateStatus(ctx context.Context, id int64, status model.MessageStatus) (model.Message, error) {
	args := m.Called(ctx, id, status)
	msg, _ := args.Get(0).(model.Message)
	return msg, args.Error(1)
}

func (m *MessageRepoMock) SaveReply(ctx context.Context, id int64, reply string, at time.Time) (model.Message, error) {
	args := m.Called(ctx, id, reply, at)
	msg, _ := args.Get(0).(model.Message)
	return msg, args.Error(1)
}

var _ repo.MessageRepository = (*MessageRepoMock)(nil)

type MailerMock struct{ mock.Mock }

func (m *MailerMock) Send(ctx context.Context, msg notification.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type FileStoreMock struct{ mock.Mock }

func (m *FileStoreMock) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}
