package usecase

import (
	"context"
	"errors"
	"strings"

	"bakehub/internal/domain/model"
	"bakehub/internal/metrics"
	"bakehub/internal/notification"
	repo "bakehub/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	bakeries repo.BakeryRepository
	users    repo.UserRepository
	notifier Notifier
	clock    Clock
	log      *zap.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	bakeries repo.BakeryRepository,
	users repo.UserRepository,
	notifier Notifier,
	clock Clock,
	log *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		orders:   orders,
		bakeries: bakeries,
		users:    users,
		notifier: notifier,
		clock:    clock,
		log:      log,
	}
}

type PlaceOrderItem struct {
	ProductID *int64
	BakeryID  int64
	Name      string
	Price     decimal.Decimal
	Qty       int64
}

type PlaceOrderInput struct {
	Items         []PlaceOrderItem
	Total         decimal.Decimal
	Address       string
	Phone         string
	Note          string
	PaymentMethod string
	PaidAmount    *decimal.Decimal
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (model.Order, error) {
	if len(in.Items) == 0 {
		return model.Order{}, errBadRequest("Order must contain items")
	}
	if strings.TrimSpace(in.Address) == "" {
		return model.Order{}, errBadRequest("Address is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return model.Order{}, errBadRequest("Phone is required")
	}

	//1つのベーカリーの商品だけ
	bakeryID := in.Items[0].BakeryID
	for _, it := range in.Items {
		if it.BakeryID != bakeryID {
			return model.Order{}, errBadRequest("All items must belong to the same bakery")
		}
		if strings.TrimSpace(it.Name) == "" {
			return model.Order{}, errBadRequest("Item name is required")
		}
		if it.Qty <= 0 {
			return model.Order{}, errBadRequest("Item quantity must be at least 1")
		}
		if it.Price.IsNegative() {
			return model.Order{}, errBadRequest("Item price must not be negative")
		}
	}
	if in.Total.IsNegative() {
		return model.Order{}, errBadRequest("Total must not be negative")
	}

	method, ok := model.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return model.Order{}, errBadRequest("Invalid payment method. Allowed: cod, online")
	}

	bakery, err := u.bakeries.FindByID(ctx, bakeryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, errNotFound("Bakery not found")
	}
	if err != nil {
		u.log.Error("find bakery", zap.Error(err))
		return model.Order{}, errInternal
	}

	order := model.Order{
		CustomerID:    customerID,
		BakeryID:      bakeryID,
		Total:         in.Total,
		Address:       strings.TrimSpace(in.Address),
		Phone:         strings.TrimSpace(in.Phone),
		Note:          in.Note,
		Status:        model.OrderStatusConfirmed,
		PaymentMethod: method,
		PaymentStatus: model.PaymentStatusPending,
		PaidAmount:    decimal.Zero,
	}
	// cod以外は支払い済みで入る
	if method != model.PaymentMethodCOD {
		order.PaymentStatus = model.PaymentStatusPaid
		if in.PaidAmount != nil {
			order.PaidAmount = *in.PaidAmount
		}
	}

	//スナップショット
	order.Items = make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: it.ProductID,
			BakeryID:  it.BakeryID,
			Name:      strings.TrimSpace(it.Name),
			Price:     it.Price,
			Qty:       it.Qty,
		})
	}

	if err := u.orders.Create(ctx, &order); err != nil {
		u.log.Error("create order", zap.Error(err))
		return model.Order{}, errInternal
	}
	metrics.OrdersPlaced.Inc()

	u.notifyOrderPlaced(ctx, order, bakery)
	return order, nil
}

// 通知は失敗しても注文には影響させない
func (u *OrderUsecase) notifyOrderPlaced(ctx context.Context, order model.Order, bakery model.Bakery) {
	customer, err := u.users.FindByID(ctx, order.CustomerID)
	if err != nil {
		u.log.Warn("order notification: customer lookup failed", zap.Int64("order_id", order.ID), zap.Error(err))
		return
	}
	if customer.Email != "" {
		u.notifier.Notify(notification.OrderPlacedCustomer(customer.Email, customer.Name, bakery.Name, order))
	}

	owner, err := u.users.FindByID(ctx, bakery.OwnerID)
	if err != nil {
		u.log.Warn("order notification: owner lookup failed", zap.Int64("order_id", order.ID), zap.Error(err))
		return
	}
	if owner.Email != "" {
		u.notifier.Notify(notification.OrderPlacedOwner(owner.Email, customer.Name, order))
	}
}

// 顧客は自分の注文、オーナーは自分の店の注文、管理者は全部
func (u *OrderUsecase) GetOrder(ctx context.Context, actor Actor, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, errBadRequest("invalid order id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, errNotFound("Order not found")
	}
	if err != nil {
		u.log.Error("find order", zap.Error(err))
		return model.Order{}, errInternal
	}

	switch actor.Role {
	case model.RoleCustomer:
		if o.CustomerID != actor.ID {
			return model.Order{}, errForbidden("Unauthorized")
		}
	case model.RoleOwner:
		b, err := u.bakeries.FindByOwnerID(ctx, actor.ID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			u.log.Error("find bakery by owner", zap.Error(err))
			return model.Order{}, errInternal
		}
		if err != nil || b.ID != o.BakeryID {
			return model.Order{}, errForbidden("Unauthorized")
		}
	case model.RoleAdmin:
	default:
		return model.Order{}, errForbidden("Unauthorized")
	}

	o.Status = model.OrderStatus(strings.ToLower(string(o.Status)))
	return o, nil
}

// 新しい順
func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	items, err := u.orders.ListByCustomerID(ctx, customerID)
	if err != nil {
		u.log.Error("list customer orders", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

func (u *OrderUsecase) ListOwnerOrders(ctx context.Context, ownerID int64) ([]model.Order, error) {
	b, err := u.bakeries.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("Bakery not found")
	}
	if err != nil {
		u.log.Error("find bakery by owner", zap.Error(err))
		return nil, errInternal
	}

	items, err := u.orders.ListByBakeryID(ctx, b.ID)
	if err != nil {
		u.log.Error("list bakery orders", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

// オーナーは自分の店の注文だけ変更できる
func authorizeOrderChange(ctx context.Context, r repo.TxRepos, actor Actor, o model.Order) error {
	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleOwner:
		b, err := r.Bakeries().FindByOwnerID(ctx, actor.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return errForbidden("Unauthorized")
		}
		if err != nil {
			return err
		}
		if b.ID != o.BakeryID {
			return errForbidden("Unauthorized")
		}
		return nil
	case model.RoleCustomer:
		return errForbidden("Unauthorized")
	default:
		return errForbidden("Unauthorized")
	}
}

func (u *OrderUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, status string) (model.Order, error) {
	next, ok := model.ParseOrderStatus(status)
	if !ok {
		return model.Order{}, errBadRequest("Invalid status. Allowed: pending, confirmed, ready, completed")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("Order not found")
		}
		if err != nil {
			return err
		}
		if err := authorizeOrderChange(ctx, r, actor, o); err != nil {
			return err
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, next); err != nil {
			return err
		}
		if err := writeAudit(ctx, r.AuditLogs(), actor, model.AuditActionUpdateOrderStatus, model.AuditResourceOrder, o.ID,
			map[string]interface{}{"status": o.Status},
			map[string]interface{}{"status": next},
			u.clock,
		); err != nil {
			return err
		}

		o.Status = next
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, u.wrapErr("update order status", err)
	}
	return out, nil
}

// paidなら金額（未指定は合計）、pendingなら0。何度呼んでも同じ結果
func (u *OrderUsecase) UpdatePayment(ctx context.Context, actor Actor, orderID int64, status string, paidAmount *decimal.Decimal) (model.Order, error) {
	next, ok := model.ParsePaymentStatus(status)
	if !ok {
		return model.Order{}, errBadRequest("Invalid payment status. Allowed: paid, pending")
	}
	if paidAmount != nil && paidAmount.IsNegative() {
		return model.Order{}, errBadRequest("paidAmount must not be negative")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("Order not found")
		}
		if err != nil {
			return err
		}
		if err := authorizeOrderChange(ctx, r, actor, o); err != nil {
			return err
		}

		amount := decimal.Zero
		if next == model.PaymentStatusPaid {
			amount = o.Total
			if paidAmount != nil {
				amount = *paidAmount
			}
		}

		if err := r.Orders().UpdatePayment(ctx, o.ID, next, amount); err != nil {
			return err
		}
		if err := writeAudit(ctx, r.AuditLogs(), actor, model.AuditActionUpdatePaymentStatus, model.AuditResourceOrder, o.ID,
			map[string]interface{}{"paymentStatus": o.PaymentStatus, "paidAmount": o.PaidAmount},
			map[string]interface{}{"paymentStatus": next, "paidAmount": amount},
			u.clock,
		); err != nil {
			return err
		}

		o.PaymentStatus = next
		o.PaidAmount = amount
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, u.wrapErr("update payment status", err)
	}
	return out, nil
}

// HTTPErrorはそのまま、それ以外は500にしてログ
func (u *OrderUsecase) wrapErr(op string, err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("Order not found")
	}
	u.log.Error(op, zap.Error(err))
	return errInternal
}
