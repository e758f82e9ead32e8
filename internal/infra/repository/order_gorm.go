package repository

import (
	"context"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 顧客は名前とメールだけ
func withCustomerSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email", "phone")
	})
}

// 明細ごと保存する
func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Bakery").
		Where("customer_id = ?", customerID).
		Order("created_at desc").Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListByBakeryID(ctx context.Context, bakeryID int64) ([]model.Order, error) {
	var items []model.Order
	err := withCustomerSummary(r.db.WithContext(ctx)).
		Preload("Items").
		Where("bakery_id = ?", bakeryID).
		Order("created_at desc").Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) UpdatePayment(ctx context.Context, orderID int64, status model.PaymentStatus, paidAmount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status": status,
			"paid_amount":    paidAmount,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func eligibleScope(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? AND payment_status = ?", model.OrderStatusCompleted, model.PaymentStatusPaid)
}

// 精算候補の一覧。hasPayoutはpayout_ordersを別クエリで引いて付ける
func (r *OrderGormRepository) ListEligible(ctx context.Context, bakeryID *int64) ([]repo.EligibleOrder, error) {
	q := withCustomerSummary(r.db.WithContext(ctx)).
		Preload("Bakery").
		Preload("Items").
		Scopes(eligibleScope)
	if bakeryID != nil {
		q = q.Where("bakery_id = ?", *bakeryID)
	}

	var orders []model.Order
	if err := q.Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return []repo.EligibleOrder{}, err
	}
	if len(orders) == 0 {
		return []repo.EligibleOrder{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	var claimed []int64
	if err := r.db.WithContext(ctx).
		Model(&model.PayoutOrder{}).
		Where("order_id IN ?", ids).
		Pluck("order_id", &claimed).Error; err != nil {
		return []repo.EligibleOrder{}, err
	}
	inPayout := make(map[int64]struct{}, len(claimed))
	for _, id := range claimed {
		inPayout[id] = struct{}{}
	}

	out := make([]repo.EligibleOrder, 0, len(orders))
	for _, o := range orders {
		_, has := inPayout[o.ID]
		out = append(out, repo.EligibleOrder{Order: o, HasPayout: has})
	}
	return out, nil
}

func (r *OrderGormRepository) FindEligibleByIDs(ctx context.Context, bakeryID int64, orderIDs []int64) ([]model.Order, error) {
	if len(orderIDs) == 0 {
		return []model.Order{}, nil
	}
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Scopes(eligibleScope).
		Where("bakery_id = ? AND id IN ?", bakeryID, orderIDs).
		Order("id asc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}
