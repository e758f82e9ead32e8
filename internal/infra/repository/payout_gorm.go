package repository

import (
	"context"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"gorm.io/gorm"
)

type PayoutGormRepository struct {
	db *gorm.DB
}

func NewPayoutGormRepository(db *gorm.DB) *PayoutGormRepository {
	return &PayoutGormRepository{db: db}
}

// 精算行を作ってから注文IDのclaimを入れる。
// claimはassociation保存に任せず明示的にINSERTする（ON CONFLICT DO NOTHINGにされるため）
func (r *PayoutGormRepository) Create(ctx context.Context, p *model.Payout, orderIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Claims", "Bakery", "Owner", "Processor").Create(p).Error; err != nil {
			return err
		}

		claims := make([]model.PayoutOrder, 0, len(orderIDs))
		for _, id := range orderIDs {
			claims = append(claims, model.PayoutOrder{PayoutID: p.ID, OrderID: id})
		}
		if err := tx.Create(&claims).Error; err != nil {
			if isUniqueViolation(err) {
				return repo.ErrConflict
			}
			return err
		}

		p.OrderIDs = append([]int64(nil), orderIDs...)
		return nil
	})
}

func payoutPreloads(db *gorm.DB) *gorm.DB {
	return withOwnerSummary(db).
		Preload("Bakery", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "owner_id", "status")
		}).
		Preload("Processor", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		}).
		Preload("Claims", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_id asc")
		})
}

func (r *PayoutGormRepository) FindByID(ctx context.Context, id int64) (model.Payout, error) {
	var p model.Payout
	if err := payoutPreloads(r.db.WithContext(ctx)).First(&p, id).Error; err != nil {
		return model.Payout{}, translate(err)
	}
	if err := r.fillOrders(ctx, []*model.Payout{&p}); err != nil {
		return model.Payout{}, err
	}
	return p, nil
}

func (r *PayoutGormRepository) List(ctx context.Context, f repo.PayoutListFilter) ([]model.Payout, error) {
	q := payoutPreloads(r.db.WithContext(ctx))
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.BakeryID != nil {
		q = q.Where("bakery_id = ?", *f.BakeryID)
	}

	var items []model.Payout
	if err := q.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return []model.Payout{}, err
	}

	ptrs := make([]*model.Payout, 0, len(items))
	for i := range items {
		ptrs = append(ptrs, &items[i])
	}
	if err := r.fillOrders(ctx, ptrs); err != nil {
		return []model.Payout{}, err
	}
	return items, nil
}

// claimから注文IDと注文本体を埋める
func (r *PayoutGormRepository) fillOrders(ctx context.Context, payouts []*model.Payout) error {
	var ids []int64
	for _, p := range payouts {
		for _, c := range p.Claims {
			ids = append(ids, c.OrderID)
		}
	}

	byID := map[int64]model.Order{}
	if len(ids) > 0 {
		var orders []model.Order
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orders).Error; err != nil {
			return err
		}
		for _, o := range orders {
			byID[o.ID] = o
		}
	}

	for _, p := range payouts {
		p.OrderIDs = make([]int64, 0, len(p.Claims))
		p.Orders = make([]model.Order, 0, len(p.Claims))
		for _, c := range p.Claims {
			p.OrderIDs = append(p.OrderIDs, c.OrderID)
			if o, ok := byID[c.OrderID]; ok {
				p.Orders = append(p.Orders, o)
			}
		}
	}
	return nil
}

func (r *PayoutGormRepository) AnyClaimed(ctx context.Context, orderIDs []int64) (bool, error) {
	if len(orderIDs) == 0 {
		return false, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.PayoutOrder{}).
		Where("order_id IN ?", orderIDs).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// pendingのものだけ完了にする。同時に2回呼ばれても片方しか通らない
func (r *PayoutGormRepository) MarkProcessed(ctx context.Context, id int64, upd repo.PayoutProcessUpdate) error {
	processedAt := upd.ProcessedAt
	processedBy := upd.ProcessedBy
	res := r.db.WithContext(ctx).
		Model(&model.Payout{}).
		Where("id = ? AND status = ?", id, model.PayoutStatusPending).
		Select("status", "processed_at", "processed_by", "payment_method", "payment_details", "notes").
		Updates(&model.Payout{
			Status:         model.PayoutStatusCompleted,
			ProcessedAt:    &processedAt,
			ProcessedBy:    &processedBy,
			PaymentMethod:  upd.PaymentMethod,
			PaymentDetails: upd.PaymentDetails,
			Notes:          upd.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// 0件なら、無いのか処理済みなのかを見分ける
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Payout{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return repo.ErrConflict
}
