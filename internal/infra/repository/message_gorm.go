package repository

import (
	"context"
	"time"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"gorm.io/gorm"
)

type messageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) repo.MessageRepository {
	return &messageGormRepository{db: db}
}

func (r *messageGormRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageGormRepository) FindByID(ctx context.Context, id int64) (model.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return model.Message{}, translate(err)
	}
	return m, nil
}

// 新しい順
func (r *messageGormRepository) List(ctx context.Context) ([]model.Message, error) {
	var items []model.Message
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return []model.Message{}, err
	}
	return items, nil
}

func (r *messageGormRepository) UpdateStatus(ctx context.Context, id int64, status model.MessageStatus) (model.Message, error) {
	return r.update(ctx, id, map[string]interface{}{"status": status})
}

func (r *messageGormRepository) SaveReply(ctx context.Context, id int64, reply string, at time.Time) (model.Message, error) {
	return r.update(ctx, id, map[string]interface{}{
		"admin_reply": reply,
		"reply_at":    at,
		"status":      model.MessageStatusReplied,
	})
}

// 更新して最新の行を返す
func (r *messageGormRepository) update(ctx context.Context, id int64, cols map[string]interface{}) (model.Message, error) {
	res := r.db.WithContext(ctx).Model(&model.Message{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return model.Message{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Message{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}
