package repository

import (
	"context"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"gorm.io/gorm"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// 状態変更と同じtxで書かれる前提。失敗はそのまま返して呼び出し側でrollbackさせる
// 時刻はUTCで保存する（sqliteは文字列比較になるため）
func (r *AuditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	entry.CreatedAt = entry.CreatedAt.UTC()
	return r.db.WithContext(ctx).Create(&entry).Error
}

func auditLogScope(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.ActorUserID != nil {
			q = q.Where("actor_user_id = ?", *f.ActorUserID)
		}
		if f.Action != nil {
			q = q.Where("action = ?", *f.Action)
		}
		if f.ResourceType != nil {
			q = q.Where("resource_type = ?", *f.ResourceType)
		}
		if f.ResourceID != nil {
			q = q.Where("resource_id = ?", *f.ResourceID)
		}
		if f.CreatedFrom != nil {
			q = q.Where("created_at >= ?", f.CreatedFrom.UTC())
		}
		if f.CreatedTo != nil {
			q = q.Where("created_at <= ?", f.CreatedTo.UTC())
		}
		return q
	}
}

func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	limit, offset := f.Page()

	entries := make([]model.AuditLog, 0, limit)
	err := r.db.WithContext(ctx).
		Scopes(auditLogScope(f)).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
