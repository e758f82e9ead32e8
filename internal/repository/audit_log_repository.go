package repository

import (
	"context"
	"time"

	"bakehub/internal/domain/model"
)

const (
	AuditLogDefaultLimit = 50
	AuditLogMaxLimit     = 200
)

// 監査ログの絞り込み条件。From/Toは両端を含む。
type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// limitは1..AuditLogMaxLimit、範囲外はAuditLogDefaultLimit。負のoffsetは0
func (f AuditLogFilter) Page() (limit, offset int) {
	limit = f.Limit
	if limit <= 0 || limit > AuditLogMaxLimit {
		limit = AuditLogDefaultLimit
	}
	offset = f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// 監査ログの保存・一覧取得の約束。
// Listは新しい順（created_at、同時刻はid）で、0件でも空スライスを返す。
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
