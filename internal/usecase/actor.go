package usecase

import (
	"context"
	"encoding/json"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"
)

// 認証済みの呼び出し元
type Actor struct {
	ID   int64
	Role model.Role
}

// 監査ログを1行書く。before/afterはJSONにする
func writeAudit(ctx context.Context, logs repo.AuditLogRepository, actor Actor, action model.AuditAction, resType model.AuditResourceType, resID int64, before, after interface{}, clock Clock) error {
	b, err := json.Marshal(before)
	if err != nil {
		return err
	}
	a, err := json.Marshal(after)
	if err != nil {
		return err
	}
	return logs.Create(ctx, model.AuditLog{
		ActorUserID:  actor.ID,
		Action:       action,
		ResourceType: resType,
		ResourceID:   resID,
		BeforeJSON:   string(b),
		AfterJSON:    string(a),
		CreatedAt:    clock.Now(),
	})
}
