package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"go.uber.org/zap"
)

type AuditLogUsecase struct {
	logs repo.AuditLogRepository
	log  *zap.Logger
}

func NewAuditLogUsecase(logs repo.AuditLogRepository, log *zap.Logger) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs, log: log}
}

// クエリ文字列そのまま。空は条件なし
type AuditLogQuery struct {
	ActorUserID  string
	Action       string
	ResourceType string
	ResourceID   string
	From         string
	To           string
	Limit        string
	Offset       string
}

// 管理者向け監査ログ一覧（新しい順）
func (u *AuditLogUsecase) List(ctx context.Context, q AuditLogQuery) ([]model.AuditLog, error) {
	var f repo.AuditLogFilter

	if id, ok, err := parseOptionalID(q.ActorUserID); err != nil {
		return nil, errBadRequest("invalid actorUserId")
	} else if ok {
		f.ActorUserID = &id
	}
	if id, ok, err := parseOptionalID(q.ResourceID); err != nil {
		return nil, errBadRequest("invalid resourceId")
	} else if ok {
		f.ResourceID = &id
	}
	if s := strings.TrimSpace(q.Action); s != "" {
		a := model.AuditAction(strings.ToUpper(s))
		f.Action = &a
	}
	if s := strings.TrimSpace(q.ResourceType); s != "" {
		rt := model.AuditResourceType(strings.ToLower(s))
		f.ResourceType = &rt
	}

	if strings.TrimSpace(q.From) != "" {
		t, ok := parseDateTimeRFC3339(q.From)
		if !ok {
			return nil, errBadRequest("invalid from")
		}
		f.CreatedFrom = t
	}
	if strings.TrimSpace(q.To) != "" {
		t, ok := parseDateTimeRFC3339(q.To)
		if !ok {
			return nil, errBadRequest("invalid to")
		}
		f.CreatedTo = t
	}

	// limit/offsetの範囲はAuditLogFilter.Pageで丸める
	if s := strings.TrimSpace(q.Limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errBadRequest("invalid limit")
		}
		f.Limit = n
	}
	if s := strings.TrimSpace(q.Offset); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, errBadRequest("invalid offset")
		}
		f.Offset = n
	}

	items, err := u.logs.List(ctx, f)
	if err != nil {
		u.log.Error("list audit logs", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

func parseOptionalID(s string) (int64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, errBadRequest("invalid id")
	}
	return id, true, nil
}

func parseDateTimeRFC3339(s string) (*time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return nil, false
	}
	return &t, true
}
