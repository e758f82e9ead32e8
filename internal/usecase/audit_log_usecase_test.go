package usecase_test

import (
	"net/http"
	"testing"
	"time"

	"bakehub/internal/domain/model"
	infraRepo "bakehub/internal/infra/repository"
	"bakehub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuditLogUsecase_List_Filters(t *testing.T) {
	f := newFixture(t)
	logs := infraRepo.NewAuditLogGormRepository(f.db)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, logs.Create(f.ctx, model.AuditLog{ActorUserID: 7, Action: model.AuditActionRejectBakery, ResourceType: model.AuditResourceBakery, ResourceID: 11, CreatedAt: base}))
	require.NoError(t, logs.Create(f.ctx, model.AuditLog{ActorUserID: 7, Action: model.AuditActionCreatePayout, ResourceType: model.AuditResourcePayout, ResourceID: 12, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, logs.Create(f.ctx, model.AuditLog{ActorUserID: 8, Action: model.AuditActionCreatePayout, ResourceType: model.AuditResourcePayout, ResourceID: 13, CreatedAt: base.Add(2 * time.Hour)}))

	uc := usecase.NewAuditLogUsecase(logs, zap.NewNop())

	t.Run("action and resource type are case-insensitive", func(t *testing.T) {
		got, err := uc.List(f.ctx, usecase.AuditLogQuery{Action: "create_payout", ResourceType: "PAYOUT"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(13), got[0].ResourceID)
		assert.Equal(t, int64(12), got[1].ResourceID)
	})

	t.Run("actor and range", func(t *testing.T) {
		got, err := uc.List(f.ctx, usecase.AuditLogQuery{
			ActorUserID: "7",
			From:        "2025-03-01T09:30:00Z",
			To:          "2025-03-01T15:30:00+05:30",
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(12), got[0].ResourceID)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := uc.List(f.ctx, usecase.AuditLogQuery{Limit: "1", Offset: "1"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(12), got[0].ResourceID)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		got, err := uc.List(f.ctx, usecase.AuditLogQuery{ResourceID: "999"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestAuditLogUsecase_List_BadQuery(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewAuditLogUsecase(infraRepo.NewAuditLogGormRepository(f.db), zap.NewNop())

	cases := []struct {
		q   usecase.AuditLogQuery
		msg string
	}{
		{usecase.AuditLogQuery{ActorUserID: "abc"}, "invalid actorUserId"},
		{usecase.AuditLogQuery{ActorUserID: "0"}, "invalid actorUserId"},
		{usecase.AuditLogQuery{ResourceID: "-3"}, "invalid resourceId"},
		{usecase.AuditLogQuery{From: "2025-03-01"}, "invalid from"},
		{usecase.AuditLogQuery{To: "yesterday"}, "invalid to"},
		{usecase.AuditLogQuery{Limit: "ten"}, "invalid limit"},
		{usecase.AuditLogQuery{Offset: "-1"}, "invalid offset"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			_, err := uc.List(f.ctx, tc.q)
			requireHTTPError(t, err, http.StatusBadRequest, tc.msg)
		})
	}
}
