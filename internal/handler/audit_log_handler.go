package handler

import (
	"net/http"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	api.GET("/audit-logs", h.list, guards.Require(model.RoleAdmin)...)
}

// GET /audit-logs?actorUserId=&action=&resourceType=&resourceId=&from=&to=&limit=&offset=
func (h *AuditLogHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.AuditLogQuery{
		ActorUserID:  c.QueryParam("actorUserId"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resourceType"),
		ResourceID:   c.QueryParam("resourceId"),
		From:         c.QueryParam("from"),
		To:           c.QueryParam("to"),
		Limit:        c.QueryParam("limit"),
		Offset:       c.QueryParam("offset"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
