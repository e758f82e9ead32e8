package handler

import (
	"net/http"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	uc *usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/analytics")

	g.GET("/owner", h.owner, guards.Require(model.RoleOwner)...)
	g.GET("/admin/bakeries", h.bakeryStats, guards.Require(model.RoleAdmin)...)
}

func (h *AnalyticsHandler) owner(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.OwnerAnalytics(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) bakeryStats(c echo.Context) error {
	out, err := h.uc.AdminBakeryStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
