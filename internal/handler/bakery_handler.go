package handler

import (
	"context"
	"net/http"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BakeryHandler struct {
	uc *usecase.BakeryUsecase
}

func NewBakeryHandler(uc *usecase.BakeryUsecase) *BakeryHandler {
	return &BakeryHandler{uc: uc}
}

type ImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

func (h *BakeryHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/bakeries")

	g.GET("/public", h.listApproved)
	g.GET("/mine", h.mine, guards.Require(model.RoleOwner)...)
	g.PUT("/upload-image", h.uploadImage, guards.Require(model.RoleOwner)...)
	g.GET("", h.listAll, guards.Require(model.RoleAdmin)...)
	g.PUT("/:id/approve", h.approve, guards.Require(model.RoleAdmin)...)
	g.PUT("/:id/reject", h.reject, guards.Require(model.RoleAdmin)...)
	g.GET("/:id", h.detail)
}

func (h *BakeryHandler) listApproved(c echo.Context) error {
	out, err := h.uc.ListApproved(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BakeryHandler) listAll(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BakeryHandler) mine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Mine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BakeryHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BakeryHandler) approve(c echo.Context) error {
	return h.changeStatus(c, h.uc.Approve)
}

func (h *BakeryHandler) reject(c echo.Context) error {
	return h.changeStatus(c, h.uc.Reject)
}

func (h *BakeryHandler) changeStatus(c echo.Context, fn func(ctx context.Context, actor usecase.Actor, id int64) (model.Bakery, error)) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := fn(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BakeryHandler) uploadImage(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	img, closeFn, err := readUpload(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
	}
	defer closeFn()
	if img == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image is required"})
	}

	url, err := h.uc.UploadImage(c.Request().Context(), userID, *img)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ImageResponse{Success: true, ImageURL: url})
}
