package handler

import (
	"net/http"
	"strconv"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PayoutHandler struct {
	uc *usecase.PayoutUsecase
}

func NewPayoutHandler(uc *usecase.PayoutUsecase) *PayoutHandler {
	return &PayoutHandler{uc: uc}
}

type PayoutCreateRequest struct {
	BakeryID       int64                `json:"bakeryId"`
	OrderIDs       []int64              `json:"orderIds"`
	PlatformFee    decimal.Decimal      `json:"platformFee"`
	PaymentMethod  string               `json:"paymentMethod"`
	PaymentDetails model.PaymentDetails `json:"paymentDetails"`
	Notes          string               `json:"notes"`
}

type PayoutProcessRequest struct {
	PaymentMethod  *string               `json:"paymentMethod"`
	PaymentDetails *model.PaymentDetails `json:"paymentDetails"`
	Notes          *string               `json:"notes"`
}

func (h *PayoutHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/payouts")

	admin := guards.Require(model.RoleAdmin)
	g.GET("/completed-orders", h.eligibleOrders, admin...)
	g.POST("", h.create, admin...)
	g.PUT("/:id/process", h.process, admin...)
	g.GET("/mine", h.mine, guards.Require(model.RoleOwner)...)
	g.GET("", h.list, admin...)
	g.GET("/pending", h.pending, admin...)
}

func (h *PayoutHandler) eligibleOrders(c echo.Context) error {
	var bakeryID *int64
	if raw := c.QueryParam("bakeryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid bakeryId"})
		}
		bakeryID = &id
	}

	out, err := h.uc.ListEligibleOrders(c.Request().Context(), bakeryID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PayoutHandler) create(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}

	var req PayoutCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreatePayout(c.Request().Context(), actor, usecase.CreatePayoutInput{
		BakeryID:       req.BakeryID,
		OrderIDs:       req.OrderIDs,
		PlatformFee:    req.PlatformFee,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
		Notes:          req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PayoutHandler) process(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PayoutProcessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ProcessPayout(c.Request().Context(), actor, id, usecase.ProcessPayoutInput{
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
		Notes:          req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PayoutHandler) mine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListMyPayouts(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PayoutHandler) list(c echo.Context) error {
	out, err := h.uc.ListPayouts(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PayoutHandler) pending(c echo.Context) error {
	out, err := h.uc.ListPendingPayouts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
