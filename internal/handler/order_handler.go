package handler

import (
	"net/http"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	ProductID *int64          `json:"productId"`
	BakeryID  int64           `json:"bakeryId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int64           `json:"qty"`
}

type OrderCreateRequest struct {
	Items         []OrderItemRequest `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	Note          string             `json:"note"`
	PaymentMethod string             `json:"paymentMethod"`
	PaidAmount    *decimal.Decimal   `json:"paidAmount"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type PaymentStatusRequest struct {
	PaymentStatus string           `json:"paymentStatus"`
	PaidAmount    *decimal.Decimal `json:"paidAmount"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/orders")

	g.POST("", h.create, guards.Require(model.RoleCustomer)...)
	g.GET("/my-orders", h.myOrders, guards.Require(model.RoleCustomer)...)
	g.GET("/owner-orders", h.ownerOrders, guards.Require(model.RoleOwner)...)
	g.GET("/:id", h.detail, guards.Require(model.RoleCustomer, model.RoleOwner, model.RoleAdmin)...)
	g.PUT("/status/:id", h.updateStatus, guards.Require(model.RoleOwner)...)
	g.PUT("/update-payment/:id", h.updatePayment, guards.Require(model.RoleOwner)...)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.PlaceOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.PlaceOrderItem{
			ProductID: it.ProductID,
			BakeryID:  it.BakeryID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Items:         items,
		Total:         req.Total,
		Address:       req.Address,
		Phone:         req.Phone,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		PaidAmount:    req.PaidAmount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) myOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) ownerOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ListOwnerOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updatePayment(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdatePayment(c.Request().Context(), actor, id, req.PaymentStatus, req.PaidAmount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
