package handler

import (
	"net/http"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	uc *usecase.MessageUsecase
}

func NewMessageHandler(uc *usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

type MessageCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type ReplyRequest struct {
	ReplyText string `json:"replyText"`
}

type MessageResponse struct {
	Message string        `json:"message"`
	Data    model.Message `json:"data"`
}

func (h *MessageHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/messages")

	admin := guards.Require(model.RoleAdmin)
	g.POST("", h.create)
	g.GET("", h.list, admin...)
	g.PUT("/:id/read", h.markRead, admin...)
	g.PUT("/:id/reply", h.reply, admin...)
	g.PUT("/:id/resolve", h.resolve, admin...)
}

func (h *MessageHandler) create(c echo.Context) error {
	var req MessageCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	msg, err := h.uc.Send(c.Request().Context(), usecase.SendMessageInput{
		Name:     req.Name,
		Email:    req.Email,
		Category: req.Category,
		Message:  req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Message received successfully", Data: msg})
}

func (h *MessageHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) markRead(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	msg, err := h.uc.MarkRead(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Marked as read", Data: msg})
}

func (h *MessageHandler) reply(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	msg, err := h.uc.Reply(c.Request().Context(), id, req.ReplyText)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Reply sent successfully", Data: msg})
}

func (h *MessageHandler) resolve(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	msg, err := h.uc.Resolve(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Message marked as resolved", Data: msg})
}
