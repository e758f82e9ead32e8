package handler

import (
	"net/http"
	"strconv"
	"strings"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// JSONで来たとき
type ProductRequest struct {
	BakeryID    int64            `json:"bakeryId"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsSoldOut   *bool            `json:"isSoldOut"`
	IsVisible   *bool            `json:"isVisible"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"imageUrl"`
}

// GET /products/:id の:idはベーカリーID、PUT/DELETEでは商品ID
func (h *ProductHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/products")

	g.POST("", h.create, guards.Require(model.RoleOwner)...)
	g.GET("/:id", h.listByBakery, guards.Optional)
	g.PUT("/:id", h.update, guards.Require(model.RoleOwner)...)
	g.DELETE("/:id", h.delete, guards.Require(model.RoleOwner)...)
}

func (h *ProductHandler) listByBakery(c echo.Context) error {
	bakeryID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid bakery id"})
	}

	var viewer *usecase.Actor
	if actor, ok := getActor(c); ok {
		viewer = &actor
	}

	out, err := h.uc.ListByBakery(c.Request().Context(), viewer, bakeryID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}

	in, closeFn, err := bindProductInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	defer closeFn()

	out, err := h.uc.Create(c.Request().Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, closeFn, err := bindProductInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	defer closeFn()

	out, err := h.uc.Update(c.Request().Context(), actor, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type badInput string

func (e badInput) Error() string { return string(e) }

// multipartならフォーム、そうでなければJSON
func bindProductInput(c echo.Context) (usecase.ProductInput, func(), error) {
	noop := func() {}
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		var req ProductRequest
		if err := c.Bind(&req); err != nil {
			return usecase.ProductInput{}, noop, badInput("invalid body")
		}
		return usecase.ProductInput{
			BakeryID:    req.BakeryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			IsSoldOut:   req.IsSoldOut,
			IsVisible:   req.IsVisible,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		}, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return usecase.ProductInput{}, noop, badInput("invalid form")
	}
	field := func(key string) *string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			s := v[0]
			return &s
		}
		return nil
	}
	boolField := func(key string) *bool {
		if s := field(key); s != nil {
			b := strings.EqualFold(strings.TrimSpace(*s), "true")
			return &b
		}
		return nil
	}

	in := usecase.ProductInput{
		Name:        field("name"),
		Description: field("description"),
		IsSoldOut:   boolField("isSoldOut"),
		IsVisible:   boolField("isVisible"),
		Category:    field("category"),
		ImageURL:    field("imageUrl"),
	}
	if s := field("bakeryId"); s != nil {
		id, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
		if err != nil {
			return usecase.ProductInput{}, noop, badInput("invalid bakeryId")
		}
		in.BakeryID = id
	}
	if s := field("price"); s != nil {
		p, err := decimal.NewFromString(strings.TrimSpace(*s))
		if err != nil {
			return usecase.ProductInput{}, noop, badInput("invalid price")
		}
		in.Price = &p
	}

	img, closeFn, err := readUpload(c, "image")
	if err != nil {
		return usecase.ProductInput{}, noop, badInput("invalid image")
	}
	in.Image = img
	return in, closeFn, nil
}
