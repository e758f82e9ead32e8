package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"
	"bakehub/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductUC(p *ProductRepoMock, b *BakeryRepoMock, files *FileStoreMock) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(p, b, files, zap.NewNop())
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProductUsecase_ListByBakery_Visibility(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name          string
		viewer        *usecase.Actor
		onlyAvailable bool
	}{
		{"anonymous", nil, true},
		{"customer", &usecase.Actor{ID: 1, Role: model.RoleCustomer}, true},
		{"owner", &usecase.Actor{ID: 2, Role: model.RoleOwner}, false},
		{"admin", &usecase.Actor{ID: 3, Role: model.RoleAdmin}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pRepo := new(ProductRepoMock)
			pRepo.On("ListByBakery", mock.Anything, repo.ProductListQuery{BakeryID: 7, OnlyAvailable: tc.onlyAvailable}).
				Return([]model.Product{{ID: 1, BakeryID: 7}}, nil)

			items, err := newProductUC(pRepo, new(BakeryRepoMock), new(FileStoreMock)).ListByBakery(ctx, tc.viewer, 7)
			require.NoError(t, err)
			assert.Len(t, items, 1)
			pRepo.AssertExpectations(t)
		})
	}
}

func TestProductUsecase_Create(t *testing.T) {
	ctx := context.Background()
	owner := usecase.Actor{ID: 10, Role: model.RoleOwner}

	t.Run("success with uploaded image", func(t *testing.T) {
		pRepo := new(ProductRepoMock)
		bRepo := new(BakeryRepoMock)
		files := new(FileStoreMock)

		bRepo.On("FindByOwnerID", mock.Anything, int64(10)).Return(model.Bakery{ID: 5, OwnerID: 10}, nil)
		files.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "products/") && strings.HasSuffix(key, ".png")
		}), mock.Anything, "image/png").Return("/uploads/products/x.png", nil)
		pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
			return p.BakeryID == 5 && p.Name == "Rye" && p.Category == model.CategoryBreads &&
				p.ImageURL == "/uploads/products/x.png" && p.IsVisible && !p.IsSoldOut
		})).Return(model.Product{ID: 99, Name: "Rye"}, nil)

		out, err := newProductUC(pRepo, bRepo, files).Create(ctx, owner, usecase.ProductInput{
			BakeryID: 5,
			Name:     strPtr(" Rye "),
			Price:    decPtr("120"),
			Category: strPtr("breads"),
			Image:    &usecase.Upload{Filename: "rye.PNG", ContentType: "image/png", Body: strings.NewReader("png")},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(99), out.ID)
		pRepo.AssertExpectations(t)
		files.AssertExpectations(t)
	})

	t.Run("not my bakery", func(t *testing.T) {
		bRepo := new(BakeryRepoMock)
		bRepo.On("FindByOwnerID", mock.Anything, int64(10)).Return(model.Bakery{ID: 6, OwnerID: 10}, nil)

		_, err := newProductUC(new(ProductRepoMock), bRepo, new(FileStoreMock)).Create(ctx, owner, usecase.ProductInput{
			BakeryID: 5, Name: strPtr("Rye"), Price: decPtr("120"),
		})
		requireHTTPError(t, err, http.StatusForbidden, "Access denied")
	})

	t.Run("owner without bakery", func(t *testing.T) {
		bRepo := new(BakeryRepoMock)
		bRepo.On("FindByOwnerID", mock.Anything, int64(10)).Return(model.Bakery{}, repo.ErrNotFound)

		_, err := newProductUC(new(ProductRepoMock), bRepo, new(FileStoreMock)).Create(ctx, owner, usecase.ProductInput{
			BakeryID: 5, Name: strPtr("Rye"), Price: decPtr("120"),
		})
		requireHTTPError(t, err, http.StatusForbidden, "Access denied")
	})

	t.Run("validation", func(t *testing.T) {
		uc := newProductUC(new(ProductRepoMock), new(BakeryRepoMock), new(FileStoreMock))

		_, err := uc.Create(ctx, owner, usecase.ProductInput{Name: strPtr("Rye"), Price: decPtr("1")})
		requireHTTPError(t, err, http.StatusBadRequest, "bakeryId is required")

		_, err = uc.Create(ctx, owner, usecase.ProductInput{BakeryID: 5, Price: decPtr("1")})
		requireHTTPError(t, err, http.StatusBadRequest, "name is required")

		_, err = uc.Create(ctx, owner, usecase.ProductInput{BakeryID: 5, Name: strPtr("Rye"), Price: decPtr("0")})
		requireHTTPError(t, err, http.StatusBadRequest, "price must be greater than 0")

		_, err = uc.Create(ctx, owner, usecase.ProductInput{BakeryID: 5, Name: strPtr("Rye"), Price: decPtr("1"), Category: strPtr("Pies")})
		requireHTTPError(t, err, http.StatusBadRequest, "invalid category")
	})
}

func TestProductUsecase_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	owner := usecase.Actor{ID: 10, Role: model.RoleOwner}

	pRepo := new(ProductRepoMock)
	bRepo := new(BakeryRepoMock)
	current := model.Product{ID: 3, BakeryID: 5, Name: "Rye", Price: decimal.NewFromInt(120), IsVisible: true, Category: model.CategoryBreads}

	pRepo.On("FindByID", mock.Anything, int64(3)).Return(current, nil)
	bRepo.On("FindByOwnerID", mock.Anything, int64(10)).Return(model.Bakery{ID: 5, OwnerID: 10}, nil)
	pRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Rye" && p.IsSoldOut && p.IsVisible && p.Price.Equal(decimal.NewFromInt(120))
	})).Return(nil)

	out, err := newProductUC(pRepo, bRepo, new(FileStoreMock)).Update(ctx, owner, 3, usecase.ProductInput{IsSoldOut: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, out.IsSoldOut)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_Delete(t *testing.T) {
	ctx := context.Background()
	owner := usecase.Actor{ID: 10, Role: model.RoleOwner}

	t.Run("missing product", func(t *testing.T) {
		pRepo := new(ProductRepoMock)
		pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{}, repo.ErrNotFound)

		err := newProductUC(pRepo, new(BakeryRepoMock), new(FileStoreMock)).Delete(ctx, owner, 3)
		requireHTTPError(t, err, http.StatusNotFound, "Product not found")
	})

	t.Run("db failure", func(t *testing.T) {
		pRepo := new(ProductRepoMock)
		bRepo := new(BakeryRepoMock)
		pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{ID: 3, BakeryID: 5}, nil)
		bRepo.On("FindByOwnerID", mock.Anything, int64(10)).Return(model.Bakery{ID: 5}, nil)
		pRepo.On("Delete", mock.Anything, int64(3)).Return(errors.New("boom"))

		err := newProductUC(pRepo, bRepo, new(FileStoreMock)).Delete(ctx, owner, 3)
		requireHTTPError(t, err, http.StatusInternalServerError, "Failed to delete product")
	})
}
