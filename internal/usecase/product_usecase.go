package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bakehub/internal/domain/model"
	"bakehub/internal/infra/storage"
	repo "bakehub/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductUsecase struct {
	products repo.ProductRepository
	bakeries repo.BakeryRepository
	files    FileStore
	log      *zap.Logger
}

// DI
func NewProductUsecase(products repo.ProductRepository, bakeries repo.BakeryRepository, files FileStore, log *zap.Logger) *ProductUsecase {
	return &ProductUsecase{products: products, bakeries: bakeries, files: files, log: log}
}

// 作成と更新の入力。nilは「送られてこなかった」
type ProductInput struct {
	BakeryID    int64
	Name        *string
	Description *string
	Price       *decimal.Decimal
	IsSoldOut   *bool
	IsVisible   *bool
	Category    *string
	ImageURL    *string
	Image       *Upload
}

// 顧客と未ログインは公開中かつ在庫ありだけ。オーナーと管理者は全部
func (u *ProductUsecase) ListByBakery(ctx context.Context, viewer *Actor, bakeryID int64) ([]model.Product, error) {
	if bakeryID <= 0 {
		return nil, errBadRequest("invalid bakery id")
	}

	q := repo.ProductListQuery{BakeryID: bakeryID, OnlyAvailable: true}
	if viewer != nil {
		switch viewer.Role {
		case model.RoleOwner, model.RoleAdmin:
			q.OnlyAvailable = false
		case model.RoleCustomer:
		}
	}

	items, err := u.products.ListByBakery(ctx, q)
	if err != nil {
		u.log.Error("list products", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch products")
	}
	return items, nil
}

// オーナー自身の店か
func (u *ProductUsecase) ownedBakery(ctx context.Context, ownerID, bakeryID int64) error {
	b, err := u.bakeries.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return errForbidden("Access denied")
	}
	if err != nil {
		u.log.Error("find bakery by owner", zap.Error(err))
		return errInternal
	}
	if b.ID != bakeryID {
		return errForbidden("Access denied")
	}
	return nil
}

func (u *ProductUsecase) storeImage(ctx context.Context, img *Upload) (string, error) {
	url, err := u.files.Put(ctx, storage.NewObjectKey("products", img.Filename), img.Body, img.ContentType)
	if err != nil {
		u.log.Error("store product image", zap.Error(err))
		return "", NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}
	return url, nil
}

func (u *ProductUsecase) Create(ctx context.Context, actor Actor, in ProductInput) (model.Product, error) {
	if in.BakeryID <= 0 {
		return model.Product{}, errBadRequest("bakeryId is required")
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return model.Product{}, errBadRequest("name is required")
	}
	if in.Price == nil || !in.Price.IsPositive() {
		return model.Product{}, errBadRequest("price must be greater than 0")
	}
	cat := model.CategoryUncategorized
	if in.Category != nil {
		c, ok := model.ParseProductCategory(*in.Category)
		if !ok {
			return model.Product{}, errBadRequest("invalid category")
		}
		cat = c
	}
	if err := u.ownedBakery(ctx, actor.ID, in.BakeryID); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		BakeryID:  in.BakeryID,
		Name:      strings.TrimSpace(*in.Name),
		Price:     *in.Price,
		Category:  cat,
		IsVisible: true,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.IsSoldOut != nil {
		p.IsSoldOut = *in.IsSoldOut
	}
	if in.IsVisible != nil {
		p.IsVisible = *in.IsVisible
	}

	// ファイルがあればURLより優先
	switch {
	case in.Image != nil:
		url, err := u.storeImage(ctx, in.Image)
		if err != nil {
			return model.Product{}, err
		}
		p.ImageURL = url
	case in.ImageURL != nil:
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	created, err := u.products.Create(ctx, p)
	if err != nil {
		u.log.Error("create product", zap.Error(err))
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}
	return created, nil
}

func (u *ProductUsecase) findOwned(ctx context.Context, actor Actor, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, errBadRequest("invalid product id")
	}
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, errNotFound("Product not found")
	}
	if err != nil {
		u.log.Error("find product", zap.Error(err))
		return model.Product{}, errInternal
	}
	if err := u.ownedBakery(ctx, actor.ID, p.BakeryID); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 送られた項目だけ上書きする
func (u *ProductUsecase) Update(ctx context.Context, actor Actor, productID int64, in ProductInput) (model.Product, error) {
	p, err := u.findOwned(ctx, actor, productID)
	if err != nil {
		return model.Product{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Product{}, errBadRequest("name is required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return model.Product{}, errBadRequest("price must be greater than 0")
		}
		p.Price = *in.Price
	}
	if in.IsSoldOut != nil {
		p.IsSoldOut = *in.IsSoldOut
	}
	if in.IsVisible != nil {
		p.IsVisible = *in.IsVisible
	}
	if in.Category != nil {
		c, ok := model.ParseProductCategory(*in.Category)
		if !ok {
			return model.Product{}, errBadRequest("invalid category")
		}
		p.Category = c
	}
	switch {
	case in.Image != nil:
		url, err := u.storeImage(ctx, in.Image)
		if err != nil {
			return model.Product{}, err
		}
		p.ImageURL = url
	case in.ImageURL != nil:
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	if err := u.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, errNotFound("Product not found")
		}
		u.log.Error("update product", zap.Error(err))
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, actor Actor, productID int64) error {
	p, err := u.findOwned(ctx, actor, productID)
	if err != nil {
		return err
	}
	if err := u.products.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("Product not found")
		}
		u.log.Error("delete product", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}
	return nil
}
