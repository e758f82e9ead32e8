package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryCakes         ProductCategory = "Cakes"
	CategoryPastries      ProductCategory = "Pastries"
	CategoryBreads        ProductCategory = "Breads"
	CategoryCookies       ProductCategory = "Cookies"
	CategorySnacks        ProductCategory = "Snacks"
	CategoryBeverages     ProductCategory = "Beverages"
	CategoryUncategorized ProductCategory = "Uncategorized"
)

var productCategories = []ProductCategory{
	CategoryCakes,
	CategoryPastries,
	CategoryBreads,
	CategoryCookies,
	CategorySnacks,
	CategoryBeverages,
	CategoryUncategorized,
}

// 空文字はUncategorized扱い
func ParseProductCategory(s string) (ProductCategory, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryUncategorized, true
	}
	for _, c := range productCategories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BakeryID    int64           `gorm:"not null;index" json:"bakeryId"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:varchar(512)" json:"imageUrl"`
	IsSoldOut   bool            `gorm:"not null" json:"isSoldOut"`
	IsVisible   bool            `gorm:"not null" json:"isVisible"`
	Category    ProductCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 顧客に見せてよい商品か
func (p Product) Available() bool {
	return p.IsVisible && !p.IsSoldOut
}
