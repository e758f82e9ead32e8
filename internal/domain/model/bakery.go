package model

import "time"

type BakeryStatus string

const (
	BakeryStatusPending  BakeryStatus = "pending"
	BakeryStatusApproved BakeryStatus = "approved"
	BakeryStatusRejected BakeryStatus = "rejected"
)

// オーナー1人につきベーカリーは1つ（owner_idはunique）
type Bakery struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     int64        `gorm:"not null;uniqueIndex" json:"ownerId"`
	Owner       *User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Address     string       `gorm:"type:varchar(255)" json:"address"`
	Description string       `gorm:"type:text" json:"description"`
	Phone       string       `gorm:"type:varchar(30)" json:"phone"`
	ImageURL    string       `gorm:"type:varchar(512)" json:"imageUrl"`
	Lat         *float64     `json:"lat,omitempty"`
	Lng         *float64     `json:"lng,omitempty"`
	Status      BakeryStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
