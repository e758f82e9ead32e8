package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PayoutStatus string

// processing/failedは予約済み。現状どの操作も設定しない。
const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
)

func ParsePayoutStatus(s string) (PayoutStatus, bool) {
	switch st := PayoutStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case PayoutStatusPending, PayoutStatusProcessing, PayoutStatusCompleted, PayoutStatusFailed:
		return st, true
	default:
		return "", false
	}
}

type PayoutMethod string

const (
	PayoutMethodBankTransfer PayoutMethod = "bank_transfer"
	PayoutMethodUPI          PayoutMethod = "upi"
	PayoutMethodOther        PayoutMethod = "other"
)

func ParsePayoutMethod(s string) (PayoutMethod, bool) {
	switch m := PayoutMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PayoutMethodBankTransfer, PayoutMethodUPI, PayoutMethodOther:
		return m, true
	default:
		return "", false
	}
}

type PaymentDetails struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSCCode      string `json:"ifscCode,omitempty"`
	UPIID         string `json:"upiId,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

func (d PaymentDetails) IsZero() bool {
	return d == PaymentDetails{}
}

type Payout struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BakeryID       int64           `gorm:"not null;index" json:"bakeryId"`
	Bakery         *Bakery         `gorm:"foreignKey:BakeryID" json:"bakery,omitempty"`
	OwnerID        int64           `gorm:"not null;index" json:"ownerId"`
	Owner          *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Claims         []PayoutOrder   `gorm:"foreignKey:PayoutID" json:"-"`
	OrderIDs       []int64         `gorm:"-" json:"orderIds"`
	Orders         []Order         `gorm:"-" json:"orders,omitempty"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	PlatformFee    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"platformFee"`
	PayoutAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"payoutAmount"`
	Status         PayoutStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod  PayoutMethod    `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	PaymentDetails PaymentDetails  `gorm:"serializer:json;type:text" json:"paymentDetails"`
	Notes          string          `gorm:"type:text" json:"notes"`
	ProcessedAt    *time.Time      `json:"processedAt,omitempty"`
	ProcessedBy    *int64          `json:"processedBy,omitempty"`
	Processor      *User           `gorm:"foreignKey:ProcessedBy" json:"processor,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 注文IDごとに1行。order_idのunique制約で二重精算を防ぐ。
type PayoutOrder struct {
	PayoutID int64 `gorm:"primaryKey;autoIncrement:false"`
	OrderID  int64 `gorm:"primaryKey;autoIncrement:false;uniqueIndex:ux_payout_orders_order_id"`
}
