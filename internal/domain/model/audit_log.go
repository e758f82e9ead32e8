package model

import "time"

// 誰がどの状態を変えたか
type AuditAction string

const (
	AuditActionApproveBakery       AuditAction = "APPROVE_BAKERY"
	AuditActionRejectBakery        AuditAction = "REJECT_BAKERY"
	AuditActionUpdateOrderStatus   AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionUpdatePaymentStatus AuditAction = "UPDATE_PAYMENT_STATUS"
	AuditActionCreatePayout        AuditAction = "CREATE_PAYOUT"
	AuditActionProcessPayout       AuditAction = "PROCESS_PAYOUT"
)

type AuditResourceType string

const (
	AuditResourceBakery AuditResourceType = "bakery"
	AuditResourceOrder  AuditResourceType = "order"
	AuditResourcePayout AuditResourceType = "payout"
)

// 監査ログ。before/afterはJSON文字列で残す。
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actorUserId"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`
	ResourceID   int64             `gorm:"not null;index" json:"resourceId"`
	BeforeJSON   string            `gorm:"type:text" json:"before"`
	AfterJSON    string            `gorm:"type:text" json:"after"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"createdAt"`
}
