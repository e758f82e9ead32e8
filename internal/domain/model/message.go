package model

import "time"

type MessageStatus string

const (
	MessageStatusUnread   MessageStatus = "unread"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusReplied  MessageStatus = "replied"
	MessageStatusResolved MessageStatus = "resolved"
)

// サポート問い合わせ
type Message struct {
	ID         int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string        `gorm:"type:varchar(100);not null" json:"name"`
	Email      string        `gorm:"type:varchar(255);not null" json:"email"`
	Category   string        `gorm:"type:varchar(50);not null" json:"category"`
	Body       string        `gorm:"column:message;type:text;not null" json:"message"`
	Status     MessageStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminReply string        `gorm:"type:text" json:"adminReply,omitempty"`
	ReplyAt    *time.Time    `json:"replyAt,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt  time.Time     `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
