package model

import "time"

// 会員登録前のメール確認コード。Redisに保存する。
type EmailOTP struct {
	Email     string    `json:"email"`
	CodeHash  string    `json:"codeHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	Verified  bool      `json:"verified"`
}

func (o EmailOTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
