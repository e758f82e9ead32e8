package usecase

import (
	"context"
	"io"
	"time"

	"bakehub/internal/notification"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// 非同期通知。積めなかったらfalse
type Notifier interface {
	Notify(msg notification.Message) bool
}

// 同期で送りたいメール用
type Mailer interface {
	Send(ctx context.Context, msg notification.Message) error
}

// 画像を置いて公開URLを返す
type FileStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// アップロードされた画像
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}
