package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"bakehub/internal/config"

	"github.com/google/uuid"
)

// 画像などのバイト列を置いて公開URLを返す
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// 設定からドライバを選ぶ
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local":
		return NewLocalStorage(cfg.LocalRoot, cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// prefix/uuid.ext の形でキーを作る
func NewObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
