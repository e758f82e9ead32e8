package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ローカルディスク。/uploadsを静的配信する前提
type LocalStorage struct {
	root      string
	publicURL string
}

func NewLocalStorage(root, publicURL string) *LocalStorage {
	return &LocalStorage{root: root, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) Put(ctx context.Context, key string, body io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean("/" + key)
	dst := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("storage/local: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("storage/local: write: %w", err)
	}
	return s.publicURL + filepath.ToSlash(clean), nil
}
