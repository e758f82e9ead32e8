package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"bakehub/internal/config"
	"bakehub/internal/domain/model"
	"bakehub/internal/infra/cache"
	repo "bakehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// REDIS_ADDRのRedisに繋がらなければスキップ
func newStore(t *testing.T) *cache.OTPRedisStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb, err := cache.NewRedisClient(context.Background(), config.RedisConfig{Addr: addr, DB: 15})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewOTPRedisStore(rdb)
}

func TestOTPRedisStore(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	email := "otp-test@example.com"
	t.Cleanup(func() { _ = s.Delete(ctx, email) })

	_, err := s.Find(ctx, email)
	require.ErrorIs(t, err, repo.ErrNotFound)

	otp := model.EmailOTP{Email: email, CodeHash: "abc", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, s.Save(ctx, otp))

	got, err := s.Find(ctx, " OTP-Test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.CodeHash)
	assert.False(t, got.Verified)

	require.NoError(t, s.Delete(ctx, email))
	_, err = s.Find(ctx, email)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOTPRedisStore_RejectsExpired(t *testing.T) {
	s := newStore(t)
	err := s.Save(context.Background(), model.EmailOTP{Email: "x@example.com", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
