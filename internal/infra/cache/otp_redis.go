package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakehub/internal/config"
	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "bakehub:otp:"

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// OTPをJSONで持つ。期限はTTLに任せる
type OTPRedisStore struct {
	rdb *redis.Client
}

func NewOTPRedisStore(rdb *redis.Client) *OTPRedisStore {
	return &OTPRedisStore{rdb: rdb}
}

func otpKey(email string) string {
	return otpKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *OTPRedisStore) Save(ctx context.Context, otp model.EmailOTP) error {
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		return errors.New("otp already expired")
	}
	b, err := json.Marshal(otp)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, otpKey(otp.Email), b, ttl).Err()
}

func (s *OTPRedisStore) Find(ctx context.Context, email string) (model.EmailOTP, error) {
	b, err := s.rdb.Get(ctx, otpKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.EmailOTP{}, repo.ErrNotFound
	}
	if err != nil {
		return model.EmailOTP{}, err
	}

	var otp model.EmailOTP
	if err := json.Unmarshal(b, &otp); err != nil {
		return model.EmailOTP{}, fmt.Errorf("decode otp: %w", err)
	}
	return otp, nil
}

func (s *OTPRedisStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, otpKey(email)).Err()
}
