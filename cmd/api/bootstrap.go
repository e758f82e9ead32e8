package main

import (
	"fmt"

	"bakehub/internal/config"
	"bakehub/internal/infra/db"
	"bakehub/internal/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 設定、ロガー、DBまでの共通部分
type base struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB
}

func bootstrap() (*base, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return &base{cfg: cfg, log: log, db: gormDB}, nil
}

func (b *base) close() {
	if sqlDB, err := b.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = b.log.Sync()
}
