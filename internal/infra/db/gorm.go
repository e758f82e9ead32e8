package db

import (
	"fmt"
	"time"

	"bakehub/internal/config"
	"bakehub/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		// unique違反をgorm.ErrDuplicatedKeyに揃える
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	gormDB, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// 書き込みは1本に絞る
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return gormDB, nil
}

// 全テーブル
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Bakery{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payout{},
		&model.PayoutOrder{},
		&model.Message{},
		&model.PasswordResetToken{},
		&model.AuditLog{},
	}
}

func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(Models()...)
}
