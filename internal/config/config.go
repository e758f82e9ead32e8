package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"` // development/production
	Port   string `env:"PORT" envDefault:"8080"`

	DB       DBConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Mail     MailConfig
	Storage  StorageConfig
	Notify   NotifyConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	FrontendURL  string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"` // 再設定リンクの組み立てに使う
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RateLimitRPS float64  `env:"RATE_LIMIT_RPS" envDefault:"5"` // /api/auth用
}

type DBConfig struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"postgres"` // postgres/sqlite
	URL    string `env:"DATABASE_URL"`                          // あれば最優先

	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Name     string `env:"POSTGRES_DB" envDefault:"bakehub"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"bakehub.db"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET,required,notEmpty"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"168h"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type MailConfig struct {
	Host string `env:"SMTP_HOST" envDefault:"localhost"`
	Port int    `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	From string `env:"EMAIL_FROM" envDefault:"BakeHub <no-reply@bakehub.local>"`
}

type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER" envDefault:"local"` // local/s3
	LocalRoot string `env:"STORAGE_LOCAL_ROOT" envDefault:"uploads"`
	PublicURL string `env:"STORAGE_PUBLIC_URL" envDefault:"/uploads"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"` // MinIOなど
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

type NotifyConfig struct {
	Workers   int `env:"NOTIFY_WORKERS" envDefault:"4"`
	QueueSize int `env:"NOTIFY_QUEUE" envDefault:"256"`
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Loadは.envを読んでから環境変数をパースする
func Load() (Config, error) {
	// .envが無いのは本番では普通
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 必須チェック
func (c Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite")
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be local or s3")
	}
	if c.Notify.Workers <= 0 {
		return fmt.Errorf("NOTIFY_WORKERS must be positive")
	}
	if c.Notify.QueueSize <= 0 {
		return fmt.Errorf("NOTIFY_QUEUE must be positive")
	}
	// 0以下だとrate.Limiterが全リクエストを拒否する
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	return nil
}

// PostgresDSNはDATABASE_URLが無いときの接続文字列
func (c DBConfig) PostgresDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
