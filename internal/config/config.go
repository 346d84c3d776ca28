package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/payment"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Хранилища записей о сессиях
const (
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// Платёжные провайдеры
const (
	PaymentProviderHTTP    = "http"
	PaymentProviderSandbox = "sandbox"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	SessionStore  string `mapstructure:"SESSION_STORE"`

	PaymentProvider string          `mapstructure:"PAYMENT_PROVIDER"`
	PaymentBaseURL  string          `mapstructure:"PAYMENT_BASE_URL"`
	PaymentAPIKey   string          `mapstructure:"PAYMENT_API_KEY"`
	PaymentTimeout  time.Duration   `mapstructure:"PAYMENT_TIMEOUT"`
	SandboxBalance  decimal.Decimal `mapstructure:"SANDBOX_BALANCE"`
	// SandboxMode false_failure списывает деньги, но отвечает ошибкой: так проверяется сверка баланса
	SandboxMode payment.SandboxMode `mapstructure:"SANDBOX_MODE"`

	DraftTTL time.Duration `mapstructure:"DRAFT_TTL"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:   getenv("TELEGRAM_TOKEN"),
		DBDSN:           getenv("DB_DSN"),
		Environment:     getenv("ENV"),
		MigrationsPath:  getenv("MIGRATIONS_PATH"),
		RedisAddr:       getenv("REDIS_ADDR"),
		RedisPassword:   getenv("REDIS_PASSWORD"),
		SessionStore:    getenv("SESSION_STORE"),
		PaymentProvider: getenv("PAYMENT_PROVIDER"),
		PaymentBaseURL:  getenv("PAYMENT_BASE_URL"),
		PaymentAPIKey:   getenv("PAYMENT_API_KEY"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.SessionStore == "" {
		cfg.SessionStore = SessionStoreRedis
	}
	if cfg.PaymentProvider == "" {
		cfg.PaymentProvider = PaymentProviderSandbox
	}

	var err error
	if cfg.RedisDB, err = intOrDefault(getenv("REDIS_DB"), 0); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.PaymentTimeout, err = durationOrDefault(getenv("PAYMENT_TIMEOUT"), 10*time.Second); err != nil {
		return nil, fmt.Errorf("PAYMENT_TIMEOUT: %w", err)
	}
	if cfg.DraftTTL, err = durationOrDefault(getenv("DRAFT_TTL"), 2*time.Hour); err != nil {
		return nil, fmt.Errorf("DRAFT_TTL: %w", err)
	}

	cfg.SandboxBalance = decimal.NewFromInt(10000)
	if raw := getenv("SANDBOX_BALANCE"); raw != "" {
		if cfg.SandboxBalance, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("SANDBOX_BALANCE: %w", err)
		}
	}

	if cfg.SandboxMode, err = payment.ParseSandboxMode(getenv("SANDBOX_MODE")); err != nil {
		return nil, fmt.Errorf("SANDBOX_MODE: %w", err)
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	switch cfg.SessionStore {
	case SessionStoreRedis, SessionStorePostgres:
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	switch cfg.PaymentProvider {
	case PaymentProviderSandbox:
	case PaymentProviderHTTP:
		if cfg.PaymentBaseURL == "" {
			return nil, fmt.Errorf("PAYMENT_BASE_URL is required for http payment provider")
		}
	default:
		return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.PaymentProvider)
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsProduction проверяет production окружение
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func intOrDefault(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func durationOrDefault(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}
