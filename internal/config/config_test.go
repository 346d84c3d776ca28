package config

import (
	"testing"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "postgres://localhost/mentor",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, PaymentProviderSandbox, cfg.PaymentProvider)
	assert.Equal(t, 10*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, 2*time.Hour, cfg.DraftTTL)
	assert.Equal(t, "10000", cfg.SandboxBalance.String())
	assert.Equal(t, payment.SandboxNormal, cfg.SandboxMode)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"TELEGRAM_TOKEN":   "token",
		"DB_DSN":           "postgres://localhost/mentor",
		"ENV":              "production",
		"REDIS_DB":         "3",
		"SESSION_STORE":    "postgres",
		"PAYMENT_PROVIDER": "http",
		"PAYMENT_BASE_URL": "https://pay.example.com",
		"PAYMENT_TIMEOUT":  "3s",
		"SANDBOX_BALANCE":  "250.50",
		"SANDBOX_MODE":     "false_failure",
		"DRAFT_TTL":        "30m",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, SessionStorePostgres, cfg.SessionStore)
	assert.Equal(t, PaymentProviderHTTP, cfg.PaymentProvider)
	assert.Equal(t, 3*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, "250.5", cfg.SandboxBalance.String())
	assert.Equal(t, payment.SandboxFalseFailure, cfg.SandboxMode)
	assert.Equal(t, 30*time.Minute, cfg.DraftTTL)
}

func TestFromEnvErrors(t *testing.T) {
	base := map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "postgres://localhost/mentor",
	}

	cases := map[string]map[string]string{
		"missing token":       {"TELEGRAM_TOKEN": ""},
		"missing dsn":         {"DB_DSN": ""},
		"unknown store":       {"SESSION_STORE": "sqlite"},
		"unknown provider":    {"PAYMENT_PROVIDER": "paypal"},
		"http without url":    {"PAYMENT_PROVIDER": "http"},
		"bad timeout":         {"PAYMENT_TIMEOUT": "soon"},
		"bad redis db":        {"REDIS_DB": "one"},
		"bad sandbox balance": {"SANDBOX_BALANCE": "lots"},
		"bad sandbox mode":    {"SANDBOX_MODE": "chaos"},
	}

	for name, override := range cases {
		t.Run(name, func(t *testing.T) {
			values := make(map[string]string, len(base))
			for k, v := range base {
				values[k] = v
			}
			for k, v := range override {
				values[k] = v
			}

			_, err := FromEnv(envFrom(values))
			assert.Error(t, err)
		})
	}
}
