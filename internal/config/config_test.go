package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DB_DRIVER", "TOKEN_TTL", "REFRESH_TOKEN_TTL", "OUTBOX_LIMIT", "USE_KAFKA", "ACTIVITY_STORE", "APP_TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 6*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 10, cfg.OutboxLimit)
	assert.False(t, cfg.UseKafka)
	assert.Equal(t, "sql", cfg.ActivityStore)
	assert.Equal(t, "Asia/Jakarta", cfg.AppTimezone)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("USE_KAFKA", "true")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("OUTBOX_LIMIT", "50")

	cfg := LoadConfig()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.UseKafka)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 50, cfg.OutboxLimit)
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "six hours")
	t.Setenv("OUTBOX_LIMIT", "-3")
	t.Setenv("USE_KAFKA", "maybe")

	cfg := LoadConfig()

	assert.Equal(t, 6*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.OutboxLimit)
	assert.False(t, cfg.UseKafka)
}

func TestLocation(t *testing.T) {
	cfg := &Config{AppTimezone: "Nowhere/Atlantis"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.AppTimezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}
