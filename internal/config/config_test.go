package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

func TestParseCatalog(t *testing.T) {
	got, err := ParseCatalog(" Dune: Part Two|250 , Oppenheimer|300,")
	require.NoError(t, err)
	assert.Equal(t, []model.Movie{
		{Index: 0, Title: "Dune: Part Two", Price: 250},
		{Index: 1, Title: "Oppenheimer", Price: 300},
	}, got)

	for _, bad := range []string{"", ",,", "NoPrice", "|200", "Film|-1", "Film|abc"} {
		_, err := ParseCatalog(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SEAT_COUNT", "32")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("MOVIE_CATALOG", "A|100,B|150")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")
	t.Setenv("DB_HOST", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 32, cfg.SeatCount)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Len(t, cfg.Catalog, 2)
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.AMQPURL)
	assert.False(t, cfg.DB.Enabled())
	assert.False(t, cfg.PublishEvents)
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-4")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 10*time.Second, cfg.TTL)
	assert.Equal(t, "profile_route", cfg.KeyStrategy)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_TLS", "1")
	cfg := LoadRedisConfig()
	assert.Equal(t, "cache:6380", cfg.Addr)
	assert.True(t, cfg.TLS)

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	assert.Equal(t, "redis:6379", LoadRedisConfig().Addr)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_ENABLED", "off")
	cfg := LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, 30*time.Second, cfg.TTL)
}
