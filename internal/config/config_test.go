package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DSN", "postgres://localhost/credably")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("TOKEN_LIFESPAN", "2h")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "postgres://localhost/credably", cfg.DB.DSN)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenLifespan)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ScoreTTL)
	assert.Equal(t, 15*time.Second, cfg.Providers.Timeout)
	assert.InDelta(t, 5.0, cfg.Providers.RatePerSecond, 0.0001)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitBrokers([]string{"a,b", " c ", ""}))
	assert.Empty(t, splitBrokers(nil))
}
