package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MemoryStorage(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE", "memory")
	t.Setenv("REPO_TIMEOUT", "750ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SETTINGS_CACHE_TTL", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 750*time.Millisecond, cfg.RepoTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SettingsCacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2, cfg.DependencyRetries)
}

func TestLoadConfig_PostgresNeedsURL(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_UnknownStorage(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE", "sqlite")

	_, err := LoadConfig()
	assert.Error(t, err)
}
