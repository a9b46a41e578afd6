package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	AppEnv        string
	EnableDBCheck bool
	Storage       string

	JWTSecret string
	JWTIssuer string

	// RepoTimeout bounds each front-desk operation, including repository and settings reads
	// and entity lock waits.
	RepoTimeout      time.Duration
	SettingsCacheTTL time.Duration
	// SettingsFile is a YAML seed of rooms, rate tables, modifiers, tax rates and the
	// last audit date.
	SettingsFile string

	KafkaBrokers       []string
	KafkaActivityTopic string
	ActivityBuffer     int

	RateLimit         string
	CORSOrigins       []string
	DependencyRetries int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("APP_ENV", "dev")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE", StoragePostgres)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "hotel-frontdesk")
	viper.SetDefault("REPO_TIMEOUT", "3s")
	viper.SetDefault("SETTINGS_CACHE_TTL", "5m")
	viper.SetDefault("SETTINGS_FILE", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_ACTIVITY_TOPIC", "frontdesk.activity")
	viper.SetDefault("ACTIVITY_BUFFER", 256)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DEPENDENCY_RETRIES", 2)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		AppEnv:             strings.ToLower(viper.GetString("APP_ENV")),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		Storage:            strings.ToLower(viper.GetString("STORAGE")),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		SettingsFile:       viper.GetString("SETTINGS_FILE"),
		KafkaBrokers:       splitList(viper.GetString("KAFKA_BROKERS")),
		KafkaActivityTopic: viper.GetString("KAFKA_ACTIVITY_TOPIC"),
		ActivityBuffer:     viper.GetInt("ACTIVITY_BUFFER"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSOrigins:        splitList(viper.GetString("CORS_ORIGINS")),
		DependencyRetries:  viper.GetInt("DEPENDENCY_RETRIES"),
	}

	cfg.RepoTimeout = durationOrDefault("REPO_TIMEOUT", 3*time.Second)
	cfg.SettingsCacheTTL = durationOrDefault("SETTINGS_CACHE_TTL", 5*time.Minute)

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE=%s", StoragePostgres)
		}
	case StorageMemory:
		if cfg.IsProduction {
			return nil, fmt.Errorf("STORAGE=%s is not allowed in production", StorageMemory)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE %q (want %s or %s)", cfg.Storage, StoragePostgres, StorageMemory)
	}

	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	if cfg.ActivityBuffer <= 0 {
		cfg.ActivityBuffer = 256
	}
	if cfg.DependencyRetries < 0 {
		cfg.DependencyRetries = 0
	}

	return cfg, nil
}

// IsDevLogging reports whether logs should use the colored console handler.
func (c *Config) IsDevLogging() bool {
	return !c.IsProduction && (c.AppEnv == "dev" || c.AppEnv == "local")
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
