// Package config loads application configuration from config files and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hormone-insights-server/internal/domain"
)

// Manager handles configuration loading and validation.
type Manager struct {
	v      *viper.Viper
	config *domain.Config
}

// NewManager creates a configuration manager.
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/hormone-insights")

	v.SetEnvPrefix("HORMONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{v: v}
}

// Load reads configuration, applying defaults and environment overrides. A
// missing config file is not an error; defaults plus environment suffice.
func (m *Manager) Load() (*domain.Config, error) {
	m.setDefaults()

	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg domain.Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	m.config = &cfg
	return &cfg, nil
}

// Get returns the loaded configuration, or nil before Load.
func (m *Manager) Get() *domain.Config {
	return m.config
}

func (m *Manager) setDefaults() {
	m.v.SetDefault("server.host", "0.0.0.0")
	m.v.SetDefault("server.port", 8080)
	m.v.SetDefault("server.read_timeout", 15*time.Second)
	m.v.SetDefault("server.write_timeout", 15*time.Second)
	m.v.SetDefault("server.idle_timeout", 60*time.Second)
	m.v.SetDefault("server.rate_limit_rps", 20.0)
	m.v.SetDefault("server.rate_limit_burst", 40)

	m.v.SetDefault("database.enabled", false)
	m.v.SetDefault("database.host", "localhost")
	m.v.SetDefault("database.port", 5432)
	m.v.SetDefault("database.database", "hormone_insights")
	m.v.SetDefault("database.username", "postgres")
	m.v.SetDefault("database.ssl_mode", "disable")
	m.v.SetDefault("database.max_open_conns", 10)
	m.v.SetDefault("database.max_idle_conns", 5)
	m.v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	m.v.SetDefault("database.migrations_path", "migrations")

	m.v.SetDefault("cache.enabled", false)
	m.v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	m.v.SetDefault("cache.default_ttl", time.Hour)
	m.v.SetDefault("cache.max_retries", 3)
	m.v.SetDefault("cache.pool_size", 10)
	m.v.SetDefault("cache.pool_timeout", 5*time.Second)

	m.v.SetDefault("engine.current_year", 0)
	m.v.SetDefault("engine.quality_cache_size", 512)

	m.v.SetDefault("corpus.path", "")

	m.v.SetDefault("feedback.backend", "sqlite")
	m.v.SetDefault("feedback.sqlite_path", "feedback.db")

	m.v.SetDefault("logging.level", "info")
	m.v.SetDefault("logging.format", "json")
}

func validate(cfg *domain.Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", domain.ErrInvalidConfig, cfg.Server.Port)
	}
	if cfg.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("%w: rate limit rps must be positive", domain.ErrInvalidConfig)
	}
	if cfg.Database.Enabled && cfg.Database.Host == "" {
		return fmt.Errorf("%w: database enabled without a host", domain.ErrInvalidConfig)
	}
	switch cfg.Feedback.Backend {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: unknown feedback backend %q", domain.ErrInvalidConfig, cfg.Feedback.Backend)
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: unknown logging format %q", domain.ErrInvalidConfig, cfg.Logging.Format)
	}
	return nil
}

// DSN builds the Postgres connection string.
func DSN(db domain.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.Username, db.Password, db.Host, db.Port, db.Database, db.SSLMode)
}
