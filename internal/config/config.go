package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dmitrymomot/blogkit/pkg/logger"
	"github.com/dmitrymomot/blogkit/pkg/store"
)

// EnvPrefix is prepended to environment overrides: server.address is read
// from BLOGKIT_SERVER_ADDRESS.
const EnvPrefix = "BLOGKIT"

var (
	ErrInvalid = errors.New("config: invalid configuration")
	ErrRead    = errors.New("config: failed to read configuration")
)

type Config struct {
	Server   ServerConfig        `mapstructure:"server"`
	Log      LogConfig           `mapstructure:"log"`
	Sentry   logger.SentryConfig `mapstructure:"sentry"`
	Database store.Config        `mapstructure:"database"`
	Redis    RedisConfig         `mapstructure:"redis"`
	Cache    CacheConfig         `mapstructure:"cache"`
	Content  ContentConfig       `mapstructure:"content"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig enables the Redis render cache when URL is set.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type CacheConfig struct {
	// Enabled turns render caching on. Without a Redis URL an in-process
	// LRU is used.
	Enabled    bool          `mapstructure:"enabled"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

type ContentConfig struct {
	Locale           string         `mapstructure:"locale"`
	ExcerptLength    int            `mapstructure:"excerpt_length"`
	ExtraAllowedTags string         `mapstructure:"extra_allowed_tags"`
	MaxSlugAttempts  int            `mapstructure:"max_slug_attempts"`
	MaxSlugLength    int            `mapstructure:"max_slug_length"`
	DefaultCategory  CategoryConfig `mapstructure:"default_category"`
}

type CategoryConfig struct {
	Name string `mapstructure:"name"`
	Slug string `mapstructure:"slug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:blogkit.db")
	v.SetDefault("database.pool.migrations_table", "schema_migrations")
	v.SetDefault("database.pool.max_conns", 10)
	v.SetDefault("database.pool.min_conns", 2)
	v.SetDefault("database.pool.max_conn_lifetime", "30m")
	v.SetDefault("database.pool.max_conn_idle_time", "10m")
	v.SetDefault("database.pool.retry_attempts", 3)
	v.SetDefault("database.pool.retry_interval", "2s")

	v.SetDefault("redis.url", "")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.max_entries", 1024)

	v.SetDefault("content.locale", "")
	v.SetDefault("content.excerpt_length", 250)
	v.SetDefault("content.extra_allowed_tags", "")
	v.SetDefault("content.max_slug_attempts", 100)
	v.SetDefault("content.max_slug_length", 0)
	v.SetDefault("content.default_category.name", "Uncategorized")
	v.SetDefault("content.default_category.slug", "uncategorized")
}

// Load reads defaults, then the YAML (or any viper-supported) file at path
// when path is not empty, then BLOGKIT_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Join(ErrRead, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// a set but empty variable clears the value, e.g. BLOGKIT_REDIS_URL=
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is empty"))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	switch c.Database.Driver {
	case "memory", "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not one of memory, sqlite, postgres", c.Database.Driver))
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required for postgres"))
	}
	if c.Content.ExcerptLength <= 0 {
		errs = append(errs, errors.New("content.excerpt_length must be positive"))
	}
	if c.Content.MaxSlugAttempts <= 0 {
		errs = append(errs, errors.New("content.max_slug_attempts must be positive"))
	}
	if c.Content.DefaultCategory.Slug == "" {
		errs = append(errs, errors.New("content.default_category.slug is empty"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalid}, errs...)...)
	}
	return nil
}
