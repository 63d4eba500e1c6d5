package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Database.Pool.RetryAttempts)
	assert.Equal(t, 2*time.Second, cfg.Database.Pool.RetryInterval)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 250, cfg.Content.ExcerptLength)
	assert.Equal(t, 100, cfg.Content.MaxSlugAttempts)
	assert.Equal(t, "uncategorized", cfg.Content.DefaultCategory.Slug)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9090"
log:
  level: debug
  format: text
database:
  driver: memory
content:
  locale: de_DE
  excerpt_length: 120
  default_category:
    name: Allgemein
    slug: allgemein
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "de_DE", cfg.Content.Locale)
	assert.Equal(t, 120, cfg.Content.ExcerptLength)
	assert.Equal(t, "Allgemein", cfg.Content.DefaultCategory.Name)
	// untouched keys keep defaults
	assert.Equal(t, 100, cfg.Content.MaxSlugAttempts)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BLOGKIT_SERVER_ADDRESS", "127.0.0.1:7000")
	t.Setenv("BLOGKIT_CONTENT_MAX_SLUG_ATTEMPTS", "5")
	t.Setenv("BLOGKIT_DATABASE_POOL_MAX_CONNS", "42")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Content.MaxSlugAttempts)
	assert.Equal(t, int32(42), cfg.Database.Pool.MaxConns)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad level", map[string]string{"BLOGKIT_LOG_LEVEL": "loud"}},
		{"bad format", map[string]string{"BLOGKIT_LOG_FORMAT": "xml"}},
		{"bad driver", map[string]string{"BLOGKIT_DATABASE_DRIVER": "mongo"}},
		{"postgres without dsn", map[string]string{"BLOGKIT_DATABASE_DRIVER": "postgres", "BLOGKIT_DATABASE_DSN": ""}},
		{"zero excerpt", map[string]string{"BLOGKIT_CONTENT_EXCERPT_LENGTH": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load("")
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, config.ErrRead)
}
