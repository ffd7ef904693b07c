package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(10*1024*1024), cfg.Media.MaxImageSize)
	assert.False(t, cfg.Manage.Enabled)
}

func TestLoadProductionDefaultsToJSONLogs(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("MANAGE_API_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "production",
			Database:    DatabaseConfig{Driver: "postgres", Password: "secret"},
			Media:       MediaConfig{MaxImageSize: 1},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Manage.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database = DatabaseConfig{Driver: "sqlite"}
	assert.NoError(t, cfg.Validate())
}

func TestEnvSliceTrimsBlanks(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil))
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	d := DatabaseConfig{Driver: "sqlite", SQLitePath: "catalog.db"}
	assert.Equal(t, "catalog.db?_pragma=foreign_keys(1)", d.DSN())
}
