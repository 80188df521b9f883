package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "petspotter", cfg.App.Name)
	assert.Equal(t, StorageMySQL, cfg.Storage.Driver)
	assert.Equal(t, FilterDialectExact, cfg.Listing.FilterDialect)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
port = 9090

[listing]
filter_dialect = "pattern"

[mysql]
user = "pets"
password = "secret"
db = "pets"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("RESET_DB", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, FilterDialectPattern, cfg.Listing.FilterDialect)
	assert.True(t, cfg.Seed.ResetDB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "pets:secret@tcp(db.internal:3306)/pets?parseTime=true&loc=UTC&charset=utf8mb4", cfg.MySQLDSN())
}

func TestLoad_PortEnvWins(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("APP_PORT", "7000")
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.App.Port)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MYSQL_PORT", "not-a-number")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_ResetDBFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "true", want: true},
		{raw: "1", want: true},
		{raw: "yes", want: true},
		{raw: "1x", want: true},
		{raw: "false", want: false},
		{raw: "0", want: false},
		{raw: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
			t.Setenv("RESET_DB", tt.raw)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Seed.ResetDB)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "unknown dialect",
			mutate:  func(c *Config) { c.Listing.FilterDialect = "regex" },
			wantErr: `unknown listing filter dialect "regex"`,
		},
		{
			name:    "unknown storage",
			mutate:  func(c *Config) { c.Storage.Driver = "mongo" },
			wantErr: `unknown storage driver "mongo"`,
		},
		{
			name: "s3 without bucket",
			mutate: func(c *Config) {
				c.Media.Driver = MediaS3
				c.Media.Bucket = ""
			},
			wantErr: "media bucket is required",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.App.Port = 0 },
			wantErr: "invalid app port 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
