package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("FEDERATED_CLIENT_ID", "")
	t.Setenv("ENV", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "architech.sqlite", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.Equal(t, DefaultJWKSURL, cfg.Federated.JWKSURL)
	assert.False(t, cfg.Federated.Enabled())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/test.sqlite")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("FEDERATED_CLIENT_ID", "client-123.apps.example")
	t.Setenv("FEDERATED_JWKS_URL", "https://idp.example/jwks")
	t.Setenv("RATE_LIMIT_RPS", "10")
	t.Setenv("RATE_LIMIT_BURST", "20")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.sqlite", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.True(t, cfg.Federated.Enabled())
	assert.Equal(t, "https://idp.example/jwks", cfg.Federated.JWKSURL)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnv_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadFromEnv_ProductionRejectsCORSWildcard(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS")
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]string{
		"debug": "DEBUG",
		"info":  "INFO",
		"warn":  "WARN",
		"error": "ERROR",
		"bogus": "INFO",
	}
	for in, want := range cases {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel().String(), "level %q", in)
	}
}

func TestLoadDotEnv_FileNotFound(t *testing.T) {
	require.NoError(t, LoadDotEnv("/nonexistent/.env"))
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("# comment\nTEST_DOTENV_KEY=\"quoted value\"\n"), 0644))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "quoted value", os.Getenv("TEST_DOTENV_KEY"))
	_ = os.Unsetenv("TEST_DOTENV_KEY")
}

func TestLoadDotEnv_EnvVarPrecedence(t *testing.T) {
	t.Setenv("TEST_PRECEDENCE_KEY", "from_env")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEST_PRECEDENCE_KEY=from_file\n"), 0644))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "from_env", os.Getenv("TEST_PRECEDENCE_KEY"))
}
