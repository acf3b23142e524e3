package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Variables(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("GRPC_ADDR", ":6000")
	t.Setenv("DATABASE_DSN", "postgres://x")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("TOKEN_VALIDITY", "45m")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("MAX_UPLOAD_BYTES", "1000")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("HEALTH_CHECK_INTERVAL", "1m")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.Equal(t, ":4000", cfg.EndpointAddrHTTP)
	assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, int64(1000), cfg.MaxUploadBytes)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, time.Minute, cfg.HealthCheckInterval)
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestParseEnv_HTTPAddrWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("HTTP_ADDR", "127.0.0.1:4001")

	cfg := &Config{}
	parseEnv(cfg, "")

	assert.Equal(t, "127.0.0.1:4001", cfg.EndpointAddrHTTP)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=from-file\nCORS_ORIGIN=https://file.example\n"), 0o600))

	t.Setenv("CORS_ORIGIN", "https://env.example")

	cfg := &Config{}
	parseEnv(cfg, envFile)

	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, "https://env.example", cfg.CORSOrigin)
}

func TestParseEnv_MissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	cfg := &Config{SecretKey: "keep"}
	require.NotPanics(t, func() { parseEnv(cfg, filepath.Join(t.TempDir(), ".env")) })
	assert.Equal(t, "keep", cfg.SecretKey)
}
