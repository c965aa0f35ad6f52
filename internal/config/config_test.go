package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/laudos")
	t.Setenv("BODY_LIMIT_BYTES", "2048")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REPORT_NARRATE_ALL_NODULES", "true")

	cfg := Load()

	assert.Equal(t, "/tmp/laudos", cfg.Storage.OutputDir)
	assert.Equal(t, BackendLocal, cfg.Storage.Backend)
	assert.Equal(t, 2048, cfg.BodyLimitBytes)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.True(t, cfg.Report.NarrateAllNodules)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("PORT", "")

	cfg := Load()

	assert.Equal(t, "app/output", cfg.Storage.OutputDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "UTC", cfg.Log.Timezone)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "laudoapi.yaml")
	content := `
port: "9090"
storage:
  backend: minio
  output_dir: /srv/laudos
minio:
  endpoint: minio:9000
  bucket: laudos
report:
  narrate_all_nodules: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Run("file values are applied", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("MINIO_BUCKET", "")

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, BackendMinIO, cfg.Storage.Backend)
		assert.Equal(t, "laudos", cfg.MinIO.Bucket)
		assert.True(t, cfg.Report.NarrateAllNodules)
		assert.Equal(t, "debug", cfg.Log.Level)
		// untouched keys keep their defaults
		assert.Equal(t, "UTC", cfg.Log.Timezone)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("PORT", "7070")
		t.Setenv("MINIO_BUCKET", "other")

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Port)
		assert.Equal(t, "other", cfg.MinIO.Bucket)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("port: [unterminated"), 0o600))
		_, err := LoadFile(bad)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(c *AppConfig) {}},
		{name: "empty port", mutate: func(c *AppConfig) { c.Port = "" }, wantErr: ErrInvalidPort},
		{name: "zero body limit", mutate: func(c *AppConfig) { c.BodyLimitBytes = 0 }, wantErr: ErrInvalidBodyLimit},
		{name: "local without dir", mutate: func(c *AppConfig) { c.Storage.OutputDir = "" }, wantErr: ErrOutputDirRequired},
		{name: "unknown backend", mutate: func(c *AppConfig) { c.Storage.Backend = "ftp" }, wantErr: ErrUnknownBackend},
		{
			name: "minio without bucket",
			mutate: func(c *AppConfig) {
				c.Storage.Backend = BackendMinIO
				c.MinIO.Bucket = ""
			},
			wantErr: ErrMinIOBucketMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := defaults()
	cfg.Log.Timezone = "America/Sao_Paulo"
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())

	cfg.Log.Timezone = "Not/AZone"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
