package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// BackendLocal stores report documents in a directory on the local filesystem.
	BackendLocal = "local"
	// BackendMinIO stores report documents in an S3-compatible bucket.
	BackendMinIO = "minio"
)

var (
	ErrConfigNotFound     = errors.New("configuration file not found")
	ErrOutputDirRequired  = errors.New("invalid storage config: output directory is required for the local backend")
	ErrUnknownBackend     = errors.New("invalid storage config: backend must be \"local\" or \"minio\"")
	ErrInvalidPort        = errors.New("invalid port: must not be empty")
	ErrInvalidBodyLimit   = errors.New("invalid body limit: must be positive")
	ErrMinIOBucketMissing = errors.New("invalid minio config: bucket is required")
)

// StorageConfig selects where generated report documents are kept.
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	OutputDir string `yaml:"output_dir"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// ReportConfig tunes report text generation.
type ReportConfig struct {
	// NarrateAllNodules writes one sentence per nodule instead of only the first one.
	NarrateAllNodules bool `yaml:"narrate_all_nodules"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level    string `yaml:"level"`
	Timezone string `yaml:"timezone"`
}

// AppConfig is the centralized configuration struct for the application.
// Values come from defaults, then an optional YAML file, then environment variables.
type AppConfig struct {
	AppHost        string        `yaml:"app_host"`
	Port           string        `yaml:"port"`
	BodyLimitBytes int           `yaml:"body_limit_bytes"`
	Storage        StorageConfig `yaml:"storage"`
	MinIO          MinIOConfig   `yaml:"minio"`
	Report         ReportConfig  `yaml:"report"`
	Log            LogConfig     `yaml:"log"`
}

func defaults() *AppConfig {
	return &AppConfig{
		AppHost:        "localhost:8080",
		Port:           "8080",
		BodyLimitBytes: 1 << 20,
		Storage: StorageConfig{
			Backend:   BackendLocal,
			OutputDir: "app/output",
		},
		Log: LogConfig{
			Level:    "info",
			Timezone: "UTC",
		},
	}
}

// Load reads configuration from environment variables.
// A .env file is auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	cfg := defaults()
	applyEnv(cfg)
	return cfg
}

// LoadFile reads a YAML configuration file and applies environment overrides on top.
// An empty path behaves like Load. A missing file yields ErrConfigNotFound.
func LoadFile(path string) (*AppConfig, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // operator-provided config path
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ErrConfigNotFound
			}
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	cfg.AppHost = getEnv("APP_HOST", cfg.AppHost)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.BodyLimitBytes = getEnvInt("BODY_LIMIT_BYTES", cfg.BodyLimitBytes)

	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.OutputDir = getEnv("OUTPUT_DIR", cfg.Storage.OutputDir)

	cfg.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.MinIO.AccessKey)
	cfg.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.MinIO.SecretKey)
	cfg.MinIO.Bucket = getEnv("MINIO_BUCKET", cfg.MinIO.Bucket)
	cfg.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", cfg.MinIO.UseSSL)

	cfg.Report.NarrateAllNodules = getEnvBool("REPORT_NARRATE_ALL_NODULES", cfg.Report.NarrateAllNodules)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Timezone = getEnv("APP_TIMEZONE", cfg.Log.Timezone)
}

// Validate checks settings that would otherwise fail late, at first request.
func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return ErrInvalidPort
	}
	if c.BodyLimitBytes <= 0 {
		return ErrInvalidBodyLimit
	}
	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.OutputDir == "" {
			return ErrOutputDirRequired
		}
	case BackendMinIO:
		if c.MinIO.Bucket == "" {
			return ErrMinIOBucketMissing
		}
	default:
		return ErrUnknownBackend
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Log.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
