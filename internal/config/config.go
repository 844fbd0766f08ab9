package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	MinIO    MinIOConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// StoreConfig selects how the course collection is persisted.
// "realtime" uses Redis with a live subscription channel; "postgres"
// is plain request/response with no channel kept open.
type StoreConfig struct {
	Mode   string // realtime | postgres
	Prefix string // namespace for keys, channels and object paths
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	MaxConns int32
	MinConns int32
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// AdminConfig is the single panel credential. Real identity management
// is delegated to an external provider; this only gates the API.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
}

type UploadConfig struct {
	MaxImageBytes int64
	MaxVideoBytes int64
	MaxHTMLBytes  int64
	CoverWidth    int // exact required cover dimensions
	CoverHeight   int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Gamebridge Admin API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Store: StoreConfig{
			Mode:   getEnv("STORE_MODE", "realtime"),
			Prefix: getEnv("STORE_PREFIX", "gamebridge:"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnvInt("PG_PORT", 5432),
			User:     getEnv("PG_USER", "postgres"),
			Password: getEnv("PG_PASSWORD", ""),
			Database: getEnv("PG_DATABASE", "gamebridge"),
			MaxConns: int32(getEnvInt("PG_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("PG_MIN_CONNS", 2)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "gamebridge"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 60),
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", "admin@gamebridge.local"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Upload: UploadConfig{
			MaxImageBytes: int64(getEnvInt("UPLOAD_MAX_IMAGE_MB", 5)) * 1024 * 1024,
			MaxVideoBytes: int64(getEnvInt("UPLOAD_MAX_VIDEO_MB", 100)) * 1024 * 1024,
			MaxHTMLBytes:  int64(getEnvInt("UPLOAD_MAX_HTML_MB", 10)) * 1024 * 1024,
			CoverWidth:    getEnvInt("UPLOAD_COVER_WIDTH", 1280),
			CoverHeight:   getEnvInt("UPLOAD_COVER_HEIGHT", 720),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config before startup.
func (c *Config) Validate() error {
	if c.Store.Mode != "realtime" && c.Store.Mode != "postgres" {
		return fmt.Errorf("STORE_MODE must be realtime or postgres, got %q", c.Store.Mode)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
