package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	MinIO   MinIOConfig
	Catalog CatalogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	SessionExpiry int // minutes
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // library-covers
	UseSSL    bool   // false for local
	// PublicURL là base URL client dùng để tải cover (CDN hoặc reverse proxy).
	// Để trống thì dùng endpoint của MinIO.
	PublicURL string
}

// CatalogConfig gom các setting riêng của book catalog
type CatalogConfig struct {
	DefaultCoverImg string // cover_url khi book không có ảnh
	DownloadDir     string // thư mục gốc cho cover tải về, mỗi user một thư mục con
	CoverMaxEdge    int    // px, ảnh lớn hơn sẽ được resize trước khi upload
	CoverMaxPixels  int    // width*height tối đa được decode, lớn hơn thì từ chối
	MaxUploadBytes  int64
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", defaultJWTSecret),
			SessionExpiry: getEnvInt("JWT_SESSION_EXPIRY", 60), // 1 hour
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "library-covers"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		Catalog: CatalogConfig{
			DefaultCoverImg: getEnv("DEFAULT_COVER_IMG", "/static/img/default-cover.png"),
			DownloadDir:     getEnv("COVER_DOWNLOAD_DIR", "downloads"),
			CoverMaxEdge:    getEnvInt("COVER_MAX_EDGE", 1200),
			CoverMaxPixels:  getEnvInt("COVER_MAX_PIXELS", 40_000_000),
			MaxUploadBytes:  int64(getEnvInt("COVER_MAX_UPLOAD_MB", 5)) << 20,
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Catalog.DefaultCoverImg == "" {
		return fmt.Errorf("DEFAULT_COVER_IMG must not be empty")
	}
	if c.Catalog.CoverMaxEdge <= 0 {
		return fmt.Errorf("COVER_MAX_EDGE must be positive")
	}
	if c.Catalog.CoverMaxPixels < c.Catalog.CoverMaxEdge*c.Catalog.CoverMaxEdge {
		return fmt.Errorf("COVER_MAX_PIXELS must be at least COVER_MAX_EDGE squared")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.MinIO.AccessKey == "minioadmin" {
			log.Warn().Msg("MinIO is using default credentials")
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
