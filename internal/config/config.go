package config

import (
	"fmt"
	"os"
)

const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

type Config struct {
	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string

	// Auth. When AuthJWTSecret is set, callers are resolved from a signed
	// bearer token instead of the plain X-User-Id header.
	AuthJWTSecret string

	// File storage
	StorageBackend string
	UploadsDir     string
	FrontendDir    string

	// S3-compatible object storage (used when StorageBackend == "s3")
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageBackendLocal),
		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
		FrontendDir:    getEnv("FRONTEND_DIR", "frontend/dist"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "casework-uploads"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.StorageBackend {
	case StorageBackendLocal:
	case StorageBackendS3:
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q", StorageBackendLocal, StorageBackendS3)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
