package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"casework-backend/internal/config"
)

func TestValidate_RequiresDatabaseURL(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.StorageBackendLocal}
	assert.Error(t, cfg.Validate())
}

func TestValidate_LocalBackend(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:    "postgres://localhost/casework",
		StorageBackend: config.StorageBackendLocal,
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_S3BackendRequiresCredentials(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:    "postgres://localhost/casework",
		StorageBackend: config.StorageBackendS3,
	}
	assert.Error(t, cfg.Validate())

	cfg.S3AccessKey = "key"
	cfg.S3SecretKey = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:    "postgres://localhost/casework",
		StorageBackend: "ftp",
	}
	assert.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/casework")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.StorageBackendLocal, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadsDir)
}
