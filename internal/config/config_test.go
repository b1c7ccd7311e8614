package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "METADATA_BACKEND", "BLOB_BACKEND", "MAX_UPLOAD_BYTES", "CORS_ALLOWED_ORIGINS", "STORAGE_USE_SSL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, MetadataPostgres, cfg.MetadataBackend)
	assert.Equal(t, BlobMinio, cfg.BlobBackend)
	assert.Zero(t, cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.StorageUseSSL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("METADATA_BACKEND", MetadataSQLite)
	t.Setenv("BLOB_BACKEND", BlobMemory)
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, MetadataSQLite, cfg.MetadataBackend)
	assert.Equal(t, BlobMemory, cfg.BlobBackend)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.StorageUseSSL)
}

func TestInvalidUploadLimitFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	assert.Zero(t, Load().MaxUploadBytes)

	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	assert.Zero(t, Load().MaxUploadBytes)
}
