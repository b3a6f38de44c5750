package config

import "fmt"

// Storage drivers.
const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

// StorageConfig holds uploaded image storage configuration.
type StorageConfig struct {
	// Driver selects the backend (local, s3).
	Driver string
	// UploadDir is the directory used by the local driver.
	UploadDir string
	// PublicBaseURL prefixes local file URLs, e.g. http://localhost:8080/uploads.
	PublicBaseURL string
	// S3Bucket is the bucket used by the s3 driver.
	S3Bucket string
	// S3Region is the bucket region.
	S3Region string
	// S3PublicURL overrides the virtual-hosted bucket URL (CDN, custom endpoint).
	S3PublicURL string
	// MaxUploadBytes limits the accepted image size.
	MaxUploadBytes int64
}

// LoadStorageConfigFromEnv loads storage configuration from environment variables.
func LoadStorageConfigFromEnv() StorageConfig {
	return StorageConfig{
		Driver:         GetEnv("STORAGE_DRIVER", StorageDriverLocal),
		UploadDir:      GetEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:  GetEnv("UPLOAD_PUBLIC_URL", "http://localhost:8080/uploads"),
		S3Bucket:       GetEnv("S3_BUCKET", ""),
		S3Region:       GetEnv("S3_REGION", "us-east-1"),
		S3PublicURL:    GetEnv("S3_PUBLIC_URL", ""),
		MaxUploadBytes: int64(GetEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
	}
}

// Validate validates storage configuration.
func (c StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageDriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER: %s (must be: local, s3)", c.Driver)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be greater than 0")
	}
	return nil
}
