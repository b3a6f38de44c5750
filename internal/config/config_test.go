package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setupAndRestoreEnv saves original env vars and sets new ones for testing.
func setupAndRestoreEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()
	originalEnv := make(map[string]string)
	for key := range envVars {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	for key, value := range envVars {
		os.Setenv(key, value)
	}
	return func() {
		for key := range envVars {
			os.Unsetenv(key)
		}
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Auth: AuthConfig{
			JWTSecret: "0123456789abcdef0123",
			TokenTTL:  time.Hour,
		},
		Storage: StorageConfig{
			Driver:         StorageDriverLocal,
			UploadDir:      "uploads",
			MaxUploadBytes: 1024,
		},
		Realtime: RealtimeConfig{
			MaxMessageSize: 1024,
		},
		GinMode: "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{
		"SERVER_PORT":    "",
		"LOG_LEVEL":      "",
		"GIN_MODE":       "",
		"STORAGE_DRIVER": "",
		"CLIENT_URL":     "",
	})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{
		"SERVER_PORT":    ":9090",
		"LOG_LEVEL":      "debug",
		"GIN_MODE":       "debug",
		"JWT_SECRET":     "super-secret-signing-key",
		"STORAGE_DRIVER": "s3",
		"S3_BUCKET":      "ideas",
		"REDIS_URL":      "redis://localhost:6379/0",
		"CLIENT_URL":     "http://a.test, http://b.test",
	})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "super-secret-signing-key", cfg.Auth.JWTSecret)
	assert.Equal(t, StorageDriverS3, cfg.Storage.Driver)
	assert.Equal(t, "ideas", cfg.Storage.S3Bucket)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Realtime.RedisURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid server config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config validation failed")
	})

	t.Run("invalid logger config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger config validation failed")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.JWTSecret = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "auth config validation failed")
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Driver = StorageDriverS3
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "storage config validation failed")
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Driver = "ftp"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid STORAGE_DRIVER")
	})

	t.Run("invalid realtime config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Realtime.MaxMessageSize = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "realtime config validation failed")
	})

	t.Run("redis without channel prefix", func(t *testing.T) {
		cfg := validConfig()
		cfg.Realtime.RedisURL = "redis://localhost:6379"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "REALTIME_CHANNEL_PREFIX")
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.GinMode = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid GIN_MODE")
	})

	t.Run("valid gin modes", func(t *testing.T) {
		for _, mode := range []string{"debug", "release", "test"} {
			cfg := validConfig()
			cfg.GinMode = mode
			assert.NoError(t, cfg.Validate(), "mode %s should be valid", mode)
		}
	})
}
