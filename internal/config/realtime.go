package config

import "fmt"

// RealtimeConfig holds chat relay configuration.
type RealtimeConfig struct {
	// RedisURL enables the cross-instance backplane when set.
	RedisURL string
	// ChannelPrefix namespaces the Redis pub/sub channels.
	ChannelPrefix string
	// MaxMessageSize limits inbound websocket frames in bytes.
	MaxMessageSize int64
}

// LoadRealtimeConfigFromEnv loads realtime configuration from environment variables.
func LoadRealtimeConfigFromEnv() RealtimeConfig {
	return RealtimeConfig{
		RedisURL:       GetEnv("REDIS_URL", ""),
		ChannelPrefix:  GetEnv("REALTIME_CHANNEL_PREFIX", "ideawaves:room:"),
		MaxMessageSize: int64(GetEnvInt("REALTIME_MAX_MESSAGE_SIZE", 64<<10)),
	}
}

// Validate validates realtime configuration.
func (c RealtimeConfig) Validate() error {
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("REALTIME_MAX_MESSAGE_SIZE must be greater than 0")
	}
	if c.RedisURL != "" && c.ChannelPrefix == "" {
		return fmt.Errorf("REALTIME_CHANNEL_PREFIX is required when REDIS_URL is set")
	}
	return nil
}

// CORSConfig holds cross-origin configuration.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API.
	AllowedOrigins []string
}

// LoadCORSConfigFromEnv loads CORS configuration from environment variables.
func LoadCORSConfigFromEnv() CORSConfig {
	return CORSConfig{
		AllowedOrigins: GetEnvSlice("CLIENT_URL", []string{"http://localhost:5173"}),
	}
}
