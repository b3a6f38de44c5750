package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Backplane fans room frames out to other server instances.
type Backplane interface {
	// Publish sends a frame for a room to every instance.
	Publish(ctx context.Context, ideaID string, frame []byte) error
	// Subscribe delivers frames published by any instance until ctx is done.
	Subscribe(ctx context.Context, deliver func(ideaID string, frame []byte)) error
	// Ping checks the connection.
	Ping(ctx context.Context) error
	// Close releases the connection.
	Close() error
}

// packet is the wire format on the backplane. Origin lets an instance skip
// its own frames, which were already delivered locally.
type packet struct {
	Origin string          `json:"origin"`
	Frame  json.RawMessage `json:"frame"`
}

// RedisBackplane implements Backplane on Redis pub/sub.
type RedisBackplane struct {
	client *redis.Client
	prefix string
	logger *zap.SugaredLogger
}

// NewRedisBackplane connects to the Redis server at url.
func NewRedisBackplane(url, prefix string, logger *zap.SugaredLogger) (*RedisBackplane, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisBackplaneWithClient(redis.NewClient(opt), prefix, logger), nil
}

// NewRedisBackplaneWithClient wraps an existing client.
func NewRedisBackplaneWithClient(client *redis.Client, prefix string, logger *zap.SugaredLogger) *RedisBackplane {
	return &RedisBackplane{client: client, prefix: prefix, logger: logger}
}

// Publish sends the frame to the room channel.
func (b *RedisBackplane) Publish(ctx context.Context, ideaID string, frame []byte) error {
	return b.client.Publish(ctx, b.prefix+ideaID, frame).Err()
}

// Subscribe listens on every room channel and blocks until ctx is done.
func (b *RedisBackplane) Subscribe(ctx context.Context, deliver func(ideaID string, frame []byte)) error {
	sub := b.client.PSubscribe(ctx, b.prefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	b.logger.Infow("Realtime backplane subscribed", "pattern", b.prefix+"*")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			deliver(strings.TrimPrefix(msg.Channel, b.prefix), []byte(msg.Payload))
		}
	}
}

// Ping checks the connection.
func (b *RedisBackplane) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close releases the connection.
func (b *RedisBackplane) Close() error {
	return b.client.Close()
}
