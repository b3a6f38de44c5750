//go:build integration

package realtime

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisBackplane_PublishSubscribe(t *testing.T) {
	url := startRedis(t)
	logger := zap.NewNop().Sugar()

	sub, err := NewRedisBackplane(url, "test:room:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })
	pub, err := NewRedisBackplane(url, "test:room:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	require.NoError(t, sub.Ping(context.Background()))

	type delivery struct {
		ideaID string
		frame  string
	}
	got := make(chan delivery, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sub.Subscribe(ctx, func(ideaID string, frame []byte) {
			select {
			case got <- delivery{ideaID: ideaID, frame: string(frame)}:
			default:
			}
		})
	}()

	// PSubscribe is asynchronous; publish until the subscriber sees a frame.
	require.Eventually(t, func() bool {
		require.NoError(t, pub.Publish(context.Background(), "idea-1", []byte(`{"event":"receive_message"}`)))
		select {
		case d := <-got:
			assert.Equal(t, "idea-1", d.ideaID)
			assert.JSONEq(t, `{"event":"receive_message"}`, d.frame)
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}
