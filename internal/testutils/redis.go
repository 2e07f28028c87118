// Package testutils provides Redis instances for tests that need a real
// server rather than redismock.
package testutils

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testDB keeps test keys away from anything else on a shared server
const testDB = 15

var (
	containerOnce sync.Once
	containerAddr string
	containerErr  error
)

// StartRedisContainer starts one Redis container for the whole test run and
// returns a client on the test database. The container lives until the
// process exits; the client is closed and the database flushed via
// t.Cleanup.
func StartRedisContainer(t *testing.T) redis.UniversalClient {
	t.Helper()

	containerOnce.Do(func() {
		containerAddr, containerErr = startRedis()
	})
	if containerErr != nil {
		t.Skipf("Redis container unavailable: %v", containerErr)
	}

	return connect(t, containerAddr)
}

func startRedis() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", host, port.Port())
	if err := WaitForRedis(addr, 10*time.Second); err != nil {
		return "", err
	}
	return addr, nil
}

// CreateTestRedisClient connects to an already running Redis at addr and
// skips the test when it is not reachable
func CreateTestRedisClient(t *testing.T, addr string) redis.UniversalClient {
	t.Helper()
	return connect(t, addr)
}

func connect(t *testing.T, addr string) redis.UniversalClient {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   testDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}

	require.NoError(t, client.FlushDB(ctx).Err(), "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

// WaitForRedis waits for Redis to be ready or times out
func WaitForRedis(addr string, timeout time.Duration) error {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   testDB,
	})
	defer client.Close()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		err := client.Ping(ctx).Err()
		cancel()

		if err == nil {
			return nil
		}

		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("redis not ready after %v", timeout)
}
