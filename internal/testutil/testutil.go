// Package testutil starts disposable backing stores for integration tests.
// Tests are skipped, not failed, when no container runtime is available.
package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

// startContainer runs start and skips the test if the container cannot be
// brought up. testcontainers panics when no docker host is found, so a panic
// is treated like a start error.
func startContainer[C testcontainers.Container](t *testing.T, name string, start func() (C, error)) C {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start %s container: %v", name, r)
		}
	}()

	container, err := start()
	if err != nil {
		t.Skipf("failed to start %s container: %v", name, err)
	}
	return container
}

// terminate stops a container and logs any error.
func terminate(ctx context.Context, t *testing.T, name string, container testcontainers.Container) {
	if err := container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate %s container: %v", name, err)
	}
}

// SetupRedisContainer starts a disposable redis for the booking ledger store
// and returns a connected client.
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	container := startContainer(t, "redis", func() (*redismodule.RedisContainer, error) {
		return redismodule.Run(ctx, "redis:8-alpine")
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		terminate(ctx, t, "redis", container)
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})

	return client, func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
		terminate(ctx, t, "redis", container)
	}
}
