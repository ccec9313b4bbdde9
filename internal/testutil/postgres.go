package testutil

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// SetupPostgresContainer starts a disposable postgres and returns its DSN.
func SetupPostgresContainer(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()

	container := startContainer(t, "postgres", func() (*postgres.PostgresContainer, error) {
		return postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("booking"),
			postgres.WithUsername("booking"),
			postgres.WithPassword("booking"),
			postgres.BasicWaitStrategies(),
		)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate(ctx, t, "postgres", container)
		t.Skipf("failed to get postgres connection string: %v", err)
	}

	return dsn, func() {
		terminate(ctx, t, "postgres", container)
	}
}
