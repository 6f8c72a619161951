// Package pgtest starts a disposable Postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"os"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DSNEnv points tests at an existing database instead of a container
const DSNEnv = "TEST_PG_DSN"

// Start returns a DSN and a stop func. TEST_PG_DSN wins when set
func Start(ctx context.Context) (dsn string, stop func(), err error) {
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn, func() {}, nil
	}

	// first image pull can be slow
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		return "", nil, fmt.Errorf("start postgres container: %w", err)
	}
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}

	host, err := c.Host(ctx)
	if err != nil {
		stop()
		return "", nil, fmt.Errorf("container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		stop()
		return "", nil, fmt.Errorf("mapped port: %w", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	return dsn, stop, nil
}
