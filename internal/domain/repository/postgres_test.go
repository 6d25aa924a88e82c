package repository

import (
	"context"
	"testing"

	"github.com/KostiukVM/BlogAPI/internal/platform/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "user",
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_DB":       "blog",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { postgresC.Terminate(ctx) })

	host, err := postgresC.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := postgresC.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	dsn := "postgres://user:password@" + host + ":" + port.Port() + "/blog?sslmode=disable"

	db, err := database.OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	// the schema must be re-runnable
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	t.Run("users", func(t *testing.T) { runUserRepositoryTests(t, db) })
	t.Run("posts and comments", func(t *testing.T) { runPostAndCommentRepositoryTests(t, db) })
	t.Run("tokens", func(t *testing.T) {
		u := seedUser(t, NewSQLUserRepository(db), "pg-token@x.com")
		runTokenRepositoryTests(t, NewSQLTokenRepository(db), u.ID)
	})
}
