package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"promo-admin/internal/config"
	"promo-admin/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, config.DatabaseConfig{MaxConnections: 10, MinConnections: 2}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedPromos inserts promos with the given titles, one second apart, oldest first.
func SeedPromos(t *testing.T, pool *pgxpool.Pool, titles ...string) {
	t.Helper()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, title := range titles {
		_, err := pool.Exec(ctx, `
			INSERT INTO promos (judul, harga, deskripsi_1, deskripsi_2, kelebihan_1, kelebihan_2, kelebihan_3, image, created_at, updated_at)
			VALUES ($1, 10000, 'd1', 'd2', 'k1', 'k2', 'k3', $2, $3, $3)`,
			title, fmt.Sprintf("seed-%d.png", i), base.Add(time.Duration(i)*time.Second),
		)
		if err != nil {
			t.Fatalf("failed to seed promo %s: %v", title, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"promos", "menu"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// CountPromos returns the number of promo rows.
func CountPromos(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM promos").Scan(&n); err != nil {
		t.Fatalf("failed to count promos: %v", err)
	}
	return n
}
