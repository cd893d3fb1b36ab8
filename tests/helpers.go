package tests

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupTestDB starts a throwaway Postgres with testcontainers and applies the schema.
func SetupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	ctx := context.Background()

	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filename))
	migrationsPath := filepath.Join(projectRoot, "migrations")

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.WithInitScripts(filepath.Join(migrationsPath, "001_init.up.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	cleanup := func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// TruncateTables empties every table and resets identities.
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE notification_deliveries, notifications, tasks, projects, team_members
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SeedProject inserts a project and returns its id.
func SeedProject(t *testing.T, pool *pgxpool.Pool, name, status string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO projects (name, status) VALUES ($1, $2) RETURNING id
	`, name, status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}
	return id
}

// SeedTeamMembers inserts count members of one team with display_order 1..count.
func SeedTeamMembers(t *testing.T, pool *pgxpool.Pool, teamID int64, count int) []int64 {
	t.Helper()

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		var id int64
		err := pool.QueryRow(context.Background(), `
			INSERT INTO team_members (name, team_id, pc_name, email, display_order)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, fmt.Sprintf("Member %d", i+1), teamID, fmt.Sprintf("PC-%d", i+1),
			fmt.Sprintf("member%d@example.com", i+1), i+1).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to seed team member: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

// SeedNotifications inserts count unread notifications for pcName.
func SeedNotifications(t *testing.T, pool *pgxpool.Pool, pcName, action string, count int) []string {
	t.Helper()

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var id string
		err := pool.QueryRow(context.Background(), `
			INSERT INTO notifications (id, pc_name, project_name, task_name, action)
			VALUES (gen_random_uuid(), $1, 'Seed project', $2, $3)
			RETURNING id::text
		`, pcName, fmt.Sprintf("Task %d", i+1), action).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to seed notification: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

// CountUnread returns the number of unread notifications for pcName.
func CountUnread(t *testing.T, pool *pgxpool.Pool, pcName string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notifications WHERE pc_name = $1 AND NOT is_read", pcName).Scan(&n); err != nil {
		t.Fatalf("Failed to count notifications: %v", err)
	}
	return n
}

// WaitForCondition polls condition until it holds or timeout elapses.
func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
