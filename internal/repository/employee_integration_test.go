package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Houeta/staff-api/internal/metrics"
	"github.com/Houeta/staff-api/internal/models"
	"github.com/Houeta/staff-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const employeesSchema = `
CREATE TABLE IF NOT EXISTS employees (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    age INTEGER NOT NULL CHECK (age BETWEEN 18 AND 100),
    department TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS employees_email_key ON employees (email);
`

// startPostgres spins up a disposable PostgreSQL container and returns
// a pool connected to it.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("staff_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	poolCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(poolCtx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, employeesSchema)
	require.NoError(t, err)

	return pool
}

func TestEmployeeRepository_Integration(t *testing.T) {
	pool := startPostgres(t)
	repo := repository.NewEmployeeRepository(pool, metrics.NewMetrics(prometheus.NewRegistry()))
	ctx := context.Background()

	t.Run("create then get round trip", func(t *testing.T) {
		created, err := repo.CreateEmployee(ctx, "Alice", "alice@example.com", 30, "Engineering")
		require.NoError(t, err)
		assert.Positive(t, created.ID)

		fetched, err := repo.GetEmployeeByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("concurrent duplicate emails yield exactly one success", func(t *testing.T) {
		const writers = 2
		results := make([]error, writers)

		var wgr sync.WaitGroup
		wgr.Add(writers)
		for i := range writers {
			go func() {
				defer wgr.Done()
				_, results[i] = repo.CreateEmployee(ctx, "Dup", "dup@example.com", 40, "Sales")
			}()
		}
		wgr.Wait()

		var successes, duplicates int
		for _, err := range results {
			switch {
			case err == nil:
				successes++
			default:
				require.ErrorIs(t, err, repository.ErrDuplicateEmail)
				duplicates++
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, duplicates)
	})

	t.Run("update without email change never conflicts", func(t *testing.T) {
		created, err := repo.CreateEmployee(ctx, "Carol", "carol@example.com", 35, "Finance")
		require.NoError(t, err)

		created.Age = 36
		require.NoError(t, repo.UpdateEmployee(ctx, created))

		fetched, err := repo.GetEmployeeByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 36, fetched.Age)
		assert.Equal(t, "carol@example.com", fetched.Email)
	})

	t.Run("update to an email held by another row conflicts", func(t *testing.T) {
		first, err := repo.CreateEmployee(ctx, "Dave", "dave@example.com", 41, "Support")
		require.NoError(t, err)
		second, err := repo.CreateEmployee(ctx, "Erin", "erin@example.com", 42, "Support")
		require.NoError(t, err)

		second.Email = first.Email
		require.ErrorIs(t, repo.UpdateEmployee(ctx, second), repository.ErrDuplicateEmail)
	})

	t.Run("delete then get yields not found", func(t *testing.T) {
		created, err := repo.CreateEmployee(ctx, "Frank", "frank@example.com", 50, "Sales")
		require.NoError(t, err)

		require.NoError(t, repo.DeleteEmployee(ctx, created.ID))

		_, err = repo.GetEmployeeByID(ctx, created.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
		require.ErrorIs(t, repo.DeleteEmployee(ctx, created.ID), repository.ErrNotFound)
	})
}

func TestEmployeeRepository_IntegrationFilters(t *testing.T) {
	pool := startPostgres(t)
	repo := repository.NewEmployeeRepository(pool, metrics.NewMetrics(prometheus.NewRegistry()))
	ctx := context.Background()

	const total = 24
	for i := range total {
		department := "Engineering"
		if i%2 == 1 {
			department = "Sales"
		}
		name := fmt.Sprintf("Worker %02d", i)
		email := fmt.Sprintf("worker%02d@example.com", i)
		_, err := repo.CreateEmployee(ctx, name, email, 20+i, department)
		require.NoError(t, err)
	}

	t.Run("department filter", func(t *testing.T) {
		sales, err := repo.ListEmployees(ctx, models.EmployeeFilter{Department: "Sales"})
		require.NoError(t, err)
		assert.Len(t, sales, total/2)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		matched, err := repo.ListEmployees(ctx, models.EmployeeFilter{Search: "wOrKeR 01"})
		require.NoError(t, err)
		require.Len(t, matched, 1)
		assert.Equal(t, "Worker 01", matched[0].Name)
	})

	t.Run("pagination pages concatenate", func(t *testing.T) {
		pageOne, err := repo.ListEmployees(ctx, models.EmployeeFilter{Limit: 10, Offset: 0})
		require.NoError(t, err)
		pageTwo, err := repo.ListEmployees(ctx, models.EmployeeFilter{Limit: 10, Offset: 10})
		require.NoError(t, err)
		combined, err := repo.ListEmployees(ctx, models.EmployeeFilter{Limit: 20, Offset: 0})
		require.NoError(t, err)

		assert.Equal(t, combined, append(pageOne, pageTwo...))
	})
}
