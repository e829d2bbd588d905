//go:build integration

package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/UnknownOlympus/staffbook/internal/metrics"
	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/UnknownOlympus/staffbook/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("staffbook"),
		postgres.WithUsername("staffbook"),
		postgres.WithPassword("staffbook"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if termErr := testcontainers.TerminateContainer(container); termErr != nil {
			t.Logf("failed to terminate container: %v", termErr)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := repository.NewDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(stdlib.OpenDBFromPool(pool), filepath.Join("..", "..", "migrations")))

	return pool
}

func TestEmployeeRepository_Integration(t *testing.T) {
	pool := setupPostgres(t)
	repo := repository.NewEmployeeRepository(pool, metrics.NewMetrics(prometheus.NewRegistry()))
	ctx := context.Background()
	hired := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.Employee{
		{Name: "A", Email: "a@example.com", Position: "Dev", Department: "IT", Salary: 1000, HireDate: hired,
			Status: models.StatusActive},
		{Name: "B", Email: "b@example.com", Position: "Dev", Department: "IT", Salary: 2000, HireDate: hired,
			Status: models.StatusInactive},
		{Name: "C", Email: "c@example.com", Position: "Recruiter", Department: "HR", Salary: 3000, HireDate: hired,
			Status: models.StatusActive},
	}

	saved := make([]models.Employee, 0, len(seed))
	for _, e := range seed {
		got, err := repo.SaveEmployee(ctx, e)
		require.NoError(t, err)
		assert.NotZero(t, got.ID)
		assert.Equal(t, e.Email, got.Email)
		assert.InDelta(t, e.Salary, got.Salary, 0.001)
		assert.True(t, e.HireDate.Equal(got.HireDate))
		saved = append(saved, got)
	}

	t.Run("duplicate email keeps the first record", func(t *testing.T) {
		_, err := repo.SaveEmployee(ctx, seed[0])
		require.ErrorIs(t, err, models.ErrEmailTaken)

		first, err := repo.GetEmployeeByID(ctx, saved[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "A", first.Name)
	})

	t.Run("filters intersect and are ordered by id", func(t *testing.T) {
		it, err := repo.ListEmployees(ctx, models.EmployeeFilter{Department: "IT"})
		require.NoError(t, err)
		require.Len(t, it, 2)
		assert.Less(t, it[0].ID, it[1].ID)

		activeIT, err := repo.ListEmployees(ctx, models.EmployeeFilter{Department: "IT", Status: "active"})
		require.NoError(t, err)
		require.Len(t, activeIT, 1)
		assert.Equal(t, "A", activeIT[0].Name)
	})

	t.Run("salary beyond column precision", func(t *testing.T) {
		huge := seed[0]
		huge.Email = "huge@example.com"
		huge.Salary = 1e13

		_, err := repo.SaveEmployee(ctx, huge)
		require.ErrorIs(t, err, models.ErrValueOutOfRange)

		salary := 1e13
		_, err = repo.UpdateEmployee(ctx, saved[0].ID, models.EmployeeChanges{Salary: &salary})
		require.ErrorIs(t, err, models.ErrValueOutOfRange)
	})

	t.Run("breakdown", func(t *testing.T) {
		got, err := repo.DepartmentBreakdown(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.DepartmentAggregate{
			{Department: "HR", Count: 1, AverageSalary: 3000},
			{Department: "IT", Count: 2, AverageSalary: 1500},
		}, got)
	})

	t.Run("update then delete", func(t *testing.T) {
		status := models.StatusInactive
		updated, err := repo.UpdateEmployee(ctx, saved[2].ID, models.EmployeeChanges{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInactive, updated.Status)
		assert.Equal(t, "C", updated.Name)

		require.NoError(t, repo.DeleteEmployee(ctx, saved[2].ID))

		_, err = repo.GetEmployeeByID(ctx, saved[2].ID)
		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
		require.ErrorIs(t, repo.DeleteEmployee(ctx, saved[2].ID), models.ErrEmployeeNotFound)
	})
}
