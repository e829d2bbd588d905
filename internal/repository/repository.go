package repository

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/staffbook/internal/metrics"
	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation        = "23505"
	numericValueOutOfRange = "22003"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, changes models.EmployeeChanges) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) error
	DepartmentBreakdown(ctx context.Context) ([]models.DepartmentAggregate, error)
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}

// observe records the duration of a query under the given type.
func (r *Repository) observe(queryType string, start time.Time) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// translateError maps driver errors onto the domain sentinels.
func translateError(err error) error {
	var pgErr *pgconn.PgError

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return models.ErrEmployeeNotFound
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return models.ErrEmailTaken
	case errors.As(err, &pgErr) && pgErr.Code == numericValueOutOfRange:
		return models.ErrValueOutOfRange
	default:
		return err
	}
}
