package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/UnknownOlympus/staffbook/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffbook/internal/metrics"
	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/UnknownOlympus/staffbook/internal/repository"
)

// ErrInvalidInput marks requests rejected before reaching the store.
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewService(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Service {
	return &Service{log: log, repo: repo, metrics: metrics}
}

func (s *Service) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// List returns the employees matching the filter, ordered by ascending id.
func (s *Service) List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	const opn = "Employee.List"
	log := s.initLogger(opn)

	employees, err := s.repo.ListEmployees(ctx, filter)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list employees", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	log.DebugContext(ctx, "Employees listed",
		"department", filter.Department, "status", filter.Status, "count", len(employees))

	return employees, nil
}

// Get returns a single employee or models.ErrEmployeeNotFound.
func (s *Service) Get(ctx context.Context, identifier int) (models.Employee, error) {
	const opn = "Employee.Get"

	employee, err := s.repo.GetEmployeeByID(ctx, identifier)
	if err != nil {
		if !errors.Is(err, models.ErrEmployeeNotFound) {
			s.initLogger(opn).ErrorContext(ctx, "Failed to get employee", "id", identifier, sl.Err(err))
		}
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	return employee, nil
}

// Create validates and coerces the draft, then persists it with the default status.
func (s *Service) Create(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	employee, err := validateDraft(draft)
	if err != nil {
		log.DebugContext(ctx, "Rejected employee draft", sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	saved, err := s.repo.SaveEmployee(ctx, employee)
	if err != nil {
		if isClientError(err) {
			log.InfoContext(ctx, "Store rejected employee", "email", employee.Email, sl.Err(err))
		} else {
			log.ErrorContext(ctx, "Failed to save employee", sl.Err(err))
		}
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	s.metrics.EmployeeMutations.WithLabelValues("create").Inc()
	log.InfoContext(ctx, "Employee created", "id", saved.ID, "department", saved.Department)

	return saved, nil
}

// Update applies the non-empty fields of patch. An all-empty patch is rejected without touching the store.
func (s *Service) Update(ctx context.Context, identifier int, patch models.EmployeePatch) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)

	changes, err := validatePatch(patch)
	if err != nil {
		log.DebugContext(ctx, "Rejected employee patch", "id", identifier, sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	updated, err := s.repo.UpdateEmployee(ctx, identifier, changes)
	if err != nil {
		if !isClientError(err) {
			log.ErrorContext(ctx, "Failed to update employee", "id", identifier, sl.Err(err))
		}
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	s.metrics.EmployeeMutations.WithLabelValues("update").Inc()
	log.InfoContext(ctx, "Employee updated", "id", identifier)

	return updated, nil
}

// Delete removes the employee or returns models.ErrEmployeeNotFound.
func (s *Service) Delete(ctx context.Context, identifier int) error {
	const opn = "Employee.Delete"
	log := s.initLogger(opn)

	if err := s.repo.DeleteEmployee(ctx, identifier); err != nil {
		if !errors.Is(err, models.ErrEmployeeNotFound) {
			log.ErrorContext(ctx, "Failed to delete employee", "id", identifier, sl.Err(err))
		}
		return fmt.Errorf("%s: %w", opn, err)
	}

	s.metrics.EmployeeMutations.WithLabelValues("delete").Inc()
	log.InfoContext(ctx, "Employee deleted", "id", identifier)

	return nil
}

// Stats aggregates head count and mean salary per department.
// Means are rounded half away from zero.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	const opn = "Employee.Stats"

	groups, err := s.repo.DepartmentBreakdown(ctx)
	if err != nil {
		s.initLogger(opn).ErrorContext(ctx, "Failed to aggregate employees", sl.Err(err))
		return models.Stats{}, fmt.Errorf("%s: %w", opn, err)
	}

	stats := models.Stats{DepartmentBreakdown: make([]models.DepartmentStats, 0, len(groups))}
	for _, group := range groups {
		stats.TotalEmployees += group.Count
		stats.DepartmentBreakdown = append(stats.DepartmentBreakdown, models.DepartmentStats{
			Department:    group.Department,
			Count:         group.Count,
			AverageSalary: roundSalary(group.AverageSalary),
		})
	}

	return stats, nil
}

// isClientError reports store rejections caused by the submitted data.
func isClientError(err error) bool {
	return errors.Is(err, models.ErrEmployeeNotFound) ||
		errors.Is(err, models.ErrEmailTaken) ||
		errors.Is(err, models.ErrValueOutOfRange)
}

func roundSalary(avg float64) int64 {
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0
	}

	return int64(math.Round(avg))
}
