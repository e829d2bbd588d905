package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/UnknownOlympus/staffbook/internal/repository/builder"
	"github.com/jackc/pgx/v5"
)

const employeesTable = "employees"

var errNothingToUpdate = errors.New("failed to update employee data: no fields to change")

var employeeColumns = []string{
	"id", "name", "email", "position", "department", "salary", "hire_date", "status",
}

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var (
		result models.Employee
		status string
	)

	err := row.Scan(
		&result.ID, &result.Name, &result.Email, &result.Position,
		&result.Department, &result.Salary, &result.HireDate, &status,
	)
	if err != nil {
		return models.Employee{}, err
	}
	result.Status = models.Status(status)

	return result, nil
}

// ListEmployees returns the employees matching every non-empty filter field, ordered by ascending id.
func (r *Repository) ListEmployees(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	defer r.observe("list_employees", time.Now())

	query, args, err := builder.Select(employeeColumns...).
		From(employeesTable).
		WhereIf(filter.Department != "", "department = ?", filter.Department).
		WhereIf(filter.Status != "", "status = ?", filter.Status).
		OrderBy("id ASC").
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		employee, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", scanErr)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error) {
	defer r.observe("get_employee_by_id", time.Now())

	query := `SELECT id, name, email, position, department, salary, hire_date, status FROM employees WHERE id = $1`

	result, err := scanEmployee(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", translateError(err))
	}

	return result, nil
}

// SaveEmployee inserts a new employee and returns it with the identifier assigned by the store.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	defer r.observe("save_employee", time.Now())

	query := `
		INSERT INTO employees (name, email, position, department, salary, hire_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, email, position, department, salary, hire_date, status;
	`

	result, err := scanEmployee(r.db.QueryRow(ctx, query,
		employee.Name, employee.Email, employee.Position, employee.Department,
		employee.Salary, employee.HireDate, string(employee.Status),
	))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", translateError(err))
	}

	return result, nil
}

// UpdateEmployee applies the non-nil fields of changes to the employee and returns the updated row.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	changes models.EmployeeChanges,
) (models.Employee, error) {
	defer r.observe("update_employee", time.Now())

	upd := builder.Update(employeesTable)
	if changes.Name != nil {
		upd.Set("name", *changes.Name)
	}
	if changes.Email != nil {
		upd.Set("email", *changes.Email)
	}
	if changes.Position != nil {
		upd.Set("position", *changes.Position)
	}
	if changes.Department != nil {
		upd.Set("department", *changes.Department)
	}
	if changes.Salary != nil {
		upd.Set("salary", *changes.Salary)
	}
	if changes.Status != nil {
		upd.Set("status", string(*changes.Status))
	}

	if !upd.HasAssignments() {
		return models.Employee{}, errNothingToUpdate
	}

	query, args, err := upd.
		SetRaw("updated_at", "CURRENT_TIMESTAMP").
		Where("id = ?", identifier).
		Returning(employeeColumns...).
		Build()
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := scanEmployee(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", translateError(err))
	}

	return result, nil
}

// DeleteEmployee removes the employee with the given identifier.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) error {
	defer r.observe("delete_employee", time.Now())

	query := `DELETE FROM employees WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete employee: %w", models.ErrEmployeeNotFound)
	}

	return nil
}

// DepartmentBreakdown returns the head count and mean salary of every department, ordered by name.
func (r *Repository) DepartmentBreakdown(ctx context.Context) ([]models.DepartmentAggregate, error) {
	defer r.observe("department_breakdown", time.Now())

	query := `
		SELECT department, COUNT(*), COALESCE(AVG(salary), 0)::float8
		FROM employees
		GROUP BY department
		ORDER BY department ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate employees: %w", err)
	}
	defer rows.Close()

	result := make([]models.DepartmentAggregate, 0)
	for rows.Next() {
		var agg models.DepartmentAggregate
		if err = rows.Scan(&agg.Department, &agg.Count, &agg.AverageSalary); err != nil {
			return nil, fmt.Errorf("failed to scan department aggregate: %w", err)
		}
		result = append(result, agg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department aggregates: %w", err)
	}

	return result, nil
}
