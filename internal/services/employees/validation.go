package employees

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/staffbook/internal/models"
)

const dateLayout = "2006-01-02"

// maxSalary is the first value the NUMERIC(14,2) salary column cannot hold.
const maxSalary = 1e12

// ValidationError describes why a request was rejected. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// validateDraft checks that every field is present and coerces salary and hire date.
func validateDraft(draft models.EmployeeDraft) (models.Employee, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"name", draft.Name},
		{"email", draft.Email},
		{"position", draft.Position},
		{"department", draft.Department},
		{"salary", draft.Salary},
		{"hire_date", draft.HireDate},
	}

	var missing []string
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return models.Employee{}, invalidf("missing required fields: %s", strings.Join(missing, ", "))
	}

	email := strings.TrimSpace(draft.Email)
	if !isValidEmail(email) {
		return models.Employee{}, invalidf("invalid email %q", email)
	}

	salary, err := parseSalary(draft.Salary)
	if err != nil {
		return models.Employee{}, err
	}

	hireDate, err := parseHireDate(draft.HireDate)
	if err != nil {
		return models.Employee{}, err
	}

	return models.Employee{
		Name:       strings.TrimSpace(draft.Name),
		Email:      email,
		Position:   strings.TrimSpace(draft.Position),
		Department: strings.TrimSpace(draft.Department),
		Salary:     salary,
		HireDate:   hireDate,
		Status:     models.StatusActive,
	}, nil
}

// validatePatch keeps the non-empty fields of patch and coerces them.
func validatePatch(patch models.EmployeePatch) (models.EmployeeChanges, error) {
	var changes models.EmployeeChanges

	if v := strings.TrimSpace(patch.Name); v != "" {
		changes.Name = &v
	}
	if v := strings.TrimSpace(patch.Email); v != "" {
		if !isValidEmail(v) {
			return models.EmployeeChanges{}, invalidf("invalid email %q", v)
		}
		changes.Email = &v
	}
	if v := strings.TrimSpace(patch.Position); v != "" {
		changes.Position = &v
	}
	if v := strings.TrimSpace(patch.Department); v != "" {
		changes.Department = &v
	}
	if strings.TrimSpace(patch.Salary) != "" {
		salary, err := parseSalary(patch.Salary)
		if err != nil {
			return models.EmployeeChanges{}, err
		}
		changes.Salary = &salary
	}
	if v := strings.TrimSpace(patch.Status); v != "" {
		status := models.Status(strings.ToLower(v))
		if !status.Valid() {
			return models.EmployeeChanges{}, invalidf("status must be %q or %q",
				models.StatusActive, models.StatusInactive)
		}
		changes.Status = &status
	}

	if changes.IsEmpty() {
		return models.EmployeeChanges{}, invalidf("no fields to update")
	}

	return changes, nil
}

func parseSalary(raw string) (float64, error) {
	salary, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return 0, invalidf("salary must be a number")
	}
	if salary < 0 {
		return 0, invalidf("salary must not be negative")
	}
	if math.Round(salary*100)/100 >= maxSalary {
		return 0, invalidf("salary is out of range")
	}

	return salary, nil
}

// parseHireDate accepts a calendar date or an RFC 3339 timestamp and keeps only the date part.
func parseHireDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if date, err := time.Parse(dateLayout, raw); err == nil {
		return date, nil
	}

	stamp, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, invalidf("hire_date must be YYYY-MM-DD")
	}

	return time.Date(stamp.Year(), stamp.Month(), stamp.Day(), 0, 0, 0, 0, time.UTC), nil
}

// isValidEmail checks if the given email address is valid.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
