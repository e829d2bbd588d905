package models

import (
	"errors"
	"time"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrValueOutOfRange  = errors.New("value out of range")
)

// Status is the employment state of an employee record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Employee represents a persisted employee record.
type Employee struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"` // monthly
	HireDate   time.Time `json:"hire_date"`
	Status     Status    `json:"status"`
}

// EmployeeFilter holds optional equality constraints for listing. Empty fields are ignored.
type EmployeeFilter struct {
	Department string
	Status     string
}

// EmployeeChanges is a partial update. Nil fields are left unchanged.
type EmployeeChanges struct {
	Name       *string
	Email      *string
	Position   *string
	Department *string
	Salary     *float64
	Status     *Status
}

// IsEmpty reports whether no field is set.
func (c EmployeeChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.Position == nil &&
		c.Department == nil && c.Salary == nil && c.Status == nil
}

// EmployeeDraft is the wire shape of a creation request as sent by clients.
// Salary and hire date stay textual; the service coerces them.
type EmployeeDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Salary     string `json:"salary"`
	HireDate   string `json:"hire_date"`
}

// EmployeePatch is the wire shape of an update request. Empty fields are omitted.
type EmployeePatch struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	Salary     string `json:"salary,omitempty"`
	Status     string `json:"status,omitempty"`
}
