package api

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/UnknownOlympus/staffbook/internal/models"
)

var errNotNumeric = errors.New("value must be a number or a numeric string")

// flexNumber accepts a JSON number or string and keeps its text form for the service to parse.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = flexNumber(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errNotNumeric
	}
	*n = flexNumber(num.String())

	return nil
}

type createRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	Salary     flexNumber `json:"salary"`
	HireDate   string     `json:"hire_date"`
}

func (r createRequest) toDraft() models.EmployeeDraft {
	return models.EmployeeDraft{
		Name:       r.Name,
		Email:      r.Email,
		Position:   r.Position,
		Department: r.Department,
		Salary:     string(r.Salary),
		HireDate:   r.HireDate,
	}
}

type updateRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	Salary     flexNumber `json:"salary"`
	Status     string     `json:"status"`
}

func (r updateRequest) toPatch() models.EmployeePatch {
	return models.EmployeePatch{
		Name:       r.Name,
		Email:      r.Email,
		Position:   r.Position,
		Department: r.Department,
		Salary:     string(r.Salary),
		Status:     r.Status,
	}
}
