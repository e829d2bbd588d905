package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/staffbook/internal/models"
)

// APIError is a non-2xx answer from the records service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the records service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the records service REST API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New returns a client for the API rooted at baseURL, e.g. http://localhost:5000/api.
func New(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log.With(slog.String("division", "client")),
	}
}

func (c *Client) ListEmployees(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	query := url.Values{}
	if filter.Department != "" {
		query.Set("department", filter.Department)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	path := "/employees"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var employees []models.Employee
	if err := c.do(ctx, http.MethodGet, path, nil, &employees); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

func (c *Client) GetEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	var employee models.Employee
	if err := c.do(ctx, http.MethodGet, "/employees/"+strconv.Itoa(identifier), nil, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	return employee, nil
}

func (c *Client) CreateEmployee(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error) {
	var employee models.Employee
	if err := c.do(ctx, http.MethodPost, "/employees", draft, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee %s: %w", draft.Email, err)
	}

	return employee, nil
}

func (c *Client) UpdateEmployee(
	ctx context.Context,
	identifier int,
	patch models.EmployeePatch,
) (models.Employee, error) {
	var employee models.Employee
	if err := c.do(ctx, http.MethodPut, "/employees/"+strconv.Itoa(identifier), patch, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", identifier, err)
	}

	return employee, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, identifier int) error {
	if err := c.do(ctx, http.MethodDelete, "/employees/"+strconv.Itoa(identifier), nil, nil); err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", identifier, err)
	}

	return nil
}

func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return models.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// ExportEmployees streams the xlsx workbook of all employees into w.
func (c *Client) ExportEmployees(ctx context.Context, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/employees/export", nil)
	if err != nil {
		return fmt.Errorf("failed to create new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to export employees: %w", decodeAPIError(resp))
	}

	if _, err = io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	return nil
}

// do sends body as JSON (when non-nil) and decodes a 2xx answer into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create new request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "API call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}

	return apiErr
}
