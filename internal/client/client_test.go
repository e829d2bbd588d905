package client_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/UnknownOlympus/staffbook/internal/api"
	"github.com/UnknownOlympus/staffbook/internal/client"
	"github.com/UnknownOlympus/staffbook/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffbook/internal/metrics"
	"github.com/UnknownOlympus/staffbook/internal/models"
	mocks "github.com/UnknownOlympus/staffbook/mock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) (*client.Client, *mocks.EmployeeService) {
	t.Helper()

	logger := sl.Discard()
	svc := mocks.NewEmployeeService(t)

	app := api.NewApp(logger, metrics.NewMetrics(prometheus.NewRegistry()))
	app.RegisterMiddlewares()
	app.RegisterRoutes("/api", api.NewEmployeeHandler(logger, svc))

	ts := httptest.NewServer(app.Echo)
	t.Cleanup(ts.Close)

	return client.New(ts.URL+"/api/", ts.Client(), logger), svc
}

var hired = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func TestClient_ListEmployees(t *testing.T) {
	t.Parallel()

	c, svc := newAPI(t)
	expected := []models.Employee{{ID: 1, Name: "Ann", Department: "IT", HireDate: hired, Status: models.StatusActive}}
	svc.On("List", mock.Anything, models.EmployeeFilter{Department: "Finance & Ops", Status: "active"}).
		Return(expected, nil).Once()

	got, err := c.ListEmployees(context.Background(), models.EmployeeFilter{Department: "Finance & Ops", Status: "active"})

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestClient_GetEmployee_NotFound(t *testing.T) {
	t.Parallel()

	c, svc := newAPI(t)
	svc.On("Get", mock.Anything, 8).Return(models.Employee{}, models.ErrEmployeeNotFound).Once()

	_, err := c.GetEmployee(context.Background(), 8)

	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "employee not found", apiErr.Message)
}

func TestClient_CreateEmployee(t *testing.T) {
	t.Parallel()

	c, svc := newAPI(t)
	draft := models.EmployeeDraft{
		Name: "Ann", Email: "ann@example.com", Position: "Dev", Department: "IT", Salary: "1000", HireDate: "2024-01-15",
	}
	created := models.Employee{ID: 5, Name: "Ann", Email: "ann@example.com", Position: "Dev", Department: "IT",
		Salary: 1000, HireDate: hired, Status: models.StatusActive}
	svc.On("Create", mock.Anything, draft).Return(created, nil).Once()

	got, err := c.CreateEmployee(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestClient_CreateEmployee_Duplicate(t *testing.T) {
	t.Parallel()

	c, svc := newAPI(t)
	svc.On("Create", mock.Anything, mock.Anything).Return(models.Employee{}, models.ErrEmailTaken).Once()

	_, err := c.CreateEmployee(context.Background(), models.EmployeeDraft{Email: "dup@example.com"})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "email already registered", apiErr.Message)
}

func TestClient_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	c, svc := newAPI(t)
	svc.On("Update", mock.Anything, 2, models.EmployeePatch{Status: "inactive"}).
		Return(models.Employee{ID: 2, Status: models.StatusInactive}, nil).Once()
	svc.On("Delete", mock.Anything, 2).Return(nil).Once()

	updated, err := c.UpdateEmployee(context.Background(), 2, models.EmployeePatch{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, updated.Status)

	require.NoError(t, c.DeleteEmployee(context.Background(), 2))
}

func TestClient_Stats(t *testing.T) {
	t.Parallel()

	c, svc := newAPI(t)
	expected := models.Stats{
		TotalEmployees:      3,
		DepartmentBreakdown: []models.DepartmentStats{{Department: "IT", Count: 3, AverageSalary: 1500}},
	}
	svc.On("Stats", mock.Anything).Return(expected, nil).Once()

	got, err := c.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestClient_ServerUnreachable(t *testing.T) {
	t.Parallel()

	c := client.New("http://127.0.0.1:1", http.DefaultClient, sl.Discard())

	_, err := c.Stats(context.Background())

	require.Error(t, err)
	assert.False(t, client.IsNotFound(err))
}

func TestClient_ExportEmployees(t *testing.T) {
	t.Parallel()

	c, svc := newAPI(t)
	svc.On("List", mock.Anything, models.EmployeeFilter{}).
		Return([]models.Employee{{ID: 1, Name: "Ann", HireDate: hired, Status: models.StatusActive}}, nil).Once()

	var buf bytes.Buffer
	err := c.ExportEmployees(context.Background(), &buf)

	require.NoError(t, err)
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}
