package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/staffbook/internal/export"
	"github.com/UnknownOlympus/staffbook/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/UnknownOlympus/staffbook/internal/services/employees"
	"github.com/labstack/echo/v4"
)

// EmployeeService is the behaviour the handlers need from the service layer.
type EmployeeService interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
	Get(ctx context.Context, identifier int) (models.Employee, error)
	Create(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error)
	Update(ctx context.Context, identifier int, patch models.EmployeePatch) (models.Employee, error)
	Delete(ctx context.Context, identifier int) error
	Stats(ctx context.Context) (models.Stats, error)
}

type EmployeeHandler struct {
	log *slog.Logger
	svc EmployeeService
}

func NewEmployeeHandler(log *slog.Logger, svc EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{log: log.With(slog.String("division", "api")), svc: svc}
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return h.respondError(c, err, "failed to fetch employees")
	}

	return c.JSON(http.StatusOK, list)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return h.respondError(c, models.ErrEmployeeNotFound, "")
	}

	employee, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err, "failed to fetch employee")
	}

	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	employee, err := h.svc.Create(c.Request().Context(), req.toDraft())
	if err != nil {
		return h.respondError(c, err, "failed to create employee")
	}

	return c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return h.respondError(c, models.ErrEmployeeNotFound, "")
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	employee, err := h.svc.Update(c.Request().Context(), id, req.toPatch())
	if err != nil {
		return h.respondError(c, err, "failed to update employee")
	}

	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return h.respondError(c, models.ErrEmployeeNotFound, "")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return h.respondError(c, err, "failed to delete employee")
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "employee deleted"})
}

func (h *EmployeeHandler) StatsHandler(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return h.respondError(c, err, "failed to fetch statistics")
	}

	return c.JSON(http.StatusOK, stats)
}

// ExportHandler streams the filtered employee list as an xlsx workbook.
func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return h.respondError(c, err, "failed to export employees")
	}

	workbook, err := export.BuildWorkbook(list)
	if err != nil {
		return h.respondError(c, err, "failed to export employees")
	}
	defer workbook.Close()

	c.Response().Header().Set(echo.HeaderContentType, export.ContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)

	if err = workbook.Write(c.Response()); err != nil {
		h.log.ErrorContext(c.Request().Context(), "Failed to stream workbook", sl.Err(err))
	}

	return nil
}

// respondError maps service errors to status codes. Unexpected errors are logged and hidden behind fallback.
func (h *EmployeeHandler) respondError(c echo.Context, err error, fallback string) error {
	var vErr *employees.ValidationError

	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: vErr.Reason})
	case errors.Is(err, employees.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid input"})
	case errors.Is(err, models.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: models.ErrEmailTaken.Error()})
	case errors.Is(err, models.ErrValueOutOfRange):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: models.ErrValueOutOfRange.Error()})
	case errors.Is(err, models.ErrEmployeeNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: models.ErrEmployeeNotFound.Error()})
	}

	h.log.ErrorContext(c.Request().Context(), "Request failed",
		slog.String("path", c.Path()), sl.Err(err))

	return c.JSON(http.StatusInternalServerError, errorResponse{Error: fallback})
}

func filterFromQuery(c echo.Context) models.EmployeeFilter {
	return models.EmployeeFilter{
		Department: strings.TrimSpace(c.QueryParam("department")),
		Status:     strings.ToLower(strings.TrimSpace(c.QueryParam("status"))),
	}
}

// parseID reports false for identifiers that cannot name a record; callers answer those with 404.
func parseID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
