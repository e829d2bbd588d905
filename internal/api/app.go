package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/staffbook/internal/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// App wires the echo router for the records API.
type App struct {
	Echo    *echo.Echo
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewApp(log *slog.Logger, metrics *metrics.Metrics) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	return &App{Echo: e, log: log, metrics: metrics}
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	a.Echo.Use(requestLogger(a.log))
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(instrument(a.metrics))
}

// RegisterRoutes mounts the employee and statistics routes under basePath.
func (a *App) RegisterRoutes(basePath string, empHandler *EmployeeHandler) {
	group := a.Echo.Group(basePath)

	group.GET("/employees", empHandler.ListHandler)
	group.POST("/employees", empHandler.CreateHandler)
	group.GET("/employees/export", empHandler.ExportHandler)
	group.GET("/employees/:id", empHandler.GetHandler)
	group.PUT("/employees/:id", empHandler.UpdateHandler)
	group.DELETE("/employees/:id", empHandler.DeleteHandler)
	group.GET("/stats", empHandler.StatsHandler)
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorHandler renders framework errors (unknown route, bad method, panics) in the API error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorResponse{Error: msg})
}
