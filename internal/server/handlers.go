package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Houeta/staff-api/internal/apperror"
	"github.com/Houeta/staff-api/internal/export"
	"github.com/Houeta/staff-api/internal/metrics"
	"github.com/Houeta/staff-api/internal/models"
	"github.com/Houeta/staff-api/internal/services/employees"
	"github.com/gin-gonic/gin"
)

// EmployeeService is the part of the employee service the handlers need.
type EmployeeService interface {
	Create(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error)
	List(ctx context.Context, params employees.ListParams) ([]models.Employee, error)
	ListForExport(ctx context.Context, department, search string) ([]models.Employee, error)
	Update(ctx context.Context, identifier int, req models.UpdateEmployeeRequest) (models.Employee, error)
	Delete(ctx context.Context, identifier int) error
}

// EmployeeHandler exposes the CRUD and export operations over HTTP.
type EmployeeHandler struct {
	service EmployeeService
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewEmployeeHandler(service EmployeeService, log *slog.Logger, mtr *metrics.Metrics) *EmployeeHandler {
	return &EmployeeHandler{service: service, log: log, metrics: mtr}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// writeError maps a service error onto its HTTP status and error body.
func (h *EmployeeHandler) writeError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.ErrInternal
	}

	h.log.WarnContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", appErr.HTTPStatus,
		"code", appErr.Code,
	)

	c.JSON(appErr.HTTPStatus, errorResponse{Code: appErr.Code, Message: appErr.Message})
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (int, error) {
	identifier, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperror.InvalidField("Id", "must be an integer")
	}
	return identifier, nil
}

// Create handles POST /employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapBindingError(err))
		return
	}

	employee, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.EmployeesMutated.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, employee)
}

// List handles GET /employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	// defaults apply only when a parameter is absent; an explicit
	// out-of-range value (including 0) must fail validation
	params := employees.ListParams{
		Department: c.Query("dept"),
		Search:     c.Query("search"),
		Page:       1,
		PerPage:    employees.DefaultPerPage,
	}

	var err error
	if raw := c.Query("page"); raw != "" {
		if params.Page, err = strconv.Atoi(raw); err != nil {
			h.writeError(c, apperror.InvalidField("Page", "must be an integer"))
			return
		}
	}
	if raw := c.Query("per_page"); raw != "" {
		if params.PerPage, err = strconv.Atoi(raw); err != nil {
			h.writeError(c, apperror.InvalidField("Per Page", "must be an integer"))
			return
		}
	}

	result, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update handles PUT /employees/:id.
func (h *EmployeeHandler) Update(c *gin.Context) {
	identifier, err := parseID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var req models.UpdateEmployeeRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapBindingError(err))
		return
	}

	employee, err := h.service.Update(c.Request.Context(), identifier, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.EmployeesMutated.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, employee)
}

// Delete handles DELETE /employees/:id.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	identifier, err := parseID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err = h.service.Delete(c.Request.Context(), identifier); err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.EmployeesMutated.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, messageResponse{Message: "Employee deleted successfully"})
}

// Export handles GET /employees/export. CSV responses are served as an
// attachment, JSON inline; any other fmt value is rejected.
func (h *EmployeeHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("fmt", export.FormatCSV)
	if format != export.FormatCSV && format != export.FormatJSON {
		h.writeError(c, apperror.InvalidField("Fmt", `must be "csv" or "json"`))
		return
	}

	result, err := h.service.ListForExport(c.Request.Context(), c.Query("dept"), c.Query("search"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	payload, contentType, err := export.Render(result, format)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.ExportsTotal.WithLabelValues(format).Inc()

	if format == export.FormatCSV {
		c.Header("Content-Disposition", `attachment; filename=employees.csv`)
	}
	c.Data(http.StatusOK, contentType, payload)
}

// Root handles GET /.
func (h *EmployeeHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: "Employee API up. See /healthz and /metrics."})
}
