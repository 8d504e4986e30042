package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-be/internal/api/model"
	"github.com/rosterhq/roster-be/internal/api/storage"
)

// LookupHandler serves the asynchronous lookups: employee search and job
// role listing.
type LookupHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

// NewLookupHandler creates a new LookupHandler instance
func NewLookupHandler(deps *Dependencies) *LookupHandler {
	return &LookupHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
	}
}

// Employees handles GET /employees/
// An empty search box yields no results rather than the whole staff list.
func (h *LookupHandler) Employees(c *gin.Context) {
	q := c.Query("q")

	employees := []model.Employee{}
	if q != "" {
		var err error
		employees, err = h.storage.SearchEmployees(c.Request.Context(), q)
		if err != nil {
			h.logger.Error("Failed to search employees", slog.String("q", q), slog.Any("error", err))
			c.String(http.StatusInternalServerError, "Error: failed to search employees")
			return
		}
	}

	if IsPartial(c) {
		c.HTML(http.StatusOK, "employee_results.html", gin.H{
			"Employees": employees,
		})
		return
	}

	c.HTML(http.StatusOK, "employees.html", gin.H{
		"Employees": employees,
		"Query":     q,
		"Flash":     PopFlash(c),
	})
}

// JobRoles handles GET /getJobRoles/:jobId
// Returns the role dropdown fragment for a job. An unknown job simply has no
// roles.
func (h *LookupHandler) JobRoles(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid job id")
		return
	}

	roles, err := h.storage.ListJobRolesByJob(c.Request.Context(), jobID)
	if err != nil {
		h.logger.Error("Failed to list job roles", slog.Int64("job_id", jobID), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to list job roles")
		return
	}

	c.HTML(http.StatusOK, "job_roles.html", gin.H{
		"JobRoles": roles,
	})
}
