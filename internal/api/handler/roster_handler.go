package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-be/internal/api/domain"
	"github.com/rosterhq/roster-be/internal/api/storage"
)

// RosterHandler serves the weekly roster and the booking form fragments
type RosterHandler struct {
	logger       *slog.Logger
	storage      *storage.Storage
	defaultState string
}

// NewRosterHandler creates a new RosterHandler instance
func NewRosterHandler(deps *Dependencies) *RosterHandler {
	return &RosterHandler{
		logger:       deps.Logger,
		storage:      deps.Storage,
		defaultState: deps.DefaultState,
	}
}

// Roster handles GET /roster/
// Renders the weekly roster as a full page, or as a table fragment when the
// caller asks for format=partial.
func (h *RosterHandler) Roster(c *gin.Context) {
	weekStart := domain.WeekStart(time.Now())
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "Error: invalid week_start date")
			return
		}
		weekStart = parsed
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	state := c.Query("state")
	if state == "" {
		state = h.defaultState
	}

	jobs, err := h.storage.ListJobsByState(c.Request.Context(), state)
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("state", state), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to load roster")
		return
	}

	assignments, err := h.storage.ListAssignmentsBetween(c.Request.Context(), weekStart, weekEnd)
	if err != nil {
		h.logger.Error("Failed to list assignments", slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to load roster")
		return
	}

	roster := domain.BuildWeekRoster(weekStart, state, jobs, assignments)

	if IsPartial(c) {
		c.HTML(http.StatusOK, "roster_table.html", gin.H{
			"Roster": roster,
		})
		return
	}

	c.HTML(http.StatusOK, "roster.html", gin.H{
		"Roster": roster,
		"Flash":  PopFlash(c),
	})
}

// ViewBooking handles GET /roster/booking/:id
// Renders the edit form fragment for an existing booking.
func (h *RosterHandler) ViewBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid booking id")
		return
	}

	assignment, err := h.storage.GetAssignment(c.Request.Context(), id)
	if errors.Is(err, domain.ErrAssignmentNotFound) {
		c.String(http.StatusNotFound, "Error: booking not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to load booking", slog.Int64("id", id), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to load booking")
		return
	}

	roles, err := h.storage.ListJobRolesByJob(c.Request.Context(), assignment.JobID)
	if err != nil {
		h.logger.Error("Failed to load job roles", slog.Int64("job_id", assignment.JobID), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to load booking")
		return
	}

	c.HTML(http.StatusOK, "booking_edit.html", gin.H{
		"Assignment": assignment,
		"JobRoles":   roles,
		"Date":       assignment.Date.Format(domain.DateFormat),
	})
}

// AddBooking handles GET /addBooking/:jobId/:date/
// Renders the new-booking form fragment for a job and date.
func (h *RosterHandler) AddBooking(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid job id")
		return
	}

	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid date")
		return
	}

	job, err := h.storage.GetJob(c.Request.Context(), jobID)
	if errors.Is(err, domain.ErrJobNotFound) {
		c.String(http.StatusNotFound, "Error: job not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to load job", slog.Int64("job_id", jobID), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to load job")
		return
	}

	roles, err := h.storage.ListJobRolesByJob(c.Request.Context(), jobID)
	if err != nil {
		h.logger.Error("Failed to load job roles", slog.Int64("job_id", jobID), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to load job roles")
		return
	}

	c.HTML(http.StatusOK, "booking_new.html", gin.H{
		"Job":      job,
		"JobRoles": roles,
		"Date":     date.Format(domain.DateFormat),
	})
}
