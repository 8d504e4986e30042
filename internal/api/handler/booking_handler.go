package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-be/internal/api/domain"
	"github.com/rosterhq/roster-be/internal/api/events"
	"github.com/rosterhq/roster-be/internal/api/model"
	"github.com/rosterhq/roster-be/internal/api/storage"
)

// BookingHandler mutates bookings: create, edit, delete
type BookingHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
	events  events.Publisher
}

// NewBookingHandler creates a new BookingHandler instance
func NewBookingHandler(deps *Dependencies) *BookingHandler {
	return &BookingHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
		events:  deps.Events,
	}
}

// Create handles POST /create/
// Resolves every referenced entity before writing; a missing one rejects the
// whole request with no partial write.
func (h *BookingHandler) Create(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.PostForm("jobid"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid job id")
		return
	}

	employeeID, err := strconv.ParseInt(c.PostForm("employeeid"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid employee id")
		return
	}

	jobRoleID, err := strconv.ParseInt(c.PostForm("jobRoleid"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid job role id")
		return
	}

	date, err := domain.ParseDate(c.PostForm("date"))
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid date")
		return
	}

	ctx := c.Request.Context()

	job, err := h.storage.GetJob(ctx, jobID)
	if h.rejectMissing(c, err, "create booking") {
		return
	}

	employee, err := h.storage.GetEmployee(ctx, employeeID)
	if h.rejectMissing(c, err, "create booking") {
		return
	}

	role, err := h.storage.GetJobRole(ctx, jobRoleID)
	if h.rejectMissing(c, err, "create booking") {
		return
	}

	if role.JobID != job.JobID {
		c.String(http.StatusBadRequest, "Error: %s", domain.ErrRoleJobMismatch)
		return
	}

	assignment := &model.JobAssignment{
		JobID:      job.JobID,
		EmployeeID: employee.EmployeeID,
		JobRoleID:  role.JobRoleID,
		Date:       date,
	}

	if err := h.storage.CreateAssignment(ctx, assignment); err != nil {
		h.logger.Error("Failed to create booking", slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to create booking")
		return
	}

	h.logger.Info("Booking created",
		slog.Int64("job_assignment_id", assignment.JobAssignmentID),
		slog.Int64("job_id", assignment.JobID),
		slog.Int64("employee_id", assignment.EmployeeID),
	)

	events.Emit(ctx, h.logger, h.events, events.NewBookingEvent(events.BookingCreated, assignment))

	c.String(http.StatusOK, "Success")
}

// Edit handles POST /edit/:id
// Only the employee and job role can change; fields left empty keep their
// current value, and job and date are immutable.
func (h *BookingHandler) Edit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid booking id")
		return
	}

	ctx := c.Request.Context()

	assignment, err := h.storage.GetAssignment(ctx, id)
	if h.rejectMissing(c, err, "edit booking") {
		return
	}

	if raw := c.PostForm("employeeid"); raw != "" {
		employeeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "Error: invalid employee id")
			return
		}

		employee, err := h.storage.GetEmployee(ctx, employeeID)
		if h.rejectMissing(c, err, "edit booking") {
			return
		}
		assignment.EmployeeID = employee.EmployeeID
	}

	if raw := c.PostForm("jobRoleid"); raw != "" {
		jobRoleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "Error: invalid job role id")
			return
		}

		role, err := h.storage.GetJobRole(ctx, jobRoleID)
		if h.rejectMissing(c, err, "edit booking") {
			return
		}
		if role.JobID != assignment.JobID {
			c.String(http.StatusBadRequest, "Error: %s", domain.ErrRoleJobMismatch)
			return
		}
		assignment.JobRoleID = role.JobRoleID
	}

	if err := h.storage.UpdateAssignment(ctx, assignment); err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			c.String(http.StatusBadRequest, "Error: %s", err)
			return
		}
		h.logger.Error("Failed to update booking", slog.Int64("id", id), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: failed to update booking")
		return
	}

	h.logger.Info("Booking updated", slog.Int64("job_assignment_id", assignment.JobAssignmentID))

	events.Emit(ctx, h.logger, h.events, events.NewBookingEvent(events.BookingUpdated, assignment))

	c.String(http.StatusOK, "Success")
}

// Delete handles POST /delete/:id
// Deletion is immediate and permanent.
func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Failure")
		return
	}

	ctx := c.Request.Context()

	assignment, err := h.storage.GetAssignment(ctx, id)
	if errors.Is(err, domain.ErrAssignmentNotFound) {
		c.String(http.StatusBadRequest, "Failure")
		return
	}
	if err != nil {
		h.logger.Error("Failed to load booking", slog.Int64("id", id), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Failure")
		return
	}

	if err := h.storage.DeleteAssignment(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			c.String(http.StatusBadRequest, "Failure")
			return
		}
		h.logger.Error("Failed to delete booking", slog.Int64("id", id), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Failure")
		return
	}

	h.logger.Info("Booking deleted", slog.Int64("job_assignment_id", id))

	events.Emit(ctx, h.logger, h.events, events.NewBookingEvent(events.BookingDeleted, assignment))

	SetFlash(c, "Booking deleted.")
	c.String(http.StatusOK, "Success")
}

// rejectMissing converts a not-found error from entity resolution into the
// 400 "Error: <detail>" response; other errors become a 500. Returns true
// when the request has been answered.
func (h *BookingHandler) rejectMissing(c *gin.Context, err error, op string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrJobRoleNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound):
		c.String(http.StatusBadRequest, "Error: %s", err)
	default:
		h.logger.Error("Storage failure", slog.String("op", op), slog.Any("error", err))
		c.String(http.StatusInternalServerError, "Error: internal error")
	}
	return true
}
