package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rosterhq/roster-be/internal/api/domain"
	"github.com/rosterhq/roster-be/internal/api/model"
)

// Booking event types
const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
	BookingDeleted = "booking.deleted"
)

// Publisher is the subset of the RabbitMQ client used here.
type Publisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// BookingEvent is the message emitted after a successful booking mutation.
type BookingEvent struct {
	EventID         string `json:"event_id"`
	Type            string `json:"type"`
	JobAssignmentID int64  `json:"job_assignment_id"`
	JobID           int64  `json:"job_id"`
	EmployeeID      int64  `json:"employee_id"`
	JobRoleID       int64  `json:"job_role_id"`
	Date            string `json:"date"`
	OccurredAt      string `json:"occurred_at"`
}

// NewBookingEvent builds an event from an assignment row.
func NewBookingEvent(eventType string, assignment *model.JobAssignment) BookingEvent {
	return BookingEvent{
		EventID:         uuid.New().String(),
		Type:            eventType,
		JobAssignmentID: assignment.JobAssignmentID,
		JobID:           assignment.JobID,
		EmployeeID:      assignment.EmployeeID,
		JobRoleID:       assignment.JobRoleID,
		Date:            assignment.Date.Format(domain.DateFormat),
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

// Emit publishes the event, fire and forget. A nil publisher disables
// publishing; failures are logged and never fail the originating request.
func Emit(ctx context.Context, logger *slog.Logger, pub Publisher, event BookingEvent) {
	if pub == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode booking event",
			slog.String("type", event.Type),
			slog.Any("error", err),
		)
		return
	}

	if err := pub.Publish(ctx, body, "application/json"); err != nil {
		logger.Error("Failed to publish booking event",
			slog.String("type", event.Type),
			slog.Int64("job_assignment_id", event.JobAssignmentID),
			slog.Any("error", err),
		)
		return
	}

	logger.Debug("Booking event published",
		slog.String("type", event.Type),
		slog.Int64("job_assignment_id", event.JobAssignmentID),
	)
}
