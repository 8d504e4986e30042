package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster-be/internal/api/model"
	"github.com/rosterhq/roster-be/shared/logger"
)

type capturePublisher struct {
	bodies       [][]byte
	contentTypes []string
	err          error
}

func (p *capturePublisher) Publish(_ context.Context, body []byte, contentType string) error {
	if p.err != nil {
		return p.err
	}
	p.bodies = append(p.bodies, body)
	p.contentTypes = append(p.contentTypes, contentType)
	return nil
}

func testAssignment() *model.JobAssignment {
	return &model.JobAssignment{
		JobAssignmentID: 42,
		JobID:           1,
		EmployeeID:      2,
		JobRoleID:       3,
		Date:            time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewBookingEvent(t *testing.T) {
	event := NewBookingEvent(BookingCreated, testAssignment())

	assert.Equal(t, BookingCreated, event.Type)
	assert.Equal(t, int64(42), event.JobAssignmentID)
	assert.Equal(t, "2024-06-10", event.Date)
	assert.NotEmpty(t, event.EventID)
	assert.NotEmpty(t, event.OccurredAt)
}

func TestEmit(t *testing.T) {
	pub := &capturePublisher{}
	log := logger.NewDefault().Logger

	Emit(context.Background(), log, pub, NewBookingEvent(BookingDeleted, testAssignment()))

	require.Len(t, pub.bodies, 1)
	assert.Equal(t, "application/json", pub.contentTypes[0])

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(pub.bodies[0], &decoded))
	assert.Equal(t, BookingDeleted, decoded.Type)
	assert.Equal(t, int64(42), decoded.JobAssignmentID)
}

func TestEmit_NilPublisher(t *testing.T) {
	log := logger.NewDefault().Logger

	// Must not panic with publishing disabled.
	Emit(context.Background(), log, nil, NewBookingEvent(BookingCreated, testAssignment()))
}

func TestEmit_PublishFailureIsSwallowed(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	log := logger.NewDefault().Logger

	// Publishing is fire and forget; the caller never sees the error.
	Emit(context.Background(), log, pub, NewBookingEvent(BookingUpdated, testAssignment()))
	assert.Empty(t, pub.bodies)
}
