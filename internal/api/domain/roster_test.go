package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster-be/internal/api/model"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		day  string
		want string
	}{
		{name: "monday maps to itself", day: "2024-06-10", want: "2024-06-10"},
		{name: "wednesday maps back to monday", day: "2024-06-12", want: "2024-06-10"},
		{name: "sunday maps back six days", day: "2024-06-16", want: "2024-06-10"},
		{name: "saturday maps back five days", day: "2024-06-15", want: "2024-06-10"},
		{name: "month boundary", day: "2024-07-01", want: "2024-07-01"},
		{name: "year boundary", day: "2025-01-01", want: "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(date(tt.day))
			assert.Equal(t, tt.want, got.Format(DateFormat))
		})
	}
}

func TestWeekStart_TruncatesTime(t *testing.T) {
	noon := time.Date(2024, 6, 12, 12, 30, 45, 0, time.UTC)
	got := WeekStart(noon)

	assert.Equal(t, "2024-06-10", got.Format(DateFormat))
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(date("2024-06-10"))

	require.Len(t, dates, 7)
	assert.Equal(t, "2024-06-10", dates[0].Format(DateFormat))
	assert.Equal(t, "2024-06-16", dates[6].Format(DateFormat))
	for i := 1; i < len(dates); i++ {
		assert.Equal(t, 24*time.Hour, dates[i].Sub(dates[i-1]))
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 10, parsed.Day())

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestBuildWeekRoster(t *testing.T) {
	jobs := []model.Job{
		{JobID: 1, Name: "Warehouse fitout", State: "NSW"},
		{JobID: 2, Name: "Office refurb", State: "NSW"},
	}
	assignments := []model.AssignmentDetail{
		{JobAssignmentID: 10, JobID: 1, EmployeeName: "Anna", Date: date("2024-06-10")},
		{JobAssignmentID: 11, JobID: 1, EmployeeName: "Juan", Date: date("2024-06-12")},
		// Job 3 is outside the filtered set and must be dropped.
		{JobAssignmentID: 12, JobID: 3, EmployeeName: "Bob", Date: date("2024-06-11")},
	}

	roster := BuildWeekRoster(date("2024-06-10"), "NSW", jobs, assignments)

	assert.Equal(t, "2024-06-16", roster.WeekEnd.Format(DateFormat))
	assert.Equal(t, "NSW", roster.State)
	require.Len(t, roster.Jobs, 2)

	assert.Equal(t, int64(1), roster.Jobs[0].Job.JobID)
	require.Len(t, roster.Jobs[0].Assignments, 2)
	assert.Equal(t, int64(10), roster.Jobs[0].Assignments[0].JobAssignmentID)
	assert.Equal(t, int64(11), roster.Jobs[0].Assignments[1].JobAssignmentID)

	// A job with no bookings still appears, with an empty, non-nil slice.
	assert.Equal(t, int64(2), roster.Jobs[1].Job.JobID)
	require.NotNil(t, roster.Jobs[1].Assignments)
	assert.Empty(t, roster.Jobs[1].Assignments)
}

func TestBuildWeekRoster_NoJobs(t *testing.T) {
	roster := BuildWeekRoster(date("2024-06-10"), "VIC", nil, []model.AssignmentDetail{
		{JobAssignmentID: 1, JobID: 1, Date: date("2024-06-10")},
	})

	assert.Empty(t, roster.Jobs)
	require.Len(t, roster.Dates, 7)
}
