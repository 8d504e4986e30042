package domain

import (
	"time"

	"github.com/rosterhq/roster-be/internal/api/model"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// WeekStart returns the Monday of the week containing t, truncated to a
// calendar date.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

// WeekDates returns the seven consecutive dates starting at weekStart.
func WeekDates(weekStart time.Time) []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = weekStart.AddDate(0, 0, i)
	}
	return dates
}

// JobSchedule is one job row of the weekly roster with its bookings for the
// week. Assignments is never nil so the job renders even when empty.
type JobSchedule struct {
	Job         model.Job
	Assignments []model.AssignmentDetail
}

// WeekRoster is the weekly view: seven dates and every job in the selected
// state with its bookings.
type WeekRoster struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Dates     []time.Time
	State     string
	Jobs      []JobSchedule
}

// BuildWeekRoster buckets assignments under the jobs that survived the state
// filter, preserving job order. Assignments whose job is not in the filtered
// set are dropped.
func BuildWeekRoster(weekStart time.Time, state string, jobs []model.Job, assignments []model.AssignmentDetail) *WeekRoster {
	roster := &WeekRoster{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 6),
		Dates:     WeekDates(weekStart),
		State:     state,
		Jobs:      make([]JobSchedule, len(jobs)),
	}

	index := make(map[int64]int, len(jobs))
	for i, job := range jobs {
		roster.Jobs[i] = JobSchedule{Job: job, Assignments: []model.AssignmentDetail{}}
		index[job.JobID] = i
	}

	for _, a := range assignments {
		if i, ok := index[a.JobID]; ok {
			roster.Jobs[i].Assignments = append(roster.Jobs[i].Assignments, a)
		}
	}

	return roster
}
