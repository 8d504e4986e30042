package model

import "time"

type Employee struct {
	EmployeeID int64  `db:"employee_id"`
	Name       string `db:"name"`
}

type Job struct {
	JobID int64  `db:"job_id"`
	Name  string `db:"name"`
	State string `db:"state"`
}

type JobRole struct {
	JobRoleID int64  `db:"job_role_id"`
	JobID     int64  `db:"job_id"`
	Name      string `db:"name"`
}

type JobAssignment struct {
	JobAssignmentID int64     `db:"job_assignment_id"`
	JobID           int64     `db:"job_id"`
	EmployeeID      int64     `db:"employee_id"`
	JobRoleID       int64     `db:"job_role_id"`
	Date            time.Time `db:"date"`
}

// AssignmentDetail is a JobAssignment joined to its job, employee and role,
// shaped for the weekly roster view.
type AssignmentDetail struct {
	JobAssignmentID int64     `db:"job_assignment_id"`
	JobID           int64     `db:"job_id"`
	JobName         string    `db:"job_name"`
	JobState        string    `db:"job_state"`
	EmployeeID      int64     `db:"employee_id"`
	EmployeeName    string    `db:"employee_name"`
	JobRoleID       int64     `db:"job_role_id"`
	JobRoleName     string    `db:"job_role_name"`
	Date            time.Time `db:"date"`
}

type Client struct {
	ClientID int64  `db:"client_id"`
	Name     string `db:"name"`
}

type Invoice struct {
	InvoiceID int64     `db:"invoice_id"`
	ClientID  int64     `db:"client_id"`
	JobID     int64     `db:"job_id"`
	Amount    float64   `db:"amount"`
	IssuedOn  time.Time `db:"issued_on"`
}

type User struct {
	UserID       int64  `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
