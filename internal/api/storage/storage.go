package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rosterhq/roster-be/internal/api/domain"
	"github.com/rosterhq/roster-be/internal/api/model"
	"github.com/rosterhq/roster-be/shared/postgresql"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// NewStorageFromDB wraps an existing connection, used by tests.
func NewStorageFromDB(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// ---- jobs / employees / roles (externally managed reference data) ----

func (s *Storage) GetJob(ctx context.Context, jobID int64) (*model.Job, error) {
	var job model.Job
	query := `SELECT job_id, name, state FROM jobs WHERE job_id = $1`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *Storage) ListJobsByState(ctx context.Context, state string) ([]model.Job, error) {
	query := `SELECT job_id, name, state FROM jobs WHERE state = $1 ORDER BY job_id`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, state); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

func (s *Storage) GetEmployee(ctx context.Context, employeeID int64) (*model.Employee, error) {
	var employee model.Employee
	query := `SELECT employee_id, name FROM employees WHERE employee_id = $1`

	err := s.db.GetContext(ctx, &employee, query, employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &employee, nil
}

// SearchEmployees returns employees whose name contains q, case-insensitively.
// An empty q returns no rows; the caller decides whether to even ask.
func (s *Storage) SearchEmployees(ctx context.Context, q string) ([]model.Employee, error) {
	if q == "" {
		return []model.Employee{}, nil
	}

	query := `SELECT employee_id, name FROM employees WHERE name ILIKE '%' || $1 || '%' ORDER BY name`

	var employees []model.Employee
	if err := s.db.SelectContext(ctx, &employees, query, q); err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}

	return employees, nil
}

func (s *Storage) GetJobRole(ctx context.Context, jobRoleID int64) (*model.JobRole, error) {
	var role model.JobRole
	query := `SELECT job_role_id, job_id, name FROM job_roles WHERE job_role_id = $1`

	err := s.db.GetContext(ctx, &role, query, jobRoleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}

	return &role, nil
}

func (s *Storage) ListJobRolesByJob(ctx context.Context, jobID int64) ([]model.JobRole, error) {
	query := `SELECT job_role_id, job_id, name FROM job_roles WHERE job_id = $1 ORDER BY job_role_id`

	var roles []model.JobRole
	if err := s.db.SelectContext(ctx, &roles, query, jobID); err != nil {
		return nil, fmt.Errorf("failed to list job roles: %w", err)
	}

	return roles, nil
}

// ---- job assignments (bookings) ----

func (s *Storage) GetAssignment(ctx context.Context, assignmentID int64) (*model.JobAssignment, error) {
	var assignment model.JobAssignment
	query := `
		SELECT job_assignment_id, job_id, employee_id, job_role_id, date
		FROM job_assignments
		WHERE job_assignment_id = $1
	`

	err := s.db.GetContext(ctx, &assignment, query, assignmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return &assignment, nil
}

func (s *Storage) CreateAssignment(ctx context.Context, assignment *model.JobAssignment) error {
	query := `
		INSERT INTO job_assignments (job_id, employee_id, job_role_id, date)
		VALUES ($1, $2, $3, $4)
		RETURNING job_assignment_id
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		assignment.JobID,
		assignment.EmployeeID,
		assignment.JobRoleID,
		assignment.Date,
	).Scan(&assignment.JobAssignmentID)

	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

func (s *Storage) UpdateAssignment(ctx context.Context, assignment *model.JobAssignment) error {
	query := `
		UPDATE job_assignments
		SET employee_id = $1, job_role_id = $2
		WHERE job_assignment_id = $3
	`

	res, err := s.db.ExecContext(ctx, query, assignment.EmployeeID, assignment.JobRoleID, assignment.JobAssignmentID)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if rows == 0 {
		return domain.ErrAssignmentNotFound
	}

	return nil
}

func (s *Storage) DeleteAssignment(ctx context.Context, assignmentID int64) error {
	query := `DELETE FROM job_assignments WHERE job_assignment_id = $1`

	res, err := s.db.ExecContext(ctx, query, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if rows == 0 {
		return domain.ErrAssignmentNotFound
	}

	return nil
}

// ListAssignmentsBetween returns assignments with date in [from, to]
// inclusive, joined to job, employee and role for display.
func (s *Storage) ListAssignmentsBetween(ctx context.Context, from, to time.Time) ([]model.AssignmentDetail, error) {
	query := `
		SELECT
			a.job_assignment_id,
			a.job_id,
			j.name AS job_name,
			j.state AS job_state,
			a.employee_id,
			e.name AS employee_name,
			a.job_role_id,
			r.name AS job_role_name,
			a.date
		FROM job_assignments a
		JOIN jobs j ON j.job_id = a.job_id
		JOIN employees e ON e.employee_id = a.employee_id
		JOIN job_roles r ON r.job_role_id = a.job_role_id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.date, a.job_assignment_id
	`

	var assignments []model.AssignmentDetail
	if err := s.db.SelectContext(ctx, &assignments, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// ---- clients / invoices (reference data, read only) ----

func (s *Storage) GetClient(ctx context.Context, clientID int64) (*model.Client, error) {
	var client model.Client
	query := `SELECT client_id, name FROM clients WHERE client_id = $1`

	err := s.db.GetContext(ctx, &client, query, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

func (s *Storage) ListInvoicesByJob(ctx context.Context, jobID int64) ([]model.Invoice, error) {
	query := `
		SELECT invoice_id, client_id, job_id, amount, issued_on
		FROM invoices
		WHERE job_id = $1
		ORDER BY issued_on DESC
	`

	var invoices []model.Invoice
	if err := s.db.SelectContext(ctx, &invoices, query, jobID); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, nil
}

// ---- users / sessions ----

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	query := `SELECT user_id, username, password_hash FROM users WHERE username = $1`

	err := s.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	query := `SELECT user_id, username, password_hash FROM users WHERE user_id = $1`

	err := s.db.GetContext(ctx, &user, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *Storage) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE user_id = $2`

	res, err := s.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query, session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (s *Storage) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	query := `SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = $1`

	err := s.db.GetContext(ctx, &session, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`

	if _, err := s.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
