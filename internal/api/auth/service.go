package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rosterhq/roster-be/internal/api/domain"
	"github.com/rosterhq/roster-be/internal/api/model"
	"github.com/rosterhq/roster-be/internal/api/storage"
)

// MinPasswordLength is the minimum accepted length for a new password
const MinPasswordLength = 8

// Service is the session/auth gateway. It verifies credentials against the
// users table and keeps sessions as token rows in the sessions table.
type Service struct {
	storage    *storage.Storage
	logger     *slog.Logger
	sessionTTL time.Duration
	bcryptCost int
}

func NewService(st *storage.Storage, logger *slog.Logger, sessionTTL time.Duration, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		storage:    st,
		logger:     logger,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
	}
}

// Authenticate verifies the credentials and establishes a session. A missing
// user and a wrong password both come back as ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User authenticated",
		slog.Int64("user_id", user.UserID),
		slog.String("username", user.Username),
	)

	return session, nil
}

// Authorize resolves a session token, rejecting unknown and expired tokens.
func (s *Service) Authorize(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.storage.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		// Expired rows are useless; drop them eagerly.
		if err := s.storage.DeleteSession(ctx, token); err != nil {
			s.logger.Error("Failed to delete expired session", slog.Any("error", err))
		}
		return nil, domain.ErrSessionExpired
	}

	return session, nil
}

// Terminate destroys the session. Unknown tokens are not an error.
func (s *Service) Terminate(ctx context.Context, token string) error {
	return s.storage.DeleteSession(ctx, token)
}

// ChangePassword verifies the current password, validates and stores the new
// one, then rotates the session so the caller stays logged in under a fresh
// token.
func (s *Service) ChangePassword(ctx context.Context, session *model.Session, oldPassword, newPassword, confirm string) (*model.Session, error) {
	fields := map[string]string{}
	if newPassword != confirm {
		fields["new_password2"] = "The two password fields didn't match."
	}
	if len(newPassword) < MinPasswordLength {
		fields["new_password1"] = fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength)
	}

	user, err := s.storage.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		fields["old_password"] = "Your old password was entered incorrectly."
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.storage.UpdateUserPassword(ctx, user.UserID, string(hash)); err != nil {
		return nil, err
	}

	// Re-bind the session: the old token dies with the old credentials.
	if err := s.storage.DeleteSession(ctx, session.Token); err != nil {
		s.logger.Error("Failed to delete old session", slog.Any("error", err))
	}

	fresh, err := s.createSession(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Password changed", slog.Int64("user_id", user.UserID))

	return fresh, nil
}

func (s *Service) createSession(ctx context.Context, userID int64) (*model.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.storage.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
