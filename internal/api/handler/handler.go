package handler

import (
	"log/slog"

	"github.com/rosterhq/roster-be/internal/api/auth"
	"github.com/rosterhq/roster-be/internal/api/events"
	"github.com/rosterhq/roster-be/internal/api/storage"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger        *slog.Logger
	Storage       *storage.Storage
	Auth          *auth.Service
	Events        events.Publisher
	DefaultState  string
	SessionCookie string
}
