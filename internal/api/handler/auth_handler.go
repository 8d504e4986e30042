package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-be/internal/api/auth"
	"github.com/rosterhq/roster-be/internal/api/domain"
)

// AuthHandler serves login, logout and password change
type AuthHandler struct {
	logger        *slog.Logger
	auth          *auth.Service
	sessionCookie string
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger:        deps.Logger,
		auth:          deps.Auth,
		sessionCookie: deps.SessionCookie,
	}
}

// LoginPage handles GET /
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": PopFlash(c),
	})
}

// Login handles POST /
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	session, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.logger.Warn("Login failed", slog.String("username", username))
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error": "There was an error while logging in.",
		})
		return
	}
	if err != nil {
		h.logger.Error("Login failed", slog.Any("error", err))
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "There was an error while logging in.",
		})
		return
	}

	h.setSessionCookie(c, session.Token, int(session.ExpiresAt.Sub(session.CreatedAt).Seconds()))
	RedirectWithFlash(c, "/roster/", "You have been logged in.")
}

// Logout handles /logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.sessionCookie); err == nil {
		if err := h.auth.Terminate(c.Request.Context(), token); err != nil {
			h.logger.Error("Failed to terminate session", slog.Any("error", err))
		}
	}

	h.setSessionCookie(c, "", -1)
	RedirectWithFlash(c, "/", "You have been logged out.")
}

// ChangePasswordPage handles GET /change-password/
func (h *AuthHandler) ChangePasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "change_password.html", gin.H{
		"Flash": PopFlash(c),
	})
}

// ChangePassword handles POST /change-password/
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session := SessionFromContext(c)

	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password1")
	confirm := c.PostForm("new_password2")

	fresh, err := h.auth.ChangePassword(c.Request.Context(), session, oldPassword, newPassword, confirm)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.HTML(http.StatusOK, "change_password.html", gin.H{
				"Error":       "Please correct the error below.",
				"FieldErrors": verr.Fields,
			})
			return
		}

		h.logger.Error("Password change failed", slog.Any("error", err))
		c.HTML(http.StatusInternalServerError, "change_password.html", gin.H{
			"Error": "Something went wrong. Please try again.",
		})
		return
	}

	h.setSessionCookie(c, fresh.Token, int(fresh.ExpiresAt.Sub(fresh.CreatedAt).Seconds()))
	RedirectWithFlash(c, "/roster/", "Your password was successfully updated!")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCookie, token, maxAge, "/", "", false, true)
}
