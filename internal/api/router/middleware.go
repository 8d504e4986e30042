package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-be/internal/api/auth"
	"github.com/rosterhq/roster-be/internal/api/handler"
)

// LoggerMiddleware logs HTTP requests with slog
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP Request",
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", latency),
			slog.Int("body_size", c.Writer.Size()),
		)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				logger.Error("Request error",
					slog.String("error", e.Error()),
				)
			}
		}
	}
}

// CORSMiddleware handles Cross-Origin Resource Sharing
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequireAuth gates a route group behind a valid session. Machine-style
// requests (mutations and partial fetches) get a bare 401; interactive page
// loads get a flash notice and a redirect to the login page.
func RequireAuth(logger *slog.Logger, authService *auth.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			reject(c)
			return
		}

		session, err := authService.Authorize(c.Request.Context(), token)
		if err != nil {
			logger.Debug("Rejected session token", slog.Any("error", err))
			reject(c)
			return
		}

		c.Set(handler.SessionKey, session)
		c.Next()
	}
}

func reject(c *gin.Context) {
	if c.Request.Method != http.MethodGet || handler.IsPartial(c) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}

	handler.SetFlash(c, "Please log in.")
	c.Redirect(http.StatusSeeOther, "/")
	c.Abort()
}
