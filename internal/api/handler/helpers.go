package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-be/internal/api/model"
)

// SessionKey is the gin context key under which the auth middleware stores
// the caller's session.
const SessionKey = "session"

const flashCookie = "roster_flash"

// IsPartial reports whether the caller asked for a fragment response instead
// of a full page.
func IsPartial(c *gin.Context) bool {
	return c.Query("format") == "partial"
}

// SessionFromContext returns the session placed by the auth middleware, or
// nil for unauthenticated requests.
func SessionFromContext(c *gin.Context) *model.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*model.Session)
	return session
}

// SetFlash stores a one-shot notice shown on the next rendered page.
func SetFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	return message
}

// RedirectWithFlash sets a notice and sends the browser elsewhere.
func RedirectWithFlash(c *gin.Context, location, message string) {
	SetFlash(c, message)
	c.Redirect(http.StatusSeeOther, location)
}
