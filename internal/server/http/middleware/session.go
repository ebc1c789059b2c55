package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionIDContextKey is a gin context key for the visitor session
	// identifier.
	SessionIDContextKey = "sessionID"
	sessionCookieName   = "duka_session"
	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// VisitorSession attaches a stable session identifier to every request.
// First-time visitors get a fresh UUID cookie; the identifier scopes the
// cart and any in-flight payment.
func VisitorSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(SessionIDContextKey, sessionID)
		c.Next()
	}
}
