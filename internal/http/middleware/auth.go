package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/service"
)

const userContextKey = "tracker.user"

// AccessDeniedBody is the full access-error payload; views gated by role get
// this rather than a silent redirect.
var AccessDeniedBody = gin.H{"error": "Access Denied"}

// RequireSession resolves the bearer session token to a user and aborts with
// 401 when the session is missing, malformed, or expired, and 403 when the
// user has been deactivated.
func RequireSession(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := bearerSessionID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := auth.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrUserNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			case errors.Is(err, service.ErrUserInactive):
				c.AbortWithStatusJSON(http.StatusForbidden, AccessDeniedBody)
			default:
				slog.ErrorContext(c.Request.Context(), "failed to validate session", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			}
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. It assumes
// RequireSession already ran.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, AccessDeniedBody)
	}
}

// CurrentUser returns the session user set by RequireSession, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// SetCurrentUser is used by tests to inject a session user.
func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(userContextKey, user)
}

func bearerSessionID(c *gin.Context) (int64, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
