package middleware

import (
	"net/http"
	"strings"

	"fleetops/internal/auth"
	"fleetops/internal/domain"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Auth restores the session from the bearer token. Requests without a valid
// token are rejected with 401.
func Auth(v auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		s, err := auth.NewSession().Initialize(token, v)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		c.Set(sessionKey, s)
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), s))
		c.Next()
	}
}

// RequireAccess lets the request through only when the session may access resource.
func RequireAccess(resource domain.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).CanAccess(resource) {
			abortJSON(c, http.StatusForbidden, "forbidden", "access to "+string(resource)+" denied")
			return
		}
		c.Next()
	}
}

// RequireRole restricts a route to the given roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := GetSession(c).User()
		if u != nil {
			for _, r := range roles {
				if u.Role == r {
					c.Next()
					return
				}
			}
		}
		abortJSON(c, http.StatusForbidden, "forbidden", "insufficient role")
	}
}

// GetSession returns the request's session, anonymous when none was set.
func GetSession(c *gin.Context) auth.Session {
	if c == nil {
		return auth.NewSession()
	}
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(auth.Session); ok {
			return s
		}
	}
	return auth.NewSession()
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
