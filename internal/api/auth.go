package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapedtime/wsindex/internal/config"
	"github.com/shapedtime/wsindex/internal/digest"
)

const authRealm = "wsindex API"

// basicAuth holds the configured API credentials
type basicAuth struct {
	username     string
	passwordHash string
}

// SetAuth enables HTTP Basic authentication for the API.
// Disabled config leaves the API open.
func (s *Server) SetAuth(cfg config.AuthConfig) {
	if !cfg.Enabled {
		slog.Info("API authentication is disabled")
		s.auth = nil
		return
	}
	s.auth = &basicAuth{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
	}
	slog.Info("API authentication enabled", "username", cfg.Username)
}

// requireAuth rejects requests without valid credentials when auth is set
func (s *Server) requireAuth(c *gin.Context) {
	if s.auth == nil {
		c.Next()
		return
	}

	username, password, ok := c.Request.BasicAuth()
	if !ok {
		s.unauthorized(c, "missing credentials")
		return
	}

	if !s.auth.validateCredentials(username, password) {
		s.unauthorized(c, "invalid credentials")
		return
	}

	c.Next()
}

// validateCredentials compares the username in constant time and checks the
// password against the stored crypt string
func (a *basicAuth) validateCredentials(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	passwordMatch, err := digest.Verify(password, a.passwordHash)
	if err != nil {
		slog.Error("Failed to verify API password", "error", err)
		return false
	}

	return usernameMatch && passwordMatch
}

func (s *Server) unauthorized(c *gin.Context, reason string) {
	slog.Warn("API auth failed",
		"reason", reason,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
	)

	c.Header("WWW-Authenticate", `Basic realm="`+authRealm+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
