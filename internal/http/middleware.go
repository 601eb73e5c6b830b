package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"career-advisor/internal/domain"
)

const currentUserKey = "currentUser"

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition", reportLocationHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			break
		}
	}
	if !cfg.AllowAllOrigins {
		if len(origins) == 0 {
			cfg.AllowAllOrigins = true
		} else {
			cfg.AllowOrigins = origins
		}
	}
	return cors.New(cfg)
}

// requestLogger logs one line per request; 5xx at error, 4xx at warn.
func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		entry := log.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if user, ok := currentUser(c); ok {
			entry = entry.WithField("user_id", user.ID)
		}

		switch {
		case status >= 500:
			entry.Error("HTTP request")
		case status >= 400:
			entry.Warn("HTTP request")
		default:
			entry.Info("HTTP request")
		}
	}
}

// requireAuth rejects requests without a valid bearer token for an existing user.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authenticate(c, bearerToken(c)) {
			return
		}
		c.Next()
	}
}

// optionalAuth lets anonymous requests through but still rejects a token that
// was sent and does not verify.
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if !h.authenticate(c, bearerToken(c)) {
			return
		}
		c.Next()
	}
}

func (h *Handler) authenticate(c *gin.Context, token string) bool {
	userID, err := h.issuer.Verify(token)
	if err != nil {
		abortUnauthenticated(c, err)
		return false
	}
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if isNotFound(err) {
			abortUnauthenticated(c, domain.ErrUnauthenticated)
			return false
		}
		h.respondError(c, err)
		c.Abort()
		return false
	}
	c.Set(currentUserKey, user)
	return true
}

func abortUnauthenticated(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", "Bearer")
	RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	c.Abort()
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

// mustUser is only used behind requireAuth.
func mustUser(c *gin.Context) *domain.User {
	user, _ := currentUser(c)
	return user
}
