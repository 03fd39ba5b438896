package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"stagepass/internal/auth"
	"stagepass/internal/errors"

	"github.com/gin-gonic/gin"
)

// IdentityHeader carries the caller-supplied identity token.
const IdentityHeader = "X-User-Id"

// CORS middleware for browser clients
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+IdentityHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger middleware for structured request logging
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if identity, ok := auth.IdentityFromContext(c.Request.Context()); ok {
			logFields = append(logFields, "user_id", identity.UserID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Debug("Request completed", logFields...)
		}
	}
}

// Recovery middleware recovers from panics with detailed logging
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// Identity resolves the caller-supplied id header into a verified identity
// on the request context. A missing or malformed token is rejected with
// 400, an unknown user with 404.
func Identity(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(IdentityHeader)

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.IsNotFound(err):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case err == errors.ErrIdentityRequired:
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				slog.Error("Failed to verify identity", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify identity"})
			}
			return
		}

		c.Request = c.Request.WithContext(auth.ContextWithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}

// RequireAdmin rejects requests whose verified identity lacks the admin
// role. Must run after Identity.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.IdentityFromContext(c.Request.Context())
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errors.ErrForbidden.Error()})
			return
		}

		c.Next()
	}
}
