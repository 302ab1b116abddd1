package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/eventhall/internal/helpers"
	"github.com/joshua-takyi/eventhall/internal/models"
	"github.com/joshua-takyi/eventhall/internal/services"
)

const (
	SessionKey      = "session"
	AccessTokenName = "access_token"
	sessionErrorKey = "session_error"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	authHeader      = "Authorization"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get(requestIDKey)

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors attached by handlers with their classification.
// Handlers already wrote the client-facing reply; a generic 500 is only sent when none was.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestID, _ := c.Get(requestIDKey)
		for _, e := range c.Errors {
			logger.Error("Request error",
				"request_id", requestID,
				"kind", models.ErrorKind(e.Err),
				"error", e.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}

		if !c.Writer.Written() {
			c.JSON(500, gin.H{
				"message":    "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// Session resolves the caller's token from the access_token cookie or a
// Bearer header. It never aborts: a missing or invalid token means anonymous,
// while a failed revocation lookup is recorded for handlers via SessionError.
func Session(sessions *services.SessionService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := helpers.BearerToken(c.GetHeader(authHeader))
		if raw == "" {
			if cookie, err := c.Cookie(AccessTokenName); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			c.Next()
			return
		}

		claims, err := sessions.Resolve(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, helpers.ErrInvalidToken) {
				logger.Debug("Session not resolved", "error", err)
			} else {
				_ = c.Error(err)
				c.Set(sessionErrorKey, err)
			}
			c.Next()
			return
		}

		c.Set(SessionKey, claims)
		c.Next()
	}
}

// CurrentSession returns the claims stored by Session, if any.
func CurrentSession(c *gin.Context) (*helpers.SessionClaims, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*helpers.SessionClaims)
	return claims, ok && claims != nil
}

// SessionError returns the store failure hit while resolving the caller's token, if any.
func SessionError(c *gin.Context) error {
	v, exists := c.Get(sessionErrorKey)
	if !exists {
		return nil
	}
	err, _ := v.(error)
	return err
}
