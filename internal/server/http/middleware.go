package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey    = "userID"
	requestIDKey = "requestID"

	requestIDHeader = "X-Request-ID"
)

// AuthGate admits requests carrying "Authorization: Bearer <token>" with a
// token v accepts, and stores the token's user id on the context. A missing
// header is answered with "Unauthorized"; anything else that fails is
// "Invalid token".
func AuthGate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			abortAuth(c, common.ErrMissingCredential)
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) || parts[1] == "" {
			abortAuth(c, common.ErrInvalidToken)
			return
		}

		userID, err := v.Verify(parts[1])
		if err != nil {
			abortAuth(c, common.ErrInvalidToken)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortAuth(c *gin.Context, err error) {
	msg := "Invalid token"
	if errors.Is(err, common.ErrMissingCredential) {
		msg = "Unauthorized"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// currentUserID returns the id AuthGate stored. Only call it behind AuthGate.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// CORS allows one origin with credentials and answers preflights itself.
func CORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin != "" && c.GetHeader("Origin") == origin {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
			if h := c.GetHeader("Access-Control-Request-Headers"); h != "" {
				c.Header("Access-Control-Allow-Headers", h)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID tags each request with an id, reusing a well-formed incoming
// X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one line per request once it has been handled.
func AccessLog(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString(requestIDKey),
		}
		if uid := c.GetString(userIDKey); uid != "" {
			args = append(args, "user_id", uid)
		}
		l.Info(c.Request.Context(), "request", args...)
	}
}

// Recovery turns a handler panic into a logged 500.
func Recovery(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		l.Error(c.Request.Context(), "panic", "recovered", recovered, "request_id", c.GetString(requestIDKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
