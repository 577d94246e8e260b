package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/logging"
)

const (
	correlationIDKey = "correlation_id"
	subjectKey       = "subject"
)

// CorrelationID extracts or generates a correlation ID and echoes it back.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(client.CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(correlationIDKey, correlationID)
		c.Header(client.CorrelationIDHeader, correlationID)

		c.Next()
	}
}

// RequestLog writes one record per request.
func RequestLog(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"correlation_id", c.GetString(correlationIDKey),
			"elapsed", time.Since(start),
		)
	}
}

// RequireToken rejects requests without a valid HS256 bearer token signed
// with secret.
func RequireToken(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			abortProblem(c, http.StatusUnauthorized, "Unauthorized", "error.http.401")
			return
		}
		claims := &jwt.RegisteredClaims{}
		_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil {
			abortProblem(c, http.StatusUnauthorized, "Unauthorized", "error.http.401")
			return
		}
		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}

func abortProblem(c *gin.Context, status int, title, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"title":   title,
		"status":  status,
		"message": message,
	})
}
