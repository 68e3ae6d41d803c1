package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach-backend/internal/shared/metrics"
	"career-coach-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Float64("duration_ms", float64(latency.Microseconds())/1000.0),
			zap.String("subject", SubjectFromContext(c)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if source := c.GetString("generationSource"); source != "" {
			fields = append(fields, zap.String("generation_source", source))
		}
		telemetry.Info("request.complete", fields...)
		metrics.IncRequest(c.FullPath(), c.Writer.Status())
	}
}

// MarkGeneration records whether a response used AI or fallback content so
// the request log carries it.
func MarkGeneration(c *gin.Context, source string) {
	if c == nil || source == "" {
		return
	}
	c.Set("generationSource", source)
}
