package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"career-coach-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	telemetry.SetLogger(zap.New(core))
	t.Cleanup(func() { telemetry.SetLogger(nil) })

	router := gin.New()
	router.Use(RequestID(), func(c *gin.Context) {
		c.Set(subjectKey, "google:1")
		c.Next()
	}, Logging())
	router.POST("/api/v1/cover-letters", func(c *gin.Context) {
		MarkGeneration(c, "fallback")
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cover-letters", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	entries := logs.FilterMessage("request.complete").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	required := []string{"request_id", "subject", "duration_ms", "status", "route"}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if fields["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", fields["request_id"])
	}
	if fields["subject"] != "google:1" {
		t.Fatalf("unexpected subject: %v", fields["subject"])
	}
	if fields["status"] != int64(http.StatusCreated) {
		t.Fatalf("unexpected status: %v", fields["status"])
	}
	if fields["generation_source"] != "fallback" {
		t.Fatalf("unexpected generation_source: %v", fields["generation_source"])
	}
}
