package telemetry

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWritesToInstalledLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Info("request.complete", zap.String("request_id", "req-1"))
	Warn("generation.fallback", zap.String("reason", "disabled"))

	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "request.complete" {
		t.Fatalf("unexpected message %q", entry.Message)
	}
	if got := entry.ContextMap()["request_id"]; got != "req-1" {
		t.Fatalf("unexpected request_id %v", got)
	}
	if logs.All()[1].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestInitConsoleFormat(t *testing.T) {
	if err := Init("debug", "console"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { SetLogger(nil) })
	if !L().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug enabled")
	}
}

func TestFromContextAddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	ctx := WithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("generation.ai")
	FromContext(context.Background()).Info("generation.ai")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-42" {
		t.Fatalf("expected request_id, got %v", got)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Fatalf("expected no request_id without one in context")
	}
}
