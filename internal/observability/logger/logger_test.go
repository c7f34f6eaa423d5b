package logger_test

import (
	"context"
	"strings"
	"testing"

	"pqr-api/internal/observability/logger"
	"pqr-api/internal/observability/requestid"
)

func TestLogger_Levels(t *testing.T) {
	log, err := logger.New("test-service", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer log.Sync()

	ctx := context.Background()

	log.Info(ctx, "test info message",
		logger.Module("test"),
		logger.Action("test_action"),
	)
	log.Warn(ctx, "test warn message",
		logger.Module("test"),
		logger.Action("test_action"),
	)
	log.Error(ctx, "test error message",
		logger.Module("test"),
		logger.Action("test_action"),
	)
}

func TestLogger_MandatoryFields(t *testing.T) {
	log, err := logger.New("test-service", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer log.Sync()

	// Logger should add module="unknown" and action="unknown" as defaults
	log.Info(context.Background(), "test message without module/action")
}

func TestLogger_ContextFields(t *testing.T) {
	log, err := logger.New("test-service", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx = logger.SetRequestIDInContext(ctx, "test-req-123")
	ctx = logger.SetUserIDInContext(ctx, "user-789")

	log.Info(ctx, "test with context",
		logger.Module("test"),
		logger.Action("test_context"),
	)

	if got := logger.GetRequestIDFromContext(ctx); got != "test-req-123" {
		t.Errorf("GetRequestIDFromContext() = %q, want %q", got, "test-req-123")
	}
	if got := logger.GetUserIDFromContext(ctx); got != "user-789" {
		t.Errorf("GetUserIDFromContext() = %q, want %q", got, "user-789")
	}
}

func TestLogger_LevelParsing(t *testing.T) {
	tests := []struct {
		level string
	}{
		{"debug"},
		{"info"},
		{"warn"},
		{"error"},
		{"invalid"}, // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := logger.New("test-service", tt.level)
			if err != nil {
				t.Fatalf("failed to create logger: %v", err)
			}
			defer log.Sync()
		})
	}
}

func TestLogger_WithContext(t *testing.T) {
	log, err := logger.New("test-service", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx = requestid.SetRequestID(ctx, "test-123")

	contextLog := log.WithContext(ctx)
	contextLog.Info(ctx, "test with context logger",
		logger.Module("test"),
		logger.Action("test_with_context"),
	)
}

func TestLogger_EmptyContext(t *testing.T) {
	log, err := logger.New("test-service", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer log.Sync()

	contextLog := log.WithContext(context.Background())
	if contextLog == nil {
		t.Error("WithContext returned nil for empty context")
	}
}

func TestLogger_RequiresServiceName(t *testing.T) {
	_, err := logger.New("", "info")
	if err == nil {
		t.Error("expected error when serviceName is empty, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "serviceName is required") {
		t.Errorf("expected 'serviceName is required' error, got: %v", err)
	}
}

func TestLogger_GetLoggerFromContext(t *testing.T) {
	log, err := logger.New("test-service", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer log.Sync()

	ctx := logger.SetLoggerInContext(context.Background(), log)

	if logger.GetLogger(ctx) == nil {
		t.Error("GetLogger returned nil")
	}
}

func TestLogger_GetLoggerFromEmptyContext(t *testing.T) {
	ctx := context.Background()

	// GetLogger should return fallback logger, not panic
	log := logger.GetLogger(ctx)
	if log == nil {
		t.Fatal("GetLogger returned nil for empty context")
	}

	log.Info(ctx, "test with fallback logger",
		logger.Module("test"),
		logger.Action("test_fallback"),
	)
}
