package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	log := New()
	if log == nil {
		t.Fatal("New returned nil")
	}

	ctx := context.Background()
	if !log.Enabled(ctx, slog.LevelInfo) {
		t.Errorf("info level should be enabled")
	}
	if log.Enabled(ctx, slog.LevelDebug) {
		t.Errorf("debug level should be suppressed")
	}

	if _, ok := log.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("want JSON handler, got %T", log.Handler())
	}
}
