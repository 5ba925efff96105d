package contextutil

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()

	if got := LoggerFromContext(ctx); got != slog.Default() {
		t.Error("LoggerFromContext() without attached logger should return default")
	}

	logger := slog.Default().With("request_id", "abc")
	ctx = WithLogger(ctx, logger)
	if got := LoggerFromContext(ctx); got != logger {
		t.Error("LoggerFromContext() did not return the attached logger")
	}
}
