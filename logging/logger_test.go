package logging

import (
	"context"
	"testing"
	"time"
)

func TestRequestIDGeneration(t *testing.T) {
	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	if id1 == "" {
		t.Error("GenerateRequestID returned empty string")
	}
	if id1 == id2 {
		t.Error("GenerateRequestID generated duplicate IDs")
	}
	// Request IDs are UUID strings.
	if len(id1) != 36 {
		t.Errorf("Expected request ID length 36, got %d", len(id1))
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	// Initially no request ID
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("Expected empty request ID, got %s", got)
	}

	// Add request ID
	requestID := "test-request-123"
	ctx = WithRequestID(ctx, requestID)

	// Retrieve request ID
	if got := GetRequestID(ctx); got != requestID {
		t.Errorf("Expected request ID %s, got %s", requestID, got)
	}
}

func TestEnsureRequestID(t *testing.T) {
	// Context without request ID
	ctx := context.Background()
	ctx = EnsureRequestID(ctx)

	id1 := GetRequestID(ctx)
	if id1 == "" {
		t.Error("EnsureRequestID should create a request ID")
	}

	// Context with existing request ID
	ctx = EnsureRequestID(ctx)
	id2 := GetRequestID(ctx)

	if id1 != id2 {
		t.Error("EnsureRequestID should not replace existing request ID")
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger(LevelDebug)
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}

	ctx := WithRequestID(context.Background(), "test-123")

	// Test all log levels
	logger.Debug(ctx, "debug message", map[string]any{"key": "value"})
	logger.Info(ctx, "info message", map[string]any{"count": 42})
	logger.Warn(ctx, "warn message", nil)
	logger.Error(ctx, "error message", map[string]any{"error": "test"})
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name       string
		logLevel   Level
		shouldLog  bool
		logMessage func(logger *DefaultLogger, ctx context.Context)
	}{
		{
			name:      "debug at debug level",
			logLevel:  LevelDebug,
			shouldLog: true,
			logMessage: func(l *DefaultLogger, ctx context.Context) {
				l.Debug(ctx, "test", nil)
			},
		},
		{
			name:      "debug at info level",
			logLevel:  LevelInfo,
			shouldLog: false,
			logMessage: func(l *DefaultLogger, ctx context.Context) {
				l.Debug(ctx, "test", nil)
			},
		},
		{
			name:      "info at debug level",
			logLevel:  LevelDebug,
			shouldLog: true,
			logMessage: func(l *DefaultLogger, ctx context.Context) {
				l.Info(ctx, "test", nil)
			},
		},
		{
			name:      "error at warn level",
			logLevel:  LevelWarn,
			shouldLog: true,
			logMessage: func(l *DefaultLogger, ctx context.Context) {
				l.Error(ctx, "test", nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewDefaultLogger(tt.logLevel)
			ctx := context.Background()
			tt.logMessage(logger, ctx)
		})
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := &NoOpLogger{}
	ctx := context.Background()

	// Should not panic
	logger.Debug(ctx, "test", nil)
	logger.Info(ctx, "test", nil)
	logger.Warn(ctx, "test", nil)
	logger.Error(ctx, "test", nil)
}

func TestGlobalLogger(t *testing.T) {
	// Save original logger
	original := GetLogger()
	defer SetLogger(original)

	// Test default (NoOpLogger)
	if _, ok := GetLogger().(*NoOpLogger); !ok {
		t.Error("Expected default logger to be NoOpLogger")
	}

	// Set custom logger
	customLogger := NewDefaultLogger(LevelInfo)
	SetLogger(customLogger)

	if got := GetLogger(); got != customLogger {
		t.Error("SetLogger did not set the global logger")
	}

	// Set nil logger (should revert to NoOpLogger)
	SetLogger(nil)
	if _, ok := GetLogger().(*NoOpLogger); !ok {
		t.Error("Setting nil logger should revert to NoOpLogger")
	}
}

// recordLogger captures the last log call so the draw helpers can be
// asserted on.
type recordLogger struct {
	level  string
	msg    string
	fields map[string]any
}

func (r *recordLogger) Debug(ctx context.Context, msg string, fields map[string]any) {
	r.level, r.msg, r.fields = "debug", msg, fields
}

func (r *recordLogger) Info(ctx context.Context, msg string, fields map[string]any) {
	r.level, r.msg, r.fields = "info", msg, fields
}

func (r *recordLogger) Warn(ctx context.Context, msg string, fields map[string]any) {
	r.level, r.msg, r.fields = "warn", msg, fields
}

func (r *recordLogger) Error(ctx context.Context, msg string, fields map[string]any) {
	r.level, r.msg, r.fields = "error", msg, fields
}

func TestLogDrawStart(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	rec := &recordLogger{}
	SetLogger(rec)

	ctx := WithRequestID(context.Background(), "test-123")
	LogDrawStart(ctx, "predict", "*demo.Fit")

	if rec.level != "debug" {
		t.Errorf("LogDrawStart logged at %q, want debug", rec.level)
	}
	if rec.fields["kind"] != "predict" {
		t.Errorf("kind field = %v, want predict", rec.fields["kind"])
	}
	if rec.fields["model"] != "*demo.Fit" {
		t.Errorf("model field = %v, want *demo.Fit", rec.fields["model"])
	}
}

func TestLogDrawEnd(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	rec := &recordLogger{}
	SetLogger(rec)

	ctx := WithRequestID(context.Background(), "test-123")

	// Success logs at debug with no error field
	LogDrawEnd(ctx, "fitted", 100*time.Millisecond, nil)
	if rec.level != "debug" {
		t.Errorf("successful LogDrawEnd logged at %q, want debug", rec.level)
	}
	if rec.fields["duration_ms"] != int64(100) {
		t.Errorf("duration_ms = %v, want 100", rec.fields["duration_ms"])
	}
	if _, ok := rec.fields["error"]; ok {
		t.Error("successful LogDrawEnd carried an error field")
	}

	// Failure logs at error with the message attached
	LogDrawEnd(ctx, "fitted", 100*time.Millisecond, context.Canceled)
	if rec.level != "error" {
		t.Errorf("failed LogDrawEnd logged at %q, want error", rec.level)
	}
	if rec.fields["error"] != context.Canceled.Error() {
		t.Errorf("error field = %v, want %q", rec.fields["error"], context.Canceled.Error())
	}
}

func TestLogSamplerCall(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	rec := &recordLogger{}
	SetLogger(rec)

	ctx := WithRequestID(context.Background(), "test-123")
	LogSamplerCall(ctx, "nutsreg", 4, 500)

	if rec.level != "debug" {
		t.Errorf("LogSamplerCall logged at %q, want debug", rec.level)
	}
	if rec.fields["family"] != "nutsreg" {
		t.Errorf("family field = %v, want nutsreg", rec.fields["family"])
	}
	if rec.fields["rows"] != 4 || rec.fields["draws"] != 500 {
		t.Errorf("rows/draws fields = %v/%v, want 4/500", rec.fields["rows"], rec.fields["draws"])
	}
}

func TestLoggerWithNilContext(t *testing.T) {
	// Should not panic with nil context
	id := GetRequestID(nil)
	if id != "" {
		t.Errorf("Expected empty string for nil context, got %s", id)
	}
}
