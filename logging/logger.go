package logging

import (
	"context"
	"fmt"
	"time"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Level represents the log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger interface for logging and tracing
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]any)
	Info(ctx context.Context, msg string, fields map[string]any)
	Warn(ctx context.Context, msg string, fields map[string]any)
	Error(ctx context.Context, msg string, fields map[string]any)
}

// DefaultLogger is a simple logger that writes to stdout
type DefaultLogger struct {
	level  Level
	prefix string
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		prefix: "[TidyDraws]",
	}
}

func (l *DefaultLogger) log(ctx context.Context, level Level, msg string, fields map[string]any) {
	if level < l.level {
		return
	}

	levelStr := ""
	switch level {
	case LevelDebug:
		levelStr = "DEBUG"
	case LevelInfo:
		levelStr = "INFO"
	case LevelWarn:
		levelStr = "WARN"
	case LevelError:
		levelStr = "ERROR"
	}

	requestID := GetRequestID(ctx)
	if requestID == "" {
		requestID = "-"
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	logMsg := fmt.Sprintf("%s %s [%s] [%s] %s", l.prefix, timestamp, levelStr, requestID, msg)

	if len(fields) > 0 {
		logMsg += " |"
		for k, v := range fields {
			logMsg += fmt.Sprintf(" %s=%v", k, v)
		}
	}

	fmt.Println(logMsg)
}

func (l *DefaultLogger) Debug(ctx context.Context, msg string, fields map[string]any) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *DefaultLogger) Info(ctx context.Context, msg string, fields map[string]any) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *DefaultLogger) Warn(ctx context.Context, msg string, fields map[string]any) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *DefaultLogger) Error(ctx context.Context, msg string, fields map[string]any) {
	l.log(ctx, LevelError, msg, fields)
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(ctx context.Context, msg string, fields map[string]any) {}
func (n *NoOpLogger) Info(ctx context.Context, msg string, fields map[string]any)  {}
func (n *NoOpLogger) Warn(ctx context.Context, msg string, fields map[string]any)  {}
func (n *NoOpLogger) Error(ctx context.Context, msg string, fields map[string]any) {}

// Global logger instance
var globalLogger Logger = &NoOpLogger{}

// SetLogger sets the global logger
func SetLogger(logger Logger) {
	if logger == nil {
		globalLogger = &NoOpLogger{}
	} else {
		globalLogger = logger
	}
}

// GetLogger returns the global logger
func GetLogger() Logger {
	return globalLogger
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// LogDrawStart logs the start of a draw call
func LogDrawStart(ctx context.Context, kind string, modelType string) {
	globalLogger.Debug(ctx, "Draw call started", map[string]any{
		"kind":  kind,
		"model": modelType,
	})
}

// LogDrawEnd logs the end of a draw call
func LogDrawEnd(ctx context.Context, kind string, duration time.Duration, err error) {
	fields := map[string]any{
		"kind":        kind,
		"duration_ms": duration.Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		globalLogger.Error(ctx, "Draw call failed", fields)
	} else {
		globalLogger.Debug(ctx, "Draw call completed", fields)
	}
}

// LogSamplerCall logs the delegation to a family engine
func LogSamplerCall(ctx context.Context, family string, rows int, drawCount int) {
	globalLogger.Debug(ctx, "Sampler invoked", map[string]any{
		"family": family,
		"rows":   rows,
		"draws":  drawCount,
	})
}
