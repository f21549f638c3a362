// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying the per-request correlation ID.
const CorrelationID LogContextKey = "correlation_id"

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// StoreLogger provides structured logging for document store operations.
type StoreLogger struct {
	kind   string
	logger *Logger
}

// NewStoreLogger creates a StoreLogger for the given document kind.
func NewStoreLogger(kind string) *StoreLogger {
	return &StoreLogger{kind: kind, logger: GlobalLogger}
}

// LogWrite logs a document write (create or update).
func (l *StoreLogger) LogWrite(ctx context.Context, operation, id string) {
	l.logger.InfoContext(ctx, "document write",
		slog.String("kind", l.kind),
		slog.String("operation", operation),
		slog.String("id", id),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogDelete logs a document deletion.
func (l *StoreLogger) LogDelete(ctx context.Context, id string) {
	l.logger.InfoContext(ctx, "document delete",
		slog.String("kind", l.kind),
		slog.String("id", id),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogError logs a document store error.
func (l *StoreLogger) LogError(ctx context.Context, err error, operation string) {
	l.logger.ErrorContext(ctx, "document store error",
		slog.String("kind", l.kind),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogCascadeSummary logs the outcome of a cascade delete.
func LogCascadeSummary(ctx context.Context, rootKind, rootID string, documents int, blobsDeleted, blobsFailed int) {
	GlobalLogger.InfoContext(ctx, "cascade delete completed",
		slog.String("root_kind", rootKind),
		slog.String("root_id", rootID),
		slog.Int("documents_deleted", documents),
		slog.Int("blobs_deleted", blobsDeleted),
		slog.Int("blobs_failed", blobsFailed),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogCleanupFailure records a best-effort blob deletion that failed. The
// document cascade has already succeeded at this point, so this is an audit
// record of storage drift, not an error path.
func LogCleanupFailure(ctx context.Context, blobName string, err error) {
	GlobalLogger.WarnContext(ctx, "blob cleanup failed",
		slog.String("blob", blobName),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}
