package logging

import (
	"context"
	"log/slog"

	"slidedeck/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldLifecycle is the standardized structured logging key for request lifecycles (extraction/feedback).
	FieldLifecycle = "lifecycle"
	// FieldDocument is the standardized structured logging key for the selected document filename.
	FieldDocument = "document"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if lifecycle, ok := services.LifecycleFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldLifecycle, lifecycle))
	}
	if name, ok := services.DocumentFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldDocument, name))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
