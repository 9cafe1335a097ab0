package services

import "context"

type contextKey string

const (
	lifecycleKey contextKey = "lifecycle"
	documentKey  contextKey = "document"
	requestIDKey contextKey = "request_id"
)

// WithLifecycle annotates context with the request lifecycle name (extraction/feedback).
func WithLifecycle(ctx context.Context, lifecycle string) context.Context {
	if lifecycle == "" {
		return ctx
	}
	return context.WithValue(ctx, lifecycleKey, lifecycle)
}

// LifecycleFromContext returns the lifecycle name if present.
func LifecycleFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(lifecycleKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithDocument annotates context with the selected document's filename.
func WithDocument(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, documentKey, name)
}

// DocumentFromContext returns the document filename if present.
func DocumentFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(documentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
