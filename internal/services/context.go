package services

import "context"

type contextKey string

const (
	gameKey      contextKey = "game"
	operationKey contextKey = "operation"
	requestIDKey contextKey = "request_id"
)

// WithGame annotates context with the game (library subdirectory) name.
func WithGame(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, gameKey, name)
}

// GameFromContext returns the game name if present.
func GameFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(gameKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOperation annotates context with the launcher operation name.
func WithOperation(ctx context.Context, op string) context.Context {
	if op == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, op)
}

// OperationFromContext returns the operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(operationKey).(string); ok && v != "" {
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
