package logger

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stamps the request correlation ID onto the context so
// lower layers, SQL tracing in particular, can emit it alongside their
// own fields.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the correlation ID stored by WithRequestID, or an
// empty string when the context carries none.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
