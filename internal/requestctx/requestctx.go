// Package requestctx carries request-scoped values (trace id, verified uid)
// through context.Context.
package requestctx

import "context"

type contextKey string

const (
	contextKeyTraceID = contextKey("traceID")
	contextKeyUID     = contextKey("uid")
)

// TraceIDFromContext extracts the trace ID from the context.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(contextKeyTraceID).(string)
	return traceID, ok
}

// WithTraceID returns a copy of ctx carrying the given trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, contextKeyTraceID, traceID)
}

// UIDFromContext extracts the verified external subject id placed on the
// context by the auth middleware.
func UIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(contextKeyUID).(string)
	return uid, ok && uid != ""
}

// WithUID returns a copy of ctx carrying the verified external subject id.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, contextKeyUID, uid)
}
