package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hongminglow/packpoint-be/internal/requestctx"
)

// TraceIDHeader carries the request trace id in both directions.
const TraceIDHeader = "X-Request-ID"

// Tracing puts a trace id on the request context, reusing the caller's
// X-Request-ID when present, and echoes it on the response.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := traceIDFor(r)
		if traceID != "" {
			w.Header().Set(TraceIDHeader, traceID)
		}
		next.ServeHTTP(w, r.WithContext(requestctx.WithTraceID(r.Context(), traceID)))
	})
}

func traceIDFor(r *http.Request) string {
	if traceID := r.Header.Get(TraceIDHeader); traceID != "" && len(traceID) <= 128 {
		return traceID
	}
	id, err := uuid.NewV7()
	if err != nil {
		return ""
	}
	return id.String()
}
