package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/futsal-club/internal/platform/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("futsal-club/internal/interfaces/httpapi")

// startSpan traces handler methods only; response helpers and middleware
// pass through so each request carries one span per handler.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, handlerSpanPrefix) {
		name = ""
	}
	return tracing.Child(ctx, apiTracer, name)
}
