package httpapi

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestStartSpan_HandlersOnly(t *testing.T) {
	tracer := sdktrace.NewTracerProvider().Tracer("test")
	ctx, parent := tracer.Start(context.Background(), "GET /v1/rankings/{year}")
	defer parent.End()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.GetRanking", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, span := startSpan(ctx, tt.in)
			defer span.End()
			// The global provider is a no-op in tests, so a real child is
			// recognisable by sharing the parent's trace id.
			got := span.SpanContext().TraceID() == parent.SpanContext().TraceID()
			if got != tt.want {
				t.Fatalf("startSpan(%q) traced=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}
