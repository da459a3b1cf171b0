package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/futsal-club/internal/config"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "futsal-club-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	stack, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if stack.shutdownTracing != nil || stack.profiler != nil || stack.pprofSrv != nil {
		t.Fatalf("expected nothing started, got %+v", stack)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_UptraceWithoutDSNIsNoop(t *testing.T) {
	stack, err := Start(config.Config{UptraceEnabled: true, ServiceName: "futsal-club-api"}, nil)
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if stack.shutdownTracing != nil {
		t.Fatalf("expected tracing to stay off without a DSN")
	}
}

func TestStart_PprofListener(t *testing.T) {
	stack, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if stack.pprofSrv == nil {
		t.Fatalf("expected pprof server")
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestPprofMux_ServesIndexOnly(t *testing.T) {
	mux := pprofMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pprof index, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 outside pprof, got %d", rec.Code)
	}
}

func TestShutdown_NilStack(t *testing.T) {
	var stack *Stack
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil stack shutdown: %v", err)
	}
}
