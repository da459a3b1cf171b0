// Package observability starts and stops the optional tracing and profiling
// exporters around the API process.
package observability

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/futsal-club/internal/config"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
)

// Stack holds whatever exporters were enabled at startup.
type Stack struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	profiler        *pyroscope.Profiler
	pprofSrv        *http.Server
}

// Start brings up Uptrace, Pyroscope and the pprof listener as configured.
// On failure anything already started is torn down again.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger.Named("observability")}

	s.shutdownTracing = startTracing(cfg, s.logger)

	profiler, err := startProfiler(cfg, s.logger)
	if err != nil {
		_ = s.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pyroscope")
	}
	s.profiler = profiler

	s.pprofSrv = startPprof(cfg, s.logger)
	return s, nil
}

// Shutdown stops every exporter and reports all failures together.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.pprofSrv != nil {
		if err := s.pprofSrv.Shutdown(ctx); err != nil {
			errs = append(errs, crerr.Wrap(err, "stop pprof"))
		}
		s.pprofSrv = nil
	}
	if s.profiler != nil {
		if err := s.profiler.Stop(); err != nil {
			errs = append(errs, crerr.Wrap(err, "stop pyroscope"))
		}
		s.profiler = nil
	}
	if s.shutdownTracing != nil {
		if err := s.shutdownTracing(ctx); err != nil {
			errs = append(errs, crerr.Wrap(err, "shutdown uptrace"))
		}
		s.shutdownTracing = nil
	}

	if err := crerr.Join(errs...); err != nil {
		return err
	}
	s.logger.Info("observability stopped")
	return nil
}
