package httpapi

import (
	"net/http"

	"github.com/riskibarqy/futsal-club/internal/platform/logging"
	"github.com/riskibarqy/futsal-club/internal/platform/metrics"
)

type RouterOptions struct {
	CORSAllowedOrigins []string
	AdminToken         string
	Metrics            *metrics.Recorder
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics)
	registerPlayerRoutes(mux, handler)
	registerSessionRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerRankingRoutes(mux, handler)
	registerAdminRoutes(mux, handler, opts.AdminToken)

	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, RequestMetrics(opts.Metrics, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
