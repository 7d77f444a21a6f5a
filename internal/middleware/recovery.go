package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitquest/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 and counts it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					// LogRequest runs after this middleware, its id is only visible on the response
					log.WithFields(log.Fields{
						"request_id": respWriter.Header().Get(RequestIDHeader),
						"method":     req.Method,
						"path":       req.URL.Path,
					}).Errorf("http: panic: %v\n%s", r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					http.Error(respWriter, "internal error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
