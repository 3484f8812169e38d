package middleware

import (
	"net/http"
	"time"

	"github.com/your-org/estate-admin/internal/platform/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request with its status and duration.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			if recorder.status >= http.StatusInternalServerError {
				log.Error("HTTP request failed", "method", r.Method, "path", r.URL.Path, "status", recorder.status, "duration", duration)
			} else {
				log.Info("HTTP request completed", "method", r.Method, "path", r.URL.Path, "status", recorder.status, "duration", duration)
			}
		})
	}
}
