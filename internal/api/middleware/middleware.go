package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KartikZCoding/campusgate/internal/core"
)

// LoggingMiddleware attaches a request-scoped logger to the context and logs
// every handled request. Health probes are only logged when they fail.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		l := log.With().
			Str("correlation_id", core.CorrelationID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Logger()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(l.WithContext(r.Context())))

		if r.URL.Path == "/healthz" && rec.status < 400 {
			return
		}

		l.Info().
			Int("status", rec.status).
			Int("bytes", rec.written).
			Dur("duration", time.Since(start)).
			Msg("request.handled")
	})
}

// RecoverMiddleware turns a handler panic into a 500 instead of tearing down
// the connection.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Ctx(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic.recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error": "internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.written += n
	return n, err
}
