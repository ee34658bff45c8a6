package middleware

import (
	"bytes"
	"net/http"
	"time"

	"flightdesk/airline/internal/logging"
)

type respLogger struct {
	http.ResponseWriter
	status int
	buf    *bytes.Buffer
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	l.buf.Write(b)
	return l.ResponseWriter.Write(b)
}

// Logging dumps request headers and response bodies at debug level.
// Enabled with HTTP_DEBUG.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.GetLogger().With("request_id", RequestIDFromContext(r.Context()))
		log.Debugw("→ request", "method", r.Method, "url", r.URL.String(), "headers", r.Header)

		buf := &bytes.Buffer{}
		lw := &respLogger{ResponseWriter: w, status: http.StatusOK, buf: buf}

		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Debugw("← response",
			"status", lw.status,
			"duration", time.Since(start).String(),
			"body", buf.String(),
		)
	})
}
