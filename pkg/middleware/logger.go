package middleware

import (
	"net/http"
	"time"

	"github.com/pedalpoint/bikeshop/pkg/logger"
	"github.com/pedalpoint/bikeshop/pkg/reqid"
)

// statusWriter captures the response status and body size for access logs.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(p []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(p)
	sw.bytes += n
	return n, err
}

// Logger writes one access-log line per request and seeds the context with
// a per-request slog.Logger tagged with the request id.
//
// Mount reqid.Middleware() before this one so the id is already present.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
		r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration", time.Since(start).String(),
			"ip", r.RemoteAddr,
		}
		switch {
		case sw.status >= 500:
			reqLog.Error("request", args...)
		case sw.status >= 400:
			reqLog.Warn("request", args...)
		default:
			reqLog.Info("request", args...)
		}
	})
}
