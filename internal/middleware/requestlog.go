package middleware

import (
	"net/http"
	"time"

	"github.com/Varun5711/wecare/internal/enrichment"
	"github.com/Varun5711/wecare/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLog writes one line per request with the caller's parsed user agent.
func RequestLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			agent := enrichment.ParseUserAgent(r.UserAgent())
			line := "%s %s %d %s ip=%s agent=%q request_id=%s"
			args := []interface{}{r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Microsecond), ClientIP(r), agent.String(), r.Header.Get("X-Request-ID")}
			if rec.status >= http.StatusInternalServerError {
				log.Error(line, args...)
				return
			}
			log.Info(line, args...)
		})
	}
}
