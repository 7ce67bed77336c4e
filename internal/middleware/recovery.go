package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Varun5711/wecare/internal/logger"
)

// Recovery turns a panicking handler into a 500 and logs the stack.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
