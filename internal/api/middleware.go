package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roomgate/roomgate/internal/metrics"
)

// requestLogger logs one line per request and records request metrics. The
// metrics endpoint label is the chi route pattern, not the raw path, to
// keep label cardinality bounded.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		metrics.RecordRequest(r.Method, pattern, strconv.Itoa(ww.Status()), elapsed.Seconds())

		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", elapsed.Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
