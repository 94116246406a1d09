package restapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/utils"
)

// loggedResponse records what the handler chain sent back to the client.
type loggedResponse struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (lr *loggedResponse) WriteHeader(code int) {
	lr.status = code
	lr.ResponseWriter.WriteHeader(code)
}

func (lr *loggedResponse) Write(p []byte) (int, error) {
	n, err := lr.ResponseWriter.Write(p)
	lr.bytes += n
	return n, err
}

// requestLogAttrs collects the attributes handlers attach to the
// http_request line of their own request.
type requestLogAttrs struct {
	attrs []slog.Attr
}

type requestLogAttrsKey struct{}

func withRequestLogAttrs(ctx context.Context) (context.Context, *requestLogAttrs) {
	holder := &requestLogAttrs{}
	return context.WithValue(ctx, requestLogAttrsKey{}, holder), holder
}

// addRequestLogAttrs appends attrs to the access log line of r. Outside the
// logging middleware it does nothing.
func addRequestLogAttrs(r *http.Request, attrs ...slog.Attr) {
	holder, ok := r.Context().Value(requestLogAttrsKey{}).(*requestLogAttrs)
	if !ok {
		return
	}
	holder.attrs = append(holder.attrs, attrs...)
}

// NewRequestLoggingMiddleware writes one http_request line per request. The
// query string is never logged; handlers add what they resolved from it.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := logging.WithLogger(r.Context(), logger)
			ctx, extra := withRequestLogAttrs(ctx)
			r = r.WithContext(ctx)

			lr := &loggedResponse{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lr, r)

			attrs := []slog.Attr{
				slog.String("client_ip", utils.ClientIP(r)),
				slog.Int("bytes", lr.bytes),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.String("component", "http_server"),
			}
			attrs = append(attrs, extra.attrs...)

			logging.LogHTTPRequest(logger,
				r.Method,
				r.URL.Path,
				lr.status,
				float64(time.Since(start).Microseconds())/1e3,
				attrs...)
		})
	}
}
