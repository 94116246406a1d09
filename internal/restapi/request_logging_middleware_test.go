package restapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"infracciones.transito.co/internal/logging"
)

// accessLogLine returns the decoded http_request entry written to buf.
func accessLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["msg"] == "http_request" {
			return entry
		}
	}
	t.Fatalf("no http_request line in %q", buf.String())
	return nil
}

func TestRequestLoggingMiddleware(t *testing.T) {
	t.Run("logs HTTP request details", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("test response"))
		})

		handler := NewRequestLoggingMiddleware(logger)(testHandler)

		req := httptest.NewRequest("GET", "/chatbot?query=estrato+3", nil)
		req.Header.Set("User-Agent", "test-client/1.0")
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "test response", recorder.Body.String())

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/chatbot"`)
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"user_agent":"test-client/1.0"`)
		assert.Contains(t, output, `"duration_ms":`)
		assert.Contains(t, output, `"component":"http_server"`)
		assert.Contains(t, output, `"client_ip":"203.0.113.7"`)
		assert.Contains(t, output, `"bytes":13`)
		assert.NotContains(t, output, "estrato", "query parameters are not logged")
	})

	t.Run("puts the logger in the request context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("from handler")
		})

		req := httptest.NewRequest("GET", "/", nil)
		NewRequestLoggingMiddleware(logger)(testHandler).ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), `"msg":"from handler"`)
	})

	t.Run("handlers add attributes to the access line", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addRequestLogAttrs(r, slog.String("outcome", "matched"))
			w.WriteHeader(http.StatusTeapot)
		})

		req := httptest.NewRequest("GET", "/chatbot", nil)
		NewRequestLoggingMiddleware(logger)(testHandler).ServeHTTP(httptest.NewRecorder(), req)

		entry := accessLogLine(t, &buf)
		assert.Equal(t, "matched", entry["outcome"])
		assert.Equal(t, float64(http.StatusTeapot), entry["status"])
		assert.Equal(t, "192.0.2.1", entry["client_ip"])
		assert.Equal(t, float64(0), entry["bytes"])
	})

	t.Run("attributes outside the middleware are dropped", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		assert.NotPanics(t, func() {
			addRequestLogAttrs(req, slog.String("outcome", "matched"))
		})
	})
}

func TestRequestLoggingIntegration(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelDebug)

	api := createTestApi(t)
	router := httprouter.New()
	api.SetRoutes(router)
	handler := api.Handler(router, logger)

	req := httptest.NewRequest("GET", "/chatbot?query=estrato+tres", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	output := buf.String()
	assert.Contains(t, output, `"msg":"chatbot query answered"`)

	entry := accessLogLine(t, &buf)
	assert.Equal(t, "/chatbot", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "matched", entry["outcome"])
	assert.Equal(t, "3", entry["stratum"])
	assert.Equal(t, float64(3), entry["records"])
	assert.NotContains(t, output, "estrato", "query text is not logged")
}

func TestRequestLoggingRecordLookup(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		wantStatus int
		wantID     string
	}{
		{"found", "/datos/001", http.StatusOK, "001"},
		{"missing", "/datos/nope", http.StatusNotFound, "nope"},
	}

	api := createTestApi(t)
	router := httprouter.New()
	api.SetRoutes(router)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := api.Handler(router, logging.NewStructuredLogger(&buf, slog.LevelInfo))

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest("GET", tt.endpoint, nil))
			require.Equal(t, tt.wantStatus, recorder.Code)

			entry := accessLogLine(t, &buf)
			assert.Equal(t, tt.wantID, entry["record_id"])
			assert.Equal(t, float64(tt.wantStatus), entry["status"])
			assert.Greater(t, entry["bytes"], float64(0))
		})
	}
}
