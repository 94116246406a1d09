package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
	"infracciones.transito.co/internal/app"
	"infracciones.transito.co/internal/appconf"
	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/models"
)

// createTestApi creates a new restAPI instance backed by the fixture dataset.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithConfig(t, func(*appconf.Config) {})
}

func createTestApiWithConfig(t *testing.T, configure func(*appconf.Config)) *RestAPI {
	t.Helper()

	cfg := appconf.Config{
		Port:        8000,
		Env:         appconf.EnvFlagToEnvironment("test"),
		DatasetPath: models.FixturePath(t, "infracciones.csv"),
		Schema:      "auto",
		DBPath:      ":memory:",
		LogLevel:    slog.LevelInfo,
	}
	configure(&cfg)

	application, err := app.New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	api := NewRestAPI(application)
	t.Cleanup(func() { _ = api.Close() })

	return api
}

func newTestHandler(api *RestAPI) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	return api.Handler(router, api.Logger)
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and its body.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, []byte) {
	api := createTestApi(t)
	resp, body := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, body
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	server := httptest.NewServer(newTestHandler(api))
	defer server.Close()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()

	var model T
	require.NoError(t, json.Unmarshal(body, &model), string(body))
	return model
}
