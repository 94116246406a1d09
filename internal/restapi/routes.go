package restapi

import (
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// SetRoutes registers the JSON endpoints and the fallback handlers.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/datos/:id", api.limited(api.recordHandler))
	router.Handler(http.MethodGet, "/chatbot", api.limited(api.chatbotHandler))
	router.Handler(http.MethodGet, "/estratos", api.limited(api.strataHandler))

	router.NotFound = http.HandlerFunc(api.routeNotFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}

// Handler applies the middleware chain shared by every route.
func (api *RestAPI) Handler(router http.Handler, logger *slog.Logger) http.Handler {
	handler := api.WithSecurityHeaders(router)
	handler = CompressionMiddleware(handler)
	return NewRequestLoggingMiddleware(logger)(handler)
}
