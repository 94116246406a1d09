package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/models"
)

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	api.errorResponse(w, r, http.StatusInternalServerError, models.InternalErrorMessage)
}

// notFoundResponse sends a 404 Not Found response with the given message as detail
func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusNotFound, message)
}

func (api *RestAPI) routeNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	api.notFoundResponse(w, r, models.RouteNotFoundMessage)
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.errorResponse(w, r, http.StatusMethodNotAllowed, models.MethodNotAllowedMessage)
}

func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	response := models.ErrorResponse{
		Detail: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode error response", "error", err, "status", status)
	}
}
