package restapi

import (
	"encoding/json"
	"net/http"
)

// sendResponse encodes data before writing any header so that an encoding
// failure can still be reported as a 500.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		api.Logger.Debug("failed to write response", "error", err, "path", r.URL.Path)
	}
}
