package restapi

import (
	"errors"
	"log/slog"
	"net/http"

	"infracciones.transito.co/internal/models"
	"infracciones.transito.co/internal/records"
	"infracciones.transito.co/internal/utils"
)

func (api *RestAPI) recordHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractParam(r, "id")
	addRequestLogAttrs(r, slog.String("record_id", id))

	record, err := api.Records.GetByID(id)
	if errors.Is(err, records.ErrNotFound) {
		api.notFoundResponse(w, r, models.RecordNotFoundMessage)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, http.StatusOK, record)
}
