package restapi

import (
	"net/http"

	"infracciones.transito.co/internal/models"
)

func (api *RestAPI) strataHandler(w http.ResponseWriter, r *http.Request) {
	summaries, err := api.Database.StratumSummaries(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, http.StatusOK, models.NewStrataResponse(summaries))
}
