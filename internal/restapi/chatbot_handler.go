package restapi

import (
	"log/slog"
	"net/http"
)

// chatbotHandler always answers 200. A query without a stratum, empty ones
// included, gets the invalid stratum message and no records.
func (api *RestAPI) chatbotHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	reply := api.Chatbot.Answer(r.Context(), query)
	addRequestLogAttrs(r,
		slog.String("outcome", string(reply.Outcome)),
		slog.String("stratum", reply.Stratum),
		slog.Int("records", len(reply.Records)))

	api.sendResponse(w, r, http.StatusOK, reply.Response())
}
