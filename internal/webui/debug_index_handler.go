package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	renderTemplate(w, "debug_index.html", debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "records":
		data = webUI.Records.All()
		title = "Dataset - Records"
	case "schema":
		data = map[string]interface{}{
			"path":    webUI.Dataset.Path,
			"schema":  webUI.Dataset.Schema,
			"records": len(webUI.Dataset.Records),
			"error":   webUI.Dataset.Err,
		}
		title = "Dataset - Schema"
	case "strata":
		summaries, err := webUI.Database.StratumSummaries(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = summaries
		title = "Database - Strata"
	default:
		data = map[string]string{
			"error": "Please use one of the following: records, schema, strata.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
