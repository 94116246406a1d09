package webui

import (
	"net/http"

	"infracciones.transito.co/internal/models"
)

type homeData struct {
	Heading string
	Records int
}

func (webUI *WebUI) homeHandler(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "home.html", homeData{
		Heading: models.WelcomeHeading,
		Records: webUI.Records.Len(),
	})
}
