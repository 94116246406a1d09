package webui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"infracciones.transito.co/internal/app"
)

//go:embed debug_index.html home.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "*.html"))

// WebUI serves the browser facing pages.
type WebUI struct {
	*app.Application
	static http.FileSystem
}

// NewWebUI serves the embedded front-end unless the configuration points
// static_dir at a directory on disk.
func NewWebUI(application *app.Application) (*WebUI, error) {
	static, err := staticFileSystem(application.Config.StaticDir)
	if err != nil {
		return nil, err
	}
	return &WebUI{Application: application, static: static}, nil
}

func staticFileSystem(dir string) (http.FileSystem, error) {
	if dir == "" {
		sub, err := fs.Sub(staticFS, "static")
		if err != nil {
			return nil, err
		}
		return http.FS(sub), nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid static_dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid static_dir: %s is not a directory", dir)
	}
	return http.Dir(dir), nil
}

func renderTemplate(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
