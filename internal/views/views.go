// Package views renders the HTML pages. Templates are parsed once at
// startup from the template directory; a render failure after headers are
// written can only be logged.
package views

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
)

type Renderer struct {
	templates *template.Template
}

func New(dir string) (*Renderer, error) {
	templates, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named page template with the given data.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("rendering %s: %v", name, err)
	}
}

// Error renders the generic failure page. Upstream failures all funnel
// through here with a user-safe message; details stay in the log.
func (r *Renderer) Error(w http.ResponseWriter, status int, message string) {
	r.Render(w, status, "error.html", struct{ Message string }{Message: message})
}
