// ABOUTME: Template loading and rendering for the diagnostic UI.
// ABOUTME: Embeds HTML templates and provides render helpers.

package web

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*
var templateFS embed.FS

var pageTmpls map[string]*template.Template

// pageDefinitions maps page names to their template files
func getPageDefinitions() map[string]string {
	return map[string]string{
		"index": "templates/index.html",
		"logs":  "templates/logs.html",
	}
}

// parsePageTemplates creates a map of page templates, each with the layout
func parsePageTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)
	for name, path := range getPageDefinitions() {
		templates[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", path))
	}
	return templates
}

func init() {
	pageTmpls = parsePageTemplates()
}

func renderPage(w io.Writer, page string, data any) error {
	tmpl, ok := pageTmpls[page]
	if !ok {
		return nil
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
