// Package views holds the server-rendered HTML templates.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template bundled with the binary
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
