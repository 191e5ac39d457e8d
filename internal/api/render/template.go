// Package render adapts html/template to echo.Renderer.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

// Templates renders views parsed once at startup.
type Templates struct {
	tmpl *template.Template
}

// New parses every file matching pattern in fsys. Views are addressed by
// file name, e.g. "index.html".
func New(fsys fs.FS, pattern string) (*Templates, error) {
	tmpl, err := template.ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", pattern, err)
	}
	return &Templates{tmpl: tmpl}, nil
}

// Render satisfies echo.Renderer.
func (t *Templates) Render(w io.Writer, name string, data any, c echo.Context) error {
	return t.tmpl.ExecuteTemplate(w, name, data)
}
