package httphandler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/niksmo/zeroproof/internal/core/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex   = "index"
	pageProduct = "product"
)

type (
	indexData struct {
		SearchTerm string
		CartSize   int
		Page       service.IndexPage
	}

	productData struct {
		SearchTerm string
		CartSize   int
		Product    service.ProductCardView
	}
)

var templateFuncs = template.FuncMap{
	"productURL":      productURL,
	"selectionFields": selectionFields,
	"seq": func(n int) []struct{} {
		return make([]struct{}, max(n, 0))
	},
}

// A renderer executes the page templates, each composed with the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (renderer, error) {
	const op = "newRenderer"

	pages := make(map[string]*template.Template)
	for _, name := range []string{pageIndex, pageProduct} {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html",
		)
		if err != nil {
			return renderer{}, fmt.Errorf("%s: %s: %w", op, name, err)
		}
		pages[name] = t
	}
	return renderer{pages}, nil
}

// render writes the page only once it has been executed completely, so a
// template failure never leaves a half-written body.
func (rd renderer) render(
	w http.ResponseWriter, status int, name string, data any,
) error {
	t, ok := rd.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
