package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"promo-admin/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by Views.Render.
const (
	pageIndex    = "index.html"
	pageForm     = "form.html"
	pageNotFound = "notfound.html"
	pageError    = "error.html"
)

// pageData is the data passed to every admin template.
type pageData struct {
	Title   string
	Flash   string
	Promos  []model.Promo
	Promo   *model.Promo
	Form    model.PromoForm
	Errors  map[string]string
	Action  string
	Method  string
	Message string
}

// Views renders the admin HTML pages.
type Views struct {
	pages map[string]*template.Template
}

var viewFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"imageURL": func(name string) string {
		return "/image/" + url.PathEscape(name)
	},
	"rupiah": func(v float64) string {
		return "Rp " + strconv.FormatFloat(v, 'f', -1, 64)
	},
}

// NewViews parses the embedded templates.
func NewViews() (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template)}

	for _, page := range []string{pageIndex, pageForm, pageNotFound, pageError} {
		tmpl, err := template.New(page).Funcs(viewFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		v.pages[page] = tmpl
	}

	return v, nil
}

// Render executes page into a buffer and writes it with status.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data pageData) error {
	tmpl, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
