// Package web provides infrastructure for serving view shells with Go templates.
// Templates are parsed once at startup and cloned per view so that a broken
// template fails construction instead of a request.
package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef identifies a view by its template file, document title, and the
// client bundle that hydrates it.
type ViewDef struct {
	Template string
	Title    string
	Bundle   string
}

// NavLink is a navigation entry rendered by layouts. Path is the location the
// link targets and Href is the URL a client follows to reach it.
type NavLink struct {
	Label string
	Path  string
	Href  string
}

// ViewData contains the data passed to view templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
// Path and Params carry the resolved location for views bound to dynamic routes.
type ViewData struct {
	Title    string
	Bundle   string
	BasePath string
	Path     string
	Params   map[string]string
	Nav      []NavLink
	Data     any
}

// TemplateSet holds pre-parsed templates keyed by view template name.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
	nav      []NavLink
}

// NewTemplateSet parses the layout templates and clones them for each view.
// The basePath is included in ViewData for every handler built from the set.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		if _, ok := templates[v.Template]; ok {
			continue
		}
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		templates[v.Template] = t
	}

	return &TemplateSet{
		views:    templates,
		basePath: basePath,
	}, nil
}

// BasePath returns the base path included in rendered ViewData.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// SetNav sets the navigation links included in ViewData for every handler
// built from the set.
func (ts *TemplateSet) SetNav(links []NavLink) {
	ts.nav = links
}

// ErrorHandler returns an HTTP handler that renders an error view with the
// given status code.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{
			Title:    view.Title,
			Bundle:   view.Bundle,
			BasePath: ts.basePath,
			Path:     r.URL.Path,
			Nav:      ts.nav,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := ts.execute(w, layout, view.Template, data); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// PageHandler returns an HTTP handler that renders the given view with no
// path parameters.
func (ts *TemplateSet) PageHandler(layout string, view ViewDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts.ViewHandler(layout, view, r.URL.Path, nil).ServeHTTP(w, r)
	}
}

// ViewHandler returns an HTTP handler that renders the given view for a
// resolved location and its bound parameters.
func (ts *TemplateSet) ViewHandler(layout string, view ViewDef, path string, params map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{
			Title:    view.Title,
			Bundle:   view.Bundle,
			BasePath: ts.basePath,
			Path:     path,
			Params:   params,
			Nav:      ts.nav,
		}
		if err := ts.Render(w, layout, view.Template, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// Render executes the named layout template with the given view data.
// It sets the Content-Type header to text/html.
func (ts *TemplateSet) Render(w http.ResponseWriter, layout, view string, data ViewData) error {
	if _, ok := ts.views[view]; !ok {
		return fmt.Errorf("template not found: %s", view)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return ts.execute(w, layout, view, data)
}

func (ts *TemplateSet) execute(w http.ResponseWriter, layout, view string, data ViewData) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}
	return t.ExecuteTemplate(w, layout, data)
}
