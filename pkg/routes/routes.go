// Package routes declares HTTP endpoints as groups and registers them on a
// ServeMux.
package routes

import "net/http"

// Route is a single endpoint. Pattern is relative to the enclosing groups.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Summary string
}

// Group collects routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// Register adds every route of groups to mux using Go method patterns.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

// Flatten returns the routes of groups with their full patterns, in
// declaration order.
func Flatten(groups ...Group) []Route {
	var out []Route
	for _, g := range groups {
		out = flatten(out, "", g)
	}
	return out
}

func register(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		register(mux, prefix, child)
	}
}

func flatten(out []Route, parent string, g Group) []Route {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		r.Pattern = prefix + r.Pattern
		out = append(out, r)
	}
	for _, child := range g.Children {
		out = flatten(out, prefix, child)
	}
	return out
}
