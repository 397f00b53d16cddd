package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"path"
	"time"
)

// FileRoute describes a route serving a single embedded file.
type FileRoute struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// DistServer serves files from subdir of fsys under the given URL prefix.
func DistServer(fsys fs.FS, subdir, prefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return http.NotFound
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub))).ServeHTTP
}

// PublicFile serves a single file from subdir of fsys.
func PublicFile(fsys fs.FS, subdir, name string) http.HandlerFunc {
	filePath := path.Join(subdir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	}
}

// PublicFileRoutes builds root-level GET routes for the named public files.
func PublicFileRoutes(fsys fs.FS, subdir string, names ...string) []FileRoute {
	routes := make([]FileRoute, 0, len(names))
	for _, name := range names {
		routes = append(routes, FileRoute{
			Method:  http.MethodGet,
			Pattern: "/" + name,
			Handler: PublicFile(fsys, subdir, name),
		})
	}
	return routes
}
