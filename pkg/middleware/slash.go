package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash returns middleware that permanently redirects a path ending in
// "/" to the same path without it. The root path and paths naming a file
// pass through unchanged. The escaped form of the path is preserved so
// encoded separators inside a segment survive the redirect.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.EscapedPath()
			if len(path) <= 1 || !strings.HasSuffix(path, "/") {
				next.ServeHTTP(w, r)
				return
			}

			target := strings.TrimRight(path, "/")
			if target == "" || hasFileExtension(target) {
				next.ServeHTTP(w, r)
				return
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		})
	}
}

func hasFileExtension(path string) bool {
	lastSlash := strings.LastIndex(path, "/")
	lastDot := strings.LastIndex(path, ".")
	return lastDot > lastSlash
}
