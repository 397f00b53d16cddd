package navigation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JaimeStill/atlas/pkg/web"
)

// Route binds a path pattern to either a redirect destination or a view.
// Patterns may contain named dynamic segments written as ":name"; matched
// segments are bound as strings regardless of what they represent.
type Route struct {
	Path     string
	Redirect string
	View     *web.ViewDef
}

// IsRedirect reports whether the route redirects instead of rendering a view.
func (r Route) IsRedirect() bool {
	return r.Redirect != ""
}

// Params returns the dynamic segment names of the route pattern in order.
func (r Route) Params() []string {
	var names []string
	for _, seg := range splitSegments(r.Path) {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			names = append(names, name)
		}
	}
	return names
}

type segment struct {
	value string
	param bool
}

type compiledRoute struct {
	route    Route
	index    int
	segments []segment
	statics  int
}

func compileRoute(r Route, index int, sensitive bool) (*compiledRoute, error) {
	if !strings.HasPrefix(r.Path, "/") {
		return nil, fmt.Errorf("%w: %q must begin with /", ErrInvalidPath, r.Path)
	}
	if (r.Redirect == "") == (r.View == nil) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, r.Path)
	}
	if r.IsRedirect() && !strings.HasPrefix(r.Redirect, "/") {
		return nil, fmt.Errorf("%w: redirect %q from %q must be absolute", ErrInvalidTarget, r.Redirect, r.Path)
	}

	cr := &compiledRoute{route: r, index: index}
	seen := make(map[string]bool)

	for _, raw := range splitSegments(r.Path) {
		if raw == "" || raw == "." || raw == ".." {
			return nil, fmt.Errorf("%w: %q contains an empty or relative segment", ErrInvalidPath, r.Path)
		}
		name, isParam := strings.CutPrefix(raw, ":")
		if !isParam {
			value := raw
			if !sensitive {
				value = strings.ToLower(value)
			}
			cr.segments = append(cr.segments, segment{value: value})
			cr.statics++
			continue
		}
		if !validParamName(name) {
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidParam, raw, r.Path)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q repeated in %q", ErrInvalidParam, name, r.Path)
		}
		seen[name] = true
		cr.segments = append(cr.segments, segment{value: name, param: true})
	}

	if r.IsRedirect() {
		for _, seg := range splitSegments(r.Redirect) {
			if name, ok := strings.CutPrefix(seg, ":"); ok && !seen[name] {
				return nil, fmt.Errorf("%w: redirect %q uses unbound segment %q", ErrInvalidParam, r.Redirect, name)
			}
		}
	}

	return cr, nil
}

// key identifies the pattern shape so that "/zone/:id" and "/zone/:slug"
// collide as duplicates.
func (cr *compiledRoute) key() string {
	var b strings.Builder
	for _, seg := range cr.segments {
		b.WriteByte('/')
		if seg.param {
			b.WriteByte(':')
			continue
		}
		b.WriteString(seg.value)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// match binds the location segments against the pattern.
func (cr *compiledRoute) match(segments []string, sensitive bool) (map[string]string, bool) {
	if len(segments) != len(cr.segments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range cr.segments {
		if seg.param {
			value, err := url.PathUnescape(segments[i])
			if err != nil || value == "" {
				return nil, false
			}
			params[seg.value] = value
			continue
		}

		if sensitive {
			if segments[i] != seg.value {
				return nil, false
			}
		} else if !strings.EqualFold(segments[i], seg.value) {
			return nil, false
		}
	}
	return params, true
}

// outranks orders candidate matches: more static segments first, then
// redirects ahead of views, then declaration order.
func (cr *compiledRoute) outranks(other *compiledRoute) bool {
	if cr.statics != other.statics {
		return cr.statics > other.statics
	}
	if cr.route.IsRedirect() != other.route.IsRedirect() {
		return cr.route.IsRedirect()
	}
	return cr.index < other.index
}

// expand substitutes bound parameters into a redirect destination.
func expand(target string, params map[string]string) string {
	segments := splitSegments(target)
	for i, seg := range segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			segments[i] = url.PathEscape(params[name])
		}
	}
	return "/" + strings.Join(segments, "/")
}

func validParamName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}
