// Package navigation builds an immutable navigation controller from a
// declarative route table. Routes map URL path patterns to views or redirect
// destinations; the controller resolves locations against the table and can
// be installed into an HTTP server according to its history strategy.
package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// maxRedirects bounds redirect chains followed by Resolve.
const maxRedirects = 10

// History is the strategy the client uses to reflect the current location.
type History string

// History strategies.
const (
	// HistoryWeb keeps the location in the URL path (HTML5 history API).
	HistoryWeb History = "web"

	// HistoryHash keeps the location in the URL fragment.
	HistoryHash History = "hash"

	// HistoryMemory keeps the location in memory only.
	HistoryMemory History = "memory"
)

// Validate checks if the history strategy is known.
func (h History) Validate() error {
	switch h {
	case HistoryWeb, HistoryHash, HistoryMemory:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be web, hash, or memory)", ErrInvalidHistory, h)
	}
}

// Options configures a Controller.
type Options struct {
	// History selects the history strategy. Required.
	History History

	// Base is the URL prefix the application is served under. Empty or "/"
	// serves from the root.
	Base string

	// Routes is the ordered route table.
	Routes []Route

	// Sensitive makes static segment matching case-sensitive.
	Sensitive bool

	// Strict rejects locations with a trailing slash.
	Strict bool
}

// Match is the outcome of resolving a location.
type Match struct {
	// Route is the view route that matched after following redirects.
	Route Route

	// Path is the effective location.
	Path string

	// Params holds dynamic segment values bound by Route.
	Params map[string]string

	// Query holds the query parameters of the location.
	Query url.Values

	// RedirectedFrom is the originally requested path when a redirect was
	// followed, empty otherwise.
	RedirectedFrom string

	// RedirectPattern is the pattern of the first redirect route followed.
	RedirectPattern string
}

// Controller resolves locations against an immutable route table.
// It is safe for concurrent use.
type Controller struct {
	history   History
	base      string
	sensitive bool
	strict    bool
	routes    []*compiledRoute
}

// New validates and compiles the route table into a Controller.
func New(opts Options) (*Controller, error) {
	if err := opts.History.Validate(); err != nil {
		return nil, err
	}

	base, err := normalizeBase(opts.Base)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		history:   opts.History,
		base:      base,
		sensitive: opts.Sensitive,
		strict:    opts.Strict,
		routes:    make([]*compiledRoute, 0, len(opts.Routes)),
	}

	seen := make(map[string]string, len(opts.Routes))
	for i, r := range opts.Routes {
		cr, err := compileRoute(cloneRoute(r), i, opts.Sensitive)
		if err != nil {
			return nil, err
		}
		key := cr.key()
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q conflicts with %q", ErrDuplicatePath, r.Path, prev)
		}
		seen[key] = r.Path
		c.routes = append(c.routes, cr)
	}

	if err := c.checkRedirects(); err != nil {
		return nil, err
	}

	return c, nil
}

// History returns the configured history strategy.
func (c *Controller) History() History {
	return c.history
}

// Base returns the normalized base path.
func (c *Controller) Base() string {
	return c.base
}

// Routes returns a copy of the route table in declaration order.
func (c *Controller) Routes() []Route {
	routes := make([]Route, len(c.routes))
	for i, cr := range c.routes {
		routes[i] = cloneRoute(cr.route)
	}
	return routes
}

// Resolve matches a location, relative to the base path, against the route
// table. Redirects are followed before view matching; the returned Match
// describes the view route and the effective location.
func (c *Controller) Resolve(location string) (Match, error) {
	loc, err := parseLocation(location)
	if err != nil {
		return Match{}, err
	}
	if c.strict && loc.trailing {
		return Match{}, fmt.Errorf("%w: %s/", ErrNotFound, loc.path)
	}

	path := loc.path
	var redirectedFrom, redirectPattern string

	for hops := 0; ; hops++ {
		cr, params := c.lookup(path)
		if cr == nil {
			return Match{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		if !cr.route.IsRedirect() {
			return Match{
				Route:           cloneRoute(cr.route),
				Path:            path,
				Params:          params,
				Query:           loc.query,
				RedirectedFrom:  redirectedFrom,
				RedirectPattern: redirectPattern,
			}, nil
		}

		if hops == maxRedirects {
			return Match{}, fmt.Errorf("%w: exceeded %d redirects from %s", ErrRedirectLoop, maxRedirects, loc.path)
		}
		if redirectedFrom == "" {
			redirectedFrom = loc.path
			redirectPattern = cr.route.Path
		}
		path = expand(cr.route.Redirect, params)
	}
}

// Href returns the URL a client uses to reach the location under the
// configured history strategy.
func (c *Controller) Href(location string) string {
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	if c.history == HistoryHash {
		return c.base + "/#" + location
	}
	return c.base + location
}

// StripBase returns the request path relative to the base path, or false if
// the path is outside the base.
func (c *Controller) StripBase(path string) (string, bool) {
	if c.base == "" {
		return path, true
	}
	rest, ok := strings.CutPrefix(path, c.base)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "/", true
	}
	if !strings.HasPrefix(rest, "/") {
		return "", false
	}
	return rest, true
}

func (c *Controller) lookup(path string) (*compiledRoute, map[string]string) {
	segments := splitSegments(path)

	var best *compiledRoute
	var bestParams map[string]string
	for _, cr := range c.routes {
		params, ok := cr.match(segments, c.sensitive)
		if !ok {
			continue
		}
		if best == nil || cr.outranks(best) {
			best, bestParams = cr, params
		}
	}
	return best, bestParams
}

// checkRedirects walks every redirect chain at construction so that loops
// fail fast. Chains whose destination matches no route are allowed; they
// resolve to ErrNotFound at navigation time.
func (c *Controller) checkRedirects() error {
	for _, cr := range c.routes {
		if !cr.route.IsRedirect() || len(cr.route.Params()) > 0 {
			continue
		}
		if _, err := c.Resolve(cr.route.Path); err != nil && !isNotFound(err) {
			return fmt.Errorf("route %q: %w", cr.route.Path, err)
		}
	}
	return nil
}

func normalizeBase(base string) (string, error) {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return "", nil
	}
	if !strings.HasPrefix(base, "/") {
		return "", fmt.Errorf("%w: base %q must begin with /", ErrInvalidPath, base)
	}
	return base, nil
}

func cloneRoute(r Route) Route {
	if r.View != nil {
		view := *r.View
		r.View = &view
	}
	return r
}
