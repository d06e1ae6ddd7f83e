// Package router keeps the current location of the admin client and
// resolves named routes. It is the Navigator the API pipeline redirects
// through.
package router

import (
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/adminapi/internal/common"
)

// Route names accepted by Navigate besides plain paths.
const (
	RouteLogin       = "login"
	RouteHome        = "home"
	RouteForbidden   = "forbidden"
	RouteNotFound    = "not-found"
	RouteServerError = "server-error"
)

// DefaultHistorySize bounds Router.History.
const DefaultHistorySize = 50

var namedRoutes = map[string]string{
	RouteLogin:       common.LoginRoute,
	RouteHome:        common.HomeRoute,
	RouteForbidden:   common.ForbiddenRoute,
	RouteNotFound:    common.NotFoundRoute,
	RouteServerError: common.ServerErrorRoute,
}

// Listener is called after every navigation with the previous and the new
// path.
type Listener func(from, to string)

// Router is a concurrency-safe location holder.
type Router struct {
	mu        sync.RWMutex
	current   string
	history   []string
	limit     int
	listeners []Listener
}

// New returns a Router positioned at start (HomeRoute when empty).
func New(start string, historySize int) *Router {
	if start == "" {
		start = common.HomeRoute
	}
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Router{current: start, limit: historySize}
}

// Resolve maps a route name to its path. Anything that is not a known name
// is treated as a path and gets a leading slash if it lacks one.
func Resolve(target string) string {
	if p, ok := namedRoutes[target]; ok {
		return p
	}
	if !strings.HasPrefix(target, "/") {
		return "/" + target
	}
	return target
}

// Navigate moves to target, a route name or a path. The previous location
// is pushed onto the history.
func (r *Router) Navigate(target string) {
	to := Resolve(target)

	r.mu.Lock()
	from := r.current
	r.current = to
	r.history = append(r.history, from)
	if len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(from, to)
	}
}

// Back returns to the previous location. It reports false when the history
// is empty.
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return false
	}
	from := r.current
	r.current = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	to := r.current
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(from, to)
	}
	return true
}

// CurrentPath returns the current location including its query.
func (r *Router) CurrentPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// History returns the visited locations, oldest first.
func (r *Router) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}

// OnChange registers l for subsequent navigations.
func (r *Router) OnChange(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// RedirectTarget extracts the return path from a login location such as
// "/login?redirect=/users/1". It returns HomeRoute when there is none.
func RedirectTarget(location string) string {
	_, query, ok := strings.Cut(location, "?")
	if !ok {
		return common.HomeRoute
	}
	q, err := url.ParseQuery(query)
	if err != nil || q.Get(common.RedirectQueryParam) == "" {
		return common.HomeRoute
	}
	return q.Get(common.RedirectQueryParam)
}
