// Package router wraps chi with named routes and nestable groups.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware is the function shape every HTTP middleware in the project uses.
type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered named route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Router registers handlers on a chi mux and keeps a name-to-path registry
// so routes can be listed and reversed.
type Router struct {
	mux chi.Router

	mu     sync.RWMutex
	routes []RouteInfo
	byName map[string]string
}

// Group scopes registrations under a path prefix and a middleware chain.
// Groups nest; a child inherits the parent's prefix and middlewares.
type Group struct {
	root   *Router
	prefix string
	chain  []Middleware
}

func New() *Router {
	return &Router{
		mux:    chi.NewRouter(),
		byName: make(map[string]string),
	}
}

// Handler exposes the underlying mux for http.Server.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middlewares. Must run before any route registration.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

// HandleFunc mounts a handler for all methods on path, outside the named
// route registry (used for /metrics and static mounts).
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.mux.HandleFunc(cleanPath(path), handler)
}

func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{root: r, prefix: cleanPath(prefix), chain: copyChain(nil, mws)}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodGet, cleanPath(path), name, h, mws)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPost, cleanPath(path), name, h, mws)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPut, cleanPath(path), name, h, mws)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodDelete, cleanPath(path), name, h, mws)
}

// Routes returns a snapshot of every named route, for route:list.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.routes...)
}

// Path returns the registered path for a route name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// URL reverses a named route, substituting {param} segments from params.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	p, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}
	for key, val := range params {
		p = strings.ReplaceAll(p, "{"+key+"}", val)
	}
	if strings.Contains(p, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return p, nil
}

func (r *Router) register(method, fullPath, name string, h http.Handler, mws []Middleware) {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	r.mux.Method(method, fullPath, h)

	if name == "" {
		return
	}
	r.mu.Lock()
	r.routes = append(r.routes, RouteInfo{Method: method, Path: fullPath, Name: name})
	r.byName[name] = fullPath
	r.mu.Unlock()
}

func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		root:   g.root,
		prefix: join(g.prefix, prefix),
		chain:  copyChain(g.chain, mws),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.root.register(http.MethodGet, join(g.prefix, path), name, h, copyChain(g.chain, mws))
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.root.register(http.MethodPost, join(g.prefix, path), name, h, copyChain(g.chain, mws))
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.root.register(http.MethodPut, join(g.prefix, path), name, h, copyChain(g.chain, mws))
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.root.register(http.MethodDelete, join(g.prefix, path), name, h, copyChain(g.chain, mws))
}

func copyChain(base, extra []Middleware) []Middleware {
	out := make([]Middleware, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// join builds "/a/b/c" from path fragments, tolerating stray slashes and
// empty segments.
func join(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		for _, seg := range strings.Split(part, "/") {
			if seg == "" {
				continue
			}
			b.WriteByte('/')
			b.WriteString(seg)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func cleanPath(path string) string {
	if path == "" {
		return "/"
	}
	return join(path)
}
