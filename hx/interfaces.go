package hx

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to rebuild the parts of their props
// that cannot travel over the wire, such as predicates looked up by name.
// It runs once per request before any handler, including plain renders.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce templ output. It runs
// for GET renders and after every successful action, and must not have side
// effects.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// HXComponent is what the registry mounts: a URL prefix and a handler for
// everything below it.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}
