// Package hxecho mounts verified input components on an Echo server.
//
//	e := echo.New()
//	reg := hxecho.Mount(e, hxecho.WithKey(key))
//	input := hx.NewInput(nil)
//	reg.Add(input, hx.NewForm(input))
//
// Or on a group, sharing its middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxecho.MountGroup(g, "/app")
package hxecho

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/verifiedinput/hx"
)

// componentPath is where hx components are routed.
const componentPath = "/_c/"

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key     []byte
	logger  *slog.Logger
	onError hx.ErrorHandler
}

// WithKey sets the props key. Without it a random key is generated, which
// only suits development: props issued before a restart stop verifying.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger handed to registered components.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithOnError replaces the registry's error handler.
func WithOnError(h hx.ErrorHandler) Option {
	return func(o *options) {
		o.onError = h
	}
}

// Mount creates a registry and routes /_c/* on e to it.
func Mount(e *echo.Echo, opts ...Option) *hx.Registry {
	reg := newRegistry(opts)
	e.Any(componentPath+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountGroup creates a registry and routes /_c/* on g to it. prefix is the
// group's own prefix, which is stripped before dispatch.
func MountGroup(g *echo.Group, prefix string, opts ...Option) *hx.Registry {
	reg := newRegistry(opts)
	prefix = strings.TrimSuffix(prefix, "/")
	g.Any(componentPath+"*", echo.WrapHandler(http.StripPrefix(prefix, reg.Handler())))
	return reg
}

func newRegistry(opts []Option) *hx.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxecho: failed to generate random key: %v", err))
		}
	}

	reg := hx.NewRegistry(key)
	if o.logger != nil {
		reg.SetLogger(o.logger)
	}
	if o.onError != nil {
		reg.OnError = o.onError
	}
	return reg
}

// Render writes a templ component to the Echo response.
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
