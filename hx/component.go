package hx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
)

// PropsParam is the request parameter that carries encoded props. Field
// names must not use it.
const PropsParam = "p"

// Handler is the signature of an action handler. Props arrive decoded and
// hydrated; the returned Result decides what is written back.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

// actionDef holds metadata about a registered action.
type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component[P] is the base type embedded by components. P is the props
// type; it must be msgpack-serializable because props travel with every
// request.
//
// Example:
//
//	type Input struct {
//	    *hx.Component[InputProps]
//	}
//
//	func NewInput() *Input {
//	    c := &Input{Component: hx.New[InputProps]("input")}
//	    c.Action("change", c.handleChange)
//	    return c
//	}
//
// Each component instance receives a deterministic URL prefix based on its
// name and source location (file:line), so two instances with the same
// name still get distinct routes.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *Encoder
	onError   ErrorHandler
	logger    *slog.Logger
}

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(http.ResponseWriter, *http.Request, error)

// Lifecycle is what Serve needs from the concrete component.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// New creates a new component with the given name.
//
// Props are signed by default (visible in URLs but tamper-proof). Call
// Sensitive to encrypt them instead.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
		logger:  slog.Default(),
	}
}

// Sensitive marks the component's props for encryption.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the component's URL prefix.
// All actions for this component are mounted under this prefix.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// IsSensitive returns whether the component uses encrypted props.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// Action registers a named action handler with the default POST method.
//
//	c.Action("change", c.handleChange)
//	c.Action("preview", c.handlePreview).Method(http.MethodGet)
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// SetEncoder sets the props encoder (called by the registry).
func (c *Component[P]) SetEncoder(enc *Encoder) {
	c.encoder = enc
}

// Encoder returns the props encoder.
func (c *Component[P]) Encoder() *Encoder {
	return c.encoder
}

// SetOnError sets the error handler (called by the registry).
func (c *Component[P]) SetOnError(h ErrorHandler) {
	c.onError = h
}

// OnError returns the error handler, nil until registered.
func (c *Component[P]) OnError() ErrorHandler {
	return c.onError
}

// SetLogger replaces the component's logger.
func (c *Component[P]) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l.With("component", c.name)
	}
}

// Logger returns the component's logger.
func (c *Component[P]) Logger() *slog.Logger {
	return c.logger
}

// URL returns the URL of an action with props in the query string. The
// empty action is the plain render.
func (c *Component[P]) URL(action string, props P) string {
	path, encoded := c.actionURL(action, props)
	if encoded == "" {
		return path
	}
	return path + "?" + PropsParam + "=" + encoded
}

// Wire returns the HTMX attributes that invoke action with props.
func (c *Component[P]) Wire(action string, props P) templ.Attributes {
	method := http.MethodGet
	if def, ok := c.actions[action]; ok {
		method = def.method
	}
	path, encoded := c.actionURL(action, props)
	return WireAttrs(path, method, encoded)
}

func (c *Component[P]) actionURL(action string, props P) (string, string) {
	path := c.prefix + "/"
	if action != "" {
		path = c.prefix + "/" + action
	}
	if c.encoder == nil {
		return path, ""
	}
	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		c.logger.Error("encode props", "action", action, "error", err)
		return path, ""
	}
	return path, encoded
}

// Serve decodes props, hydrates them, dispatches to the action named by the
// path and writes the result. GET on the bare prefix renders.
func (c *Component[P]) Serve(w http.ResponseWriter, r *http.Request, lc Lifecycle[P]) {
	ctx := r.Context()

	var props P
	if encoded := r.FormValue(PropsParam); encoded != "" {
		if c.encoder == nil {
			c.fail(w, r, fmt.Errorf("%w: component %q is not registered", ErrInvalidFormat, c.name))
			return
		}
		if err := c.encoder.Decode(encoded, c.sensitive, &props); err != nil {
			c.fail(w, r, WrapDecodeError(err))
			return
		}
	}

	if err := lc.Hydrate(ctx, &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	action := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if action == "" {
		if r.Method != http.MethodGet {
			c.fail(w, r, ErrNotFound)
			return
		}
		c.write(w, r, lc, OK(props))
		return
	}

	def, ok := c.actions[action]
	if !ok || def.method != r.Method {
		c.fail(w, r, ErrNotFound)
		return
	}
	c.write(w, r, lc, def.handler(ctx, props, r))
}

// write applies a Result. Headers go out before the status line.
func (c *Component[P]) write(w http.ResponseWriter, r *http.Request, lc Lifecycle[P], result Result[P]) {
	if err := result.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}

	for k, v := range result.GetHeaders() {
		w.Header().Set(k, v)
	}
	if trigger := BuildTriggerHeader(result.GetTrigger(), result.GetTriggerData()); trigger != "" {
		w.Header().Set("HX-Trigger", trigger)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status := result.GetStatus(); status != 0 {
		w.WriteHeader(status)
	}

	ctx := r.Context()
	if err := lc.Render(ctx, result.GetProps()).Render(ctx, w); err != nil {
		c.logger.Error("render", "error", err)
		return
	}
	if oob := RenderFlashesOOB(result.GetFlashes()); oob != "" {
		_, _ = w.Write([]byte(oob))
	}
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	DefaultErrorHandler(w, r, err)
}

// DefaultErrorHandler maps sentinel errors to status codes.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case IsBadRequest(err):
		http.Error(w, "Bad request", http.StatusBadRequest)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// componentHash generates a deterministic hash based on component name and source location.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	var input string
	if ok {
		// Base filename only, for portability across checkouts.
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	} else {
		input = name
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}
