package hx

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// Registry mounts components under their prefixes and injects the shared
// encoder, error handler and logger into them.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent
	logger     *slog.Logger

	// OnError writes the response for failed component requests. It
	// defaults to DefaultErrorHandler and is read when a component is
	// added, so set it before calling Add.
	OnError ErrorHandler
}

// NewRegistry creates a registry whose props encoder uses key.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hx: failed to create encoder: %v", err))
	}

	return &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		logger:     slog.Default(),
		OnError:    DefaultErrorHandler,
	}
}

// SetLogger sets the logger handed to components added afterwards.
func (reg *Registry) SetLogger(l *slog.Logger) {
	if l != nil {
		reg.logger = l
	}
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components. It panics on a prefix collision.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("hx: prefix collision for %q", prefix))
		}

		if s, ok := comp.(interface{ SetEncoder(*Encoder) }); ok {
			s.SetEncoder(reg.encoder)
		}
		if s, ok := comp.(interface{ SetOnError(ErrorHandler) }); ok {
			s.SetOnError(reg.OnError)
		}
		if s, ok := comp.(interface{ SetLogger(*slog.Logger) }); ok {
			s.SetLogger(reg.logger)
		}

		reg.components[prefix] = comp
		reg.mux.HandleFunc(prefix+"/", comp.HXServeHTTP)
		reg.logger.Debug("component registered", "prefix", prefix)
	}
}

// Handler returns the HTTP handler for component routes. Mount it at
// "/_c/".
//
// Mutating methods must carry HX-Request: true, which a cross-site form
// post cannot set.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}

		reg.mu.RLock()
		defer reg.mu.RUnlock()
		reg.mux.ServeHTTP(w, r)
	})
}
