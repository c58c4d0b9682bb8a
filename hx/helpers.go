package hx

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response. Use it for pages;
// component actions render through their Renderer.
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// BuildTriggerHeader formats an HX-Trigger header value.
//
//	"verifiedinput:submitted", nil          -> verifiedinput:submitted
//	"verifiedinput:change", {"value": "5"}  -> {"verifiedinput:change":{"value":"5"}}
func BuildTriggerHeader(trigger string, data map[string]any) string {
	if trigger == "" {
		return ""
	}
	if data == nil {
		return trigger
	}
	b, err := json.Marshal(map[string]any{trigger: data})
	if err != nil {
		return trigger
	}
	return string(b)
}
