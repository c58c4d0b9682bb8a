package hx

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// SwapMode is an hx-swap strategy.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag.
	SwapOuter SwapMode = "outerHTML"
	// SwapNone discards the response body.
	SwapNone SwapMode = "none"
)

// ActionBuilder configures a registered action.
//
//	c.Action("change", c.handleChange)  // POST by default
//	c.Action("preview", c.handlePreview).Method(http.MethodGet)
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method for an action.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// WireAttrs builds the minimal HTMX attributes for a component action.
//
// GET actions carry props in the URL query string (hx-get). Other methods
// carry them in hx-vals so they arrive as the PropsParam form value alongside the
// element's own values. Targets, swaps and triggers are left to the caller.
func WireAttrs(path, method, encoded string) templ.Attributes {
	attrs := templ.Attributes{}

	if method == http.MethodGet || method == "" {
		url := path
		if encoded != "" {
			url = path + "?" + PropsParam + "=" + encoded
		}
		attrs["hx-get"] = url
		return attrs
	}

	switch method {
	case http.MethodPost:
		attrs["hx-post"] = path
	case http.MethodPut:
		attrs["hx-put"] = path
	case http.MethodPatch:
		attrs["hx-patch"] = path
	case http.MethodDelete:
		attrs["hx-delete"] = path
	}
	if encoded != "" {
		data, _ := json.Marshal(map[string]string{PropsParam: encoded})
		attrs["hx-vals"] = string(data)
	}
	return attrs
}
