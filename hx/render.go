package hx

import (
	"context"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/verifiedinput"
)

const (
	eyeOpen   = `<svg viewBox="0 0 24 24" width="1em" height="1em" aria-hidden="true"><path fill="currentColor" d="M12 5c-7 0-10 7-10 7s3 7 10 7 10-7 10-7-3-7-10-7zm0 11a4 4 0 1 1 0-8 4 4 0 0 1 0 8z"/></svg>`
	eyeClosed = `<svg viewBox="0 0 24 24" width="1em" height="1em" aria-hidden="true"><path fill="currentColor" d="M2 4.3 3.3 3 21 20.7 19.7 22l-3.3-3.3A11 11 0 0 1 12 19c-7 0-10-7-10-7a17 17 0 0 1 4.1-5.3zM12 5c7 0 10 7 10 7a17 17 0 0 1-2.6 3.8L7.8 5.6A11 11 0 0 1 12 5z"/></svg>`
)

// keyGuard swallows the "." key on integer number inputs.
const keyGuard = `if(event.key==='.'){event.preventDefault()}`

// inputTemplate renders one verified input. The container is the swap
// target of every action; the control posts its own value on input.
func inputTemplate(c *Input, props InputProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		f := props.Field()
		opts := f.Options()
		isError := f.IsError()
		target := "#" + props.ID
		sync := "closest .VerifiedInput-container:queue all"

		var sb strings.Builder

		sb.WriteString(`<div`)
		writeAttrs(&sb, mergeAttrs(c.Wire("blur", props), templ.Attributes{
			"id":            props.ID,
			"class":         "VerifiedInput-container",
			"hx-trigger":    "focusout from:find input",
			"hx-include":    "#" + props.ID + "-control",
			"hx-target":     "this",
			"hx-swap":       string(SwapOuter),
			"hx-sync":       "this:queue all",
			"hx-disinherit": "*",
		}))
		sb.WriteString(`>`)

		// Listener for the owner's submit attempt. Every request carries
		// its own hx-vals, so nothing inherited from a form can shadow p.
		sb.WriteString(`<span hidden`)
		writeAttrs(&sb, mergeAttrs(c.Wire("submitted", props), templ.Attributes{
			"hx-trigger": EventSubmitted + " from:body",
			"hx-target":  target,
			"hx-swap":    string(SwapOuter),
		}))
		sb.WriteString(`></span>`)

		if props.Label != "" {
			sb.WriteString(`<label class="VerifiedInput-label" for="`)
			sb.WriteString(html.EscapeString(props.ID + "-control"))
			sb.WriteString(`">`)
			sb.WriteString(html.EscapeString(props.Label))
			sb.WriteString(`</label>`)
		}

		sb.WriteString(`<div class="VerifiedInput-content">`)

		if props.StartIcon != "" {
			writeIcon(&sb, props.StartIcon, "VerifiedInput-icon-wrapper VerifiedInput-icon-wrapper--start")
		}

		classes := []string{}
		if !opts.ShowArrow {
			classes = append(classes, "VerifiedInput_hiddenArrow")
		}
		classes = append(classes, "VerifiedInput_root")
		if props.Disabled {
			classes = append(classes, "VerifiedInput_disabled")
		}
		if isError && props.ErrorInputClass != "" {
			classes = append(classes, props.ErrorInputClass)
		}

		control := templ.Attributes{
			"id":         props.ID + "-control",
			"name":       props.formKey(),
			"type":       string(f.InputType()),
			"value":      props.Value,
			"class":      strings.Join(classes, " "),
			"data-error": boolString(isError),
			"hx-trigger": "input changed delay:150ms",
			"hx-target":  target,
			"hx-swap":    string(SwapOuter),
			"hx-sync":    sync,
		}
		if props.Placeholder != "" {
			control["placeholder"] = props.Placeholder
		}
		if props.Disabled {
			control["disabled"] = true
		}
		if !verifiedinput.AllowKey(".", opts) {
			control["hx-on:keydown"] = keyGuard
		}
		if opts.Mode == verifiedinput.ModeNumber && !opts.IntegerOnly {
			control["step"] = "any"
		}
		if isError {
			control["aria-invalid"] = "true"
		}
		sb.WriteString(`<input`)
		writeAttrs(&sb, mergeAttrs(c.Wire("change", props), control))
		sb.WriteString(`>`)

		if opts.Mode == verifiedinput.ModePassword && opts.AllowReveal {
			icon, label := eyeClosed, "Show password"
			if f.Revealed() {
				icon, label = eyeOpen, "Hide password"
			}
			sb.WriteString(`<button type="button" class="VerifiedInput_showPasswordEyes"`)
			writeAttrs(&sb, mergeAttrs(c.Wire("reveal", props), templ.Attributes{
				"aria-label":      label,
				"hx-on:mousedown": "event.preventDefault()",
				"hx-target":       target,
				"hx-swap":         string(SwapOuter),
				"hx-sync":         sync,
			}))
			sb.WriteString(`>`)
			sb.WriteString(icon)
			sb.WriteString(`</button>`)
		}

		if props.EndIcon != "" {
			writeIcon(&sb, props.EndIcon, "VerifiedInput-icon-wrapper")
		}

		sb.WriteString(`<span>`)
		if isError && props.ErrorMessage != "" {
			cls := "VerifiedInput_errorMessage"
			if props.ErrorMessageClass != "" {
				cls += " " + props.ErrorMessageClass
			}
			sb.WriteString(`<span class="`)
			sb.WriteString(html.EscapeString(cls))
			sb.WriteString(`" role="alert">`)
			sb.WriteString(html.EscapeString(props.ErrorMessage))
			sb.WriteString(`</span>`)
		}
		sb.WriteString(`</span>`)

		sb.WriteString(`</div></div>`)

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func writeIcon(sb *strings.Builder, markup, wrapperClass string) {
	sb.WriteString(`<div class="`)
	sb.WriteString(wrapperClass)
	sb.WriteString(`"><span class="VerifiedInput_icon">`)
	sb.WriteString(markup)
	sb.WriteString(`</span></div>`)
}

func mergeAttrs(base templ.Attributes, extra templ.Attributes) templ.Attributes {
	out := make(templ.Attributes, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// writeAttrs writes attributes in key order. true renders a bare
// attribute, false omits it.
func writeAttrs(sb *strings.Builder, attrs templ.Attributes) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				sb.WriteString(" ")
				sb.WriteString(k)
			}
		case string:
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(v))
			sb.WriteString(`"`)
		}
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
