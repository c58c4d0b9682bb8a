package hx

import (
	"context"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/verifiedinput"
)

// FormProps is the state of a form of verified inputs.
type FormProps struct {
	ID     string       `msgpack:"id"`
	Title  string       `msgpack:"t,omitempty"`
	Fields []InputProps `msgpack:"f"`
}

// Form renders a set of verified inputs and checks them on submit.
// Submitting announces EventSubmitted so every input shows its errors.
type Form struct {
	*Component[FormProps]
	input *Input
}

// NewForm creates a form whose fields are rendered by input. Register both.
func NewForm(input *Input) *Form {
	c := &Form{
		Component: New[FormProps]("verifiedform").Sensitive(),
		input:     input,
	}
	c.Action("submit", c.handleSubmit)
	return c
}

// Hydrate hydrates every field.
func (c *Form) Hydrate(ctx context.Context, props *FormProps) error {
	if props.ID == "" {
		props.ID = "vf-form"
	}
	for i := range props.Fields {
		if err := c.input.Hydrate(ctx, &props.Fields[i]); err != nil {
			return err
		}
	}
	return nil
}

// Render produces the form markup.
func (c *Form) Render(ctx context.Context, props FormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<form`)
		writeAttrs(&sb, mergeAttrs(c.Wire("submit", props), templ.Attributes{
			"id":         props.ID,
			"class":      "VerifiedForm",
			"hx-swap":    string(SwapNone),
			"novalidate": true,
		}))
		sb.WriteString(`>`)
		if props.Title != "" {
			sb.WriteString(`<h2>`)
			sb.WriteString(html.EscapeString(props.Title))
			sb.WriteString(`</h2>`)
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}

		for _, field := range props.Fields {
			if err := c.input.Render(ctx, field).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<button type="submit">Submit</button></form>`)
		return err
	})
}

// HXServeHTTP implements HXComponent.
func (c *Form) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

// Invalid returns the form keys of the fields whose submitted value the
// filter would not admit or the predicate rejects.
func Invalid(fields []InputProps, values func(key string) string) []string {
	var invalid []string
	for _, field := range fields {
		opts := field.Options()
		d := verifiedinput.Admit(values(field.formKey()), opts)
		if !d.Admitted || verifiedinput.ErrorVisible(verifiedinput.Visibility{
			Submitted:        true,
			EnableValidation: opts.EnableValidation,
			Predicate:        opts.Predicate,
			Value:            d.Value,
		}) {
			invalid = append(invalid, field.formKey())
		}
	}
	return invalid
}

func (c *Form) handleSubmit(ctx context.Context, props FormProps, r *http.Request) Result[FormProps] {
	invalid := Invalid(props.Fields, r.FormValue)
	c.input.metrics.submit(len(invalid) == 0)

	result := OK(props).Trigger(EventSubmitted, map[string]any{"invalid": invalid})
	if len(invalid) > 0 {
		c.Logger().Info("form rejected", "invalid", invalid)
		return result.Flash(FlashError, needAttention(invalid))
	}
	return result.Flash(FlashSuccess, "Form accepted")
}

// needAttention names the invalid fields for the error toast.
func needAttention(invalid []string) string {
	if len(invalid) == 1 {
		return invalid[0] + " needs attention"
	}
	return strconv.Itoa(len(invalid)) + " fields need attention: " + strings.Join(invalid, ", ")
}
