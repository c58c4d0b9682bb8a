package hx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/pthm/verifiedinput"
)

// Events emitted and consumed by Input.
const (
	// EventChange is triggered after an admitted edit with detail
	// {"name": ..., "value": ...}.
	EventChange = "verifiedinput:change"
	// EventSubmitted is the owner's submit attempt. Every Input on the page
	// listens for it and re-renders with Submitted set.
	EventSubmitted = "verifiedinput:submitted"
)

// InputProps is the wire state of one verified input. Options travel
// with the value; the predicate travels by name and is resolved in
// Hydrate.
type InputProps struct {
	ID          string `msgpack:"id"`
	Name        string `msgpack:"n,omitempty"`
	Label       string `msgpack:"l,omitempty"`
	Placeholder string `msgpack:"ph,omitempty"`
	Value       string `msgpack:"v"`

	Mode       verifiedinput.Mode `msgpack:"m"`
	HasMax     bool               `msgpack:"hm,omitempty"`
	Max        float64            `msgpack:"mx,omitempty"`
	MinEnabled bool               `msgpack:"me,omitempty"`
	Min        float64            `msgpack:"mn,omitempty"`
	Integer    bool               `msgpack:"i,omitempty"`
	ZeroStart  bool               `msgpack:"z,omitempty"`
	ShowArrow  bool               `msgpack:"a,omitempty"`

	EnableValidation bool     `msgpack:"ev,omitempty"`
	Predicate        string   `msgpack:"p,omitempty"`
	PredicateArgs    []string `msgpack:"pa,omitempty"`

	// ShowPassword enables the reveal toggle on password inputs.
	ShowPassword bool `msgpack:"sp,omitempty"`

	Touched   bool `msgpack:"t,omitempty"`
	Submitted bool `msgpack:"s,omitempty"`
	Revealed  bool `msgpack:"r,omitempty"`
	Disabled  bool `msgpack:"d,omitempty"`

	ErrorMessage      string `msgpack:"em,omitempty"`
	ErrorMessageClass string `msgpack:"emc,omitempty"`
	ErrorInputClass   string `msgpack:"eic,omitempty"`

	// StartIcon and EndIcon are trusted markup rendered beside the control.
	StartIcon string `msgpack:"si,omitempty"`
	EndIcon   string `msgpack:"ei,omitempty"`

	predicate verifiedinput.Predicate
}

// NewInputProps builds props for a field named name from widget options.
// A predicate in opts cannot travel; set Predicate and PredicateArgs to a
// name the Input's registry resolves.
func NewInputProps(name string, value any, opts verifiedinput.Options) InputProps {
	return InputProps{
		Name:             name,
		Value:            verifiedinput.ValueOf(value),
		Mode:             opts.Mode,
		HasMax:           opts.Bounds.HasMax,
		Max:              opts.Bounds.Max,
		MinEnabled:       opts.Bounds.MinEnabled,
		Min:              opts.Bounds.Min,
		Integer:          opts.IntegerOnly,
		ZeroStart:        opts.AllowLeadingZero,
		ShowArrow:        opts.ShowArrow,
		EnableValidation: opts.EnableValidation,
		ShowPassword:     opts.AllowReveal,
	}
}

// Options rebuilds the widget options. The predicate is only set once the
// props have been hydrated.
func (p InputProps) Options() verifiedinput.Options {
	return verifiedinput.Options{
		Mode: p.Mode,
		Bounds: verifiedinput.Bounds{
			HasMax:     p.HasMax,
			Max:        p.Max,
			MinEnabled: p.MinEnabled,
			Min:        p.Min,
		},
		IntegerOnly:      p.Integer,
		AllowLeadingZero: p.ZeroStart,
		ShowArrow:        p.ShowArrow,
		EnableValidation: p.EnableValidation,
		Predicate:        p.predicate,
		AllowReveal:      p.ShowPassword,
	}
}

func (p InputProps) state() verifiedinput.State {
	return verifiedinput.State{
		Value:     p.Value,
		Touched:   p.Touched,
		Submitted: p.Submitted,
		Revealed:  p.Revealed,
	}
}

func (p *InputProps) setState(s verifiedinput.State) {
	p.Value = s.Value
	p.Touched = s.Touched
	p.Submitted = s.Submitted
	p.Revealed = s.Revealed
}

// Field restores the widget state held by the props.
func (p InputProps) Field() *verifiedinput.Field {
	return verifiedinput.Restore(p.state(), p.Options(), nil)
}

// formKey is the form field the control's value is posted under.
func (p InputProps) formKey() string {
	if p.Name == "" {
		return "value"
	}
	return p.Name
}

// Input serves verified inputs. One registered Input renders every field on
// a page; each field's configuration lives in its props.
type Input struct {
	*Component[InputProps]
	predicates *verifiedinput.Predicates
	metrics    *Metrics
}

// NewInput creates the component. Predicate names in props are looked up
// in preds; nil means the built-in set. Props hold field values, passwords
// included, so they are encrypted.
func NewInput(preds *verifiedinput.Predicates) *Input {
	if preds == nil {
		preds = verifiedinput.NewPredicates()
	}
	c := &Input{
		Component:  New[InputProps]("verifiedinput").Sensitive(),
		predicates: preds,
	}
	c.Action("change", c.handleChange)
	c.Action("blur", c.handleBlur)
	c.Action("reveal", c.handleReveal)
	c.Action("submitted", c.handleSubmitted)
	return c
}

// SetMetrics records edits and events to m.
func (c *Input) SetMetrics(m *Metrics) {
	c.metrics = m
}

// Hydrate validates the mode, resolves the named predicate and assigns a
// DOM id to inputs that have none.
func (c *Input) Hydrate(ctx context.Context, props *InputProps) error {
	if props.Mode == "" {
		props.Mode = verifiedinput.ModeText
	}
	if _, err := verifiedinput.ParseMode(string(props.Mode)); err != nil {
		return err
	}
	if props.Name == PropsParam {
		return fmt.Errorf("%w: %q", ErrReservedName, props.Name)
	}

	p, err := c.predicates.Lookup(props.Predicate, props.PredicateArgs...)
	if err != nil {
		return fmt.Errorf("field %q: %w", props.Name, err)
	}
	props.predicate = p

	if props.ID == "" {
		if props.Name != "" {
			props.ID = "vi-" + props.Name
		} else {
			props.ID = "vi-" + uuid.NewString()
		}
	}
	return nil
}

// Render produces the input markup.
func (c *Input) Render(ctx context.Context, props InputProps) templ.Component {
	return inputTemplate(c, props)
}

// HXServeHTTP implements HXComponent.
func (c *Input) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

// handleChange runs the proposed text through the admission filter. A
// rejected edit re-renders the previous value, which puts the control back.
func (c *Input) handleChange(ctx context.Context, props InputProps, r *http.Request) Result[InputProps] {
	if props.Disabled {
		return OK(props)
	}

	f := props.Field()
	f.SetLogger(c.Logger())
	d := f.Change(r.FormValue(props.formKey()))
	c.metrics.edit(props.Name, d.Admitted)
	if !d.Admitted {
		return OK(props)
	}

	props.setState(f.State())
	return OK(props).Trigger(EventChange, map[string]any{
		"name":  props.Name,
		"value": props.Value,
	})
}

// handleBlur marks the field touched. The control's text is posted along
// with the blur so that an edit still inside the change debounce is not
// lost to the re-render.
func (c *Input) handleBlur(ctx context.Context, props InputProps, r *http.Request) Result[InputProps] {
	f := props.Field()
	f.SetLogger(c.Logger())

	admitted := false
	if next, ok := postedValue(r, props.formKey()); ok && !props.Disabled && next != f.Value() {
		d := f.Change(next)
		c.metrics.edit(props.Name, d.Admitted)
		admitted = d.Admitted
	}

	f.Blur()
	props.setState(f.State())
	c.metrics.event(props.Name, "blur")

	if !admitted {
		return OK(props)
	}
	return OK(props).Trigger(EventChange, map[string]any{
		"name":  props.Name,
		"value": props.Value,
	})
}

// postedValue returns the form value posted under key, if any was.
func postedValue(r *http.Request, key string) (string, bool) {
	if err := r.ParseForm(); err != nil {
		return "", false
	}
	v, ok := r.Form[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (c *Input) handleReveal(ctx context.Context, props InputProps, r *http.Request) Result[InputProps] {
	f := props.Field()
	if f.ToggleReveal() {
		c.metrics.event(props.Name, "reveal")
	}
	props.setState(f.State())
	return OK(props)
}

func (c *Input) handleSubmitted(ctx context.Context, props InputProps, r *http.Request) Result[InputProps] {
	f := props.Field()
	f.SetSubmitAttempted(true)
	props.setState(f.State())
	c.metrics.event(props.Name, "submitted")
	return OK(props)
}
