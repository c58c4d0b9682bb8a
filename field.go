package verifiedinput

import (
	"log/slog"
)

// ChangeFunc receives the admitted, possibly normalized, value of a field.
type ChangeFunc func(value string)

// State is the mutable part of a field, suitable for carrying between
// requests or frames.
type State struct {
	Value     string
	Touched   bool
	Submitted bool
	Revealed  bool
}

// Field holds the state of one verified input and applies the change,
// blur and reveal events to it. A Field is driven by a single event loop
// and is not safe for concurrent use.
type Field struct {
	opts     Options
	state    State
	onChange ChangeFunc
	logger   *slog.Logger
}

// NewField mounts a field on an externally supplied value, which may be
// text or a number. onChange may be nil.
func NewField(value any, opts Options, onChange ChangeFunc) *Field {
	return Restore(State{Value: ValueOf(value)}, opts, onChange)
}

// Restore rebuilds a field from a previously captured State.
func Restore(s State, opts Options, onChange ChangeFunc) *Field {
	if opts.Predicate == nil {
		opts.Predicate = AlwaysValid
	}
	return &Field{
		opts:     opts,
		state:    s,
		onChange: onChange,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger routes debug output about rejected edits to l.
func (f *Field) SetLogger(l *slog.Logger) {
	if l != nil {
		f.logger = l
	}
}

// Change proposes next as the new value. An admitted edit updates the value
// and calls onChange with the stored text; a rejected edit changes nothing.
func (f *Field) Change(next string) Decision {
	d := Admit(next, f.opts)
	if !d.Admitted {
		f.logger.Debug("edit rejected",
			"mode", f.opts.Mode,
			"proposed", next,
			"reason", d.Reason,
		)
		return d
	}
	f.state.Value = d.Value
	if f.onChange != nil {
		f.onChange(d.Value)
	}
	return d
}

// KeyDown reports whether key may reach the control.
func (f *Field) KeyDown(key string) bool {
	return AllowKey(key, f.opts)
}

// Blur marks the field as touched. Touched never resets.
func (f *Field) Blur() {
	f.state.Touched = true
}

// SetSubmitAttempted records whether the owning form tried to submit.
func (f *Field) SetSubmitAttempted(v bool) {
	f.state.Submitted = v
}

// ToggleReveal flips password visibility and returns the new setting. It
// does nothing unless the field is a password field with reveal enabled.
func (f *Field) ToggleReveal() bool {
	if f.opts.Mode != ModePassword || !f.opts.AllowReveal {
		return f.state.Revealed
	}
	f.state.Revealed = !f.state.Revealed
	return f.state.Revealed
}

// IsError reports whether an error indicator should be shown now.
func (f *Field) IsError() bool {
	return ErrorVisible(Visibility{
		Touched:          f.state.Touched,
		Submitted:        f.state.Submitted,
		EnableValidation: f.opts.EnableValidation,
		Predicate:        f.opts.Predicate,
		Value:            f.state.Value,
	})
}

// InputType is the type the control should render as now.
func (f *Field) InputType() InputType {
	return ResolveInputType(f.opts.Mode, f.opts.AllowReveal, f.state.Revealed)
}

// Value returns the last admitted text.
func (f *Field) Value() string { return f.state.Value }

// Touched reports whether the field has lost focus at least once.
func (f *Field) Touched() bool { return f.state.Touched }

// Revealed reports whether a password is currently shown in plain text.
func (f *Field) Revealed() bool { return f.state.Revealed }

// State captures the field's mutable state.
func (f *Field) State() State { return f.state }

// Options returns the field's configuration.
func (f *Field) Options() Options { return f.opts }
