package verifiedinput

import (
	"fmt"
	"strings"
)

// Mode is the kind of field a verified input edits. It is fixed for the
// lifetime of a field.
type Mode string

const (
	ModeText     Mode = "text"
	ModeNumber   Mode = "number"
	ModePassword Mode = "password"
)

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeNumber, ModePassword:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Bounds limits the numeric value of a Number field.
type Bounds struct {
	// HasMax enables the upper bound.
	HasMax bool
	Max    float64
	// MinEnabled enables the lower bound. Min defaults to 0.
	MinEnabled bool
	Min        float64
}

// Options configures the behavior of a field. The zero value is not useful;
// start from DefaultOptions or NewOptions.
type Options struct {
	Mode   Mode
	Bounds Bounds

	// IntegerOnly rejects fractional numbers and suppresses the "." key.
	IntegerOnly bool
	// AllowLeadingZero stores admitted numerals verbatim ("007") instead of
	// their canonical form ("7").
	AllowLeadingZero bool
	// ShowArrow is cosmetic: whether a number control shows spin arrows.
	ShowArrow bool

	EnableValidation bool
	// Predicate decides whether the current value is valid. Nil means
	// always valid.
	Predicate Predicate

	// AllowReveal enables the password reveal toggle.
	AllowReveal bool
}

// DefaultOptions returns the defaults for a field of the given mode:
// integers only, no leading zeros, arrows shown, validation off.
func DefaultOptions(mode Mode) Options {
	return Options{
		Mode:        mode,
		IntegerOnly: true,
		ShowArrow:   true,
		Predicate:   AlwaysValid,
	}
}

// Option mutates Options.
type Option func(*Options)

// NewOptions applies opts over DefaultOptions(mode).
func NewOptions(mode Mode, opts ...Option) Options {
	o := DefaultOptions(mode)
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMax sets an inclusive upper bound.
func WithMax(limit float64) Option {
	return func(o *Options) {
		o.Bounds.HasMax = true
		o.Bounds.Max = limit
	}
}

// WithMin enables an inclusive lower bound.
func WithMin(limit float64) Option {
	return func(o *Options) {
		o.Bounds.MinEnabled = true
		o.Bounds.Min = limit
	}
}

// WithInteger sets whether only integers are admitted.
func WithInteger(integer bool) Option {
	return func(o *Options) { o.IntegerOnly = integer }
}

// WithLeadingZero sets whether admitted numerals keep their leading zeros.
func WithLeadingZero(allow bool) Option {
	return func(o *Options) { o.AllowLeadingZero = allow }
}

// WithArrow sets whether number spin arrows are shown.
func WithArrow(show bool) Option {
	return func(o *Options) { o.ShowArrow = show }
}

// WithValidation enables error display driven by p.
func WithValidation(p Predicate) Option {
	return func(o *Options) {
		o.EnableValidation = true
		o.Predicate = p
	}
}

// WithReveal enables the password reveal toggle.
func WithReveal() Option {
	return func(o *Options) { o.AllowReveal = true }
}

// ValueOf stringifies an externally supplied value, which may be text or a
// number.
func ValueOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return FormatNumber(x)
	case float32:
		return FormatNumber(float64(x))
	case int:
		return FormatNumber(float64(x))
	case int64:
		return FormatNumber(float64(x))
	case int32:
		return FormatNumber(float64(x))
	case uint:
		return FormatNumber(float64(x))
	case uint64:
		return FormatNumber(float64(x))
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
