package verifiedinput

import "strings"

// Reason explains why an edit was rejected. The empty Reason means the
// edit was admitted.
type Reason string

const (
	ReasonNotNumeric Reason = "not_numeric"
	ReasonAboveMax   Reason = "above_max"
	ReasonBelowMin   Reason = "below_min"
	ReasonNegative   Reason = "negative"
	ReasonFraction   Reason = "fraction"
	ReasonNotation   Reason = "notation"
)

// Decision is the outcome of running a proposed edit through the filter.
type Decision struct {
	// Admitted is false when the edit must be dropped.
	Admitted bool
	// Value is the text to store and report when admitted. It may differ
	// from the proposal after normalization.
	Value string
	// Reason is set when the edit was rejected.
	Reason Reason
}

func admit(v string) Decision { return Decision{Admitted: true, Value: v} }

func reject(r Reason) Decision { return Decision{Reason: r} }

// Admit decides whether next may replace the field's value. Text and
// password fields admit everything verbatim; number fields go through
// AdmitNumber. Admit is pure.
func Admit(next string, opts Options) Decision {
	if opts.Mode == ModeNumber {
		return AdmitNumber(next, opts)
	}
	return admit(next)
}

// AdmitNumber applies the numeric checks in order and stops at the first
// failure:
//
//  1. empty text is always admitted
//  2. the text must be a finite numeral
//  3. the value must not exceed the max bound
//  4. with the min bound on, the value must not be below it, and a zero
//     min also forbids any "-" in the text
//  5. integer-only fields reject fractions
//  6. "+" and exponent notation are rejected
//
// Admitted text is stored verbatim when leading zeros are allowed and as
// the canonical numeral otherwise. Whitespace-only text coerces to zero, so
// it is stored as "0", or as the whitespace itself when leading zeros are
// allowed.
func AdmitNumber(next string, opts Options) Decision {
	if next == "" {
		return admit("")
	}

	n, ok := ParseNumber(next)
	if !ok {
		return reject(ReasonNotNumeric)
	}

	b := opts.Bounds
	if b.HasMax && n > b.Max {
		return reject(ReasonAboveMax)
	}
	if b.MinEnabled {
		if n < b.Min && next != "" {
			return reject(ReasonBelowMin)
		}
		// Only a zero min forbids the sign outright; other mins rely on the
		// range check above.
		if b.Min == 0 && strings.Contains(next, "-") {
			return reject(ReasonNegative)
		}
	}
	if opts.IntegerOnly && !IsInteger(n) {
		return reject(ReasonFraction)
	}
	if strings.ContainsAny(next, "+eE") {
		return reject(ReasonNotation)
	}

	if opts.AllowLeadingZero {
		return admit(next)
	}
	return admit(FormatNumber(n))
}

// AllowKey reports whether a keystroke may reach the field at all. Integer
// number fields swallow "." so the control never holds a transient decimal.
func AllowKey(key string, opts Options) bool {
	if opts.Mode == ModeNumber && opts.IntegerOnly && key == "." {
		return false
	}
	return true
}
