// Package verifiedinput implements the behavior of a verified form input: a
// text, number or password field that filters edits, decides when to show
// a validation error and resolves how the control should render.
//
// The package is renderer-agnostic. The hx package serves it as an HTMX
// component and the tui package renders it in a terminal; both drive the
// same Field.
//
// # Change admission
//
// Text and password fields admit every edit. Number fields admit an edit
// only if it is empty or a finite numeral that respects the configured
// bounds, the integer rule and contains no "+" or exponent:
//
//	opts := verifiedinput.NewOptions(verifiedinput.ModeNumber,
//	    verifiedinput.WithMax(100),
//	    verifiedinput.WithMin(0),
//	)
//	verifiedinput.Admit("150", opts) // rejected, ReasonAboveMax
//	verifiedinput.Admit("050", opts) // admitted as "50"
//
// Admit is pure; Field wraps it with state and the owner's change callback.
//
// # Error visibility
//
// An error is never shown before the field is blurred or the owner
// attempts a submit. After that it is shown exactly when validation is on
// and the predicate rejects the current value:
//
//	f := verifiedinput.NewField("", verifiedinput.NewOptions(
//	    verifiedinput.ModeText,
//	    verifiedinput.WithValidation(verifiedinput.Required),
//	), nil)
//	f.IsError() // false
//	f.Blur()
//	f.IsError() // true
//
// Predicates are plain functions. Predicates (the type) names them so that
// configuration files and encoded props can refer to them.
package verifiedinput
