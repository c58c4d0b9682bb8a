package verifiedinput

import "errors"

// Sentinel errors for field configuration.
var (
	ErrUnknownMode      = errors.New("verifiedinput: unknown field mode")
	ErrUnknownPredicate = errors.New("verifiedinput: unknown predicate")
)
