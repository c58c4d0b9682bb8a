package verifiedinput

// Visibility is the input of the error display policy.
type Visibility struct {
	Touched          bool
	Submitted        bool
	EnableValidation bool
	Predicate        Predicate
	Value            string
}

// ErrorVisible decides whether an error indicator should be shown. Nothing
// is shown until the field has been blurred or the owner attempted a
// submit; after that an error is shown when validation is on and the
// predicate rejects the value. A nil predicate accepts everything.
func ErrorVisible(v Visibility) bool {
	if !v.Touched && !v.Submitted {
		return false
	}
	if !v.EnableValidation {
		return false
	}
	if v.Predicate == nil || v.Predicate(v.Value) {
		return false
	}
	return true
}
