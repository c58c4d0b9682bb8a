package verifiedinput

import (
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Predicate reports whether a value is valid.
type Predicate func(value string) bool

// AlwaysValid accepts every value. It is the default predicate.
func AlwaysValid(string) bool { return true }

// Required rejects blank values.
func Required(v string) bool { return strings.TrimSpace(v) != "" }

// MinLength rejects values shorter than n characters.
func MinLength(n int) Predicate {
	return func(v string) bool { return utf8.RuneCountInString(v) >= n }
}

// MaxLength rejects values longer than n characters.
func MaxLength(n int) Predicate {
	return func(v string) bool { return utf8.RuneCountInString(v) <= n }
}

// Pattern accepts values matching re.
func Pattern(re *regexp.Regexp) Predicate {
	return re.MatchString
}

// Email accepts a single bare address such as "a@example.com".
func Email(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v && addr.Name == ""
}

// PasswordPolicy accepts 8 to 128 characters with at least one upper case
// letter, one lower case letter, one digit and one symbol.
func PasswordPolicy(v string) bool {
	n := utf8.RuneCountInString(v)
	if n < 8 || n > 128 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range v {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsNumber(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// All accepts a value only when every predicate does.
func All(ps ...Predicate) Predicate {
	return func(v string) bool {
		for _, p := range ps {
			if p != nil && !p(v) {
				return false
			}
		}
		return true
	}
}

// PredicateFactory builds a predicate from configuration arguments.
type PredicateFactory func(args []string) (Predicate, error)

// Predicates maps names to predicate factories so fields configured from
// files or carried in encoded props can refer to a predicate by name.
type Predicates struct {
	mu        sync.RWMutex
	factories map[string]PredicateFactory
}

// NewPredicates returns a set holding the built-in predicates:
// always, required, email, password_policy, min_length N, max_length N and
// pattern RE.
func NewPredicates() *Predicates {
	ps := &Predicates{factories: make(map[string]PredicateFactory)}
	ps.Register("always", fixed(AlwaysValid))
	ps.Register("required", fixed(Required))
	ps.Register("email", fixed(Email))
	ps.Register("password_policy", fixed(PasswordPolicy))
	ps.Register("min_length", lengthFactory(MinLength))
	ps.Register("max_length", lengthFactory(MaxLength))
	ps.Register("pattern", func(args []string) (Predicate, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("pattern: want 1 argument, got %d", len(args))
		}
		re, err := regexp.Compile(args[0])
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		return Pattern(re), nil
	})
	return ps
}

// Register adds or replaces a named factory.
func (ps *Predicates) Register(name string, f PredicateFactory) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.factories[name] = f
}

// Lookup builds the named predicate. An empty name yields AlwaysValid.
func (ps *Predicates) Lookup(name string, args ...string) (Predicate, error) {
	if name == "" {
		return AlwaysValid, nil
	}
	ps.mu.RLock()
	f, ok := ps.factories[name]
	ps.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, name)
	}
	return f(args)
}

// Names lists registered predicate names in order.
func (ps *Predicates) Names() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	names := make([]string, 0, len(ps.factories))
	for name := range ps.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fixed(p Predicate) PredicateFactory {
	return func(args []string) (Predicate, error) {
		return p, nil
	}
}

func lengthFactory(build func(int) Predicate) PredicateFactory {
	return func(args []string) (Predicate, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("want 1 length argument, got %d", len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid length %q", args[0])
		}
		return build(n), nil
	}
}
