package verifiedinput

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// decimalLiteral matches a signed decimal numeral with optional fraction and
// exponent. "5." and ".5" are both numerals.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber coerces text to a number the way a browser coerces the value
// of a numeric input: surrounding whitespace is ignored, blank text is zero,
// and 0x/0o/0b integer literals are accepted. It reports false when the text
// is not a numeral or the result is not finite.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimFunc(s, isNumeralSpace)
	if s == "" {
		return 0, true
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return parseRadix(s[2:], 16)
		case 'o', 'O':
			return parseRadix(s[2:], 8)
		case 'b', 'B':
			return parseRadix(s[2:], 2)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range numerals coerce to ±Inf, which is not finite.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && f == 0 {
			// Underflow rounds to zero.
			return 0, true
		}
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func parseRadix(digits string, base int) (float64, bool) {
	if digits == "" {
		return 0, false
	}
	var f float64
	for _, r := range digits {
		d, ok := digitValue(r)
		if !ok || d >= base {
			return 0, false
		}
		f = f*float64(base) + float64(d)
	}
	if math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

func isNumeralSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// FormatNumber renders f as its canonical numeral: the shortest decimal that
// round-trips, in positional form for magnitudes in [1e-6, 1e21) and in
// exponent form ("1e+21", "1.5e-7") otherwise. Negative zero prints as "0".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Shortest round-trip digits as d.ddde±x.
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mantissa, ".", "", 1)
	k := len(digits)
	n := exp + 1 // position of the decimal point relative to the digits

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		e := n - 1
		expSign := "+"
		if e < 0 {
			expSign = "-"
			e = -e
		}
		out = digits[:1]
		if k > 1 {
			out += "." + digits[1:]
		}
		out += "e" + expSign + strconv.Itoa(e)
	}
	return sign + out
}

// IsInteger reports whether f is a finite mathematical integer.
func IsInteger(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}
