package verifiedinput

import (
	"strings"
	"testing"
)

func TestAdmitNumber(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		next       string
		wantOK     bool
		wantValue  string
		wantReason Reason
	}{
		{"empty always admitted", NewOptions(ModeNumber, WithMax(10), WithMin(5)), "", true, "", ""},
		{"plain integer", NewOptions(ModeNumber), "42", true, "42", ""},
		{"not numeric", NewOptions(ModeNumber), "abc", false, "", ReasonNotNumeric},
		{"bare minus", NewOptions(ModeNumber), "-", false, "", ReasonNotNumeric},
		{"infinity", NewOptions(ModeNumber, WithInteger(false)), "Infinity", false, "", ReasonNotNumeric},
		{"above max", NewOptions(ModeNumber, WithMax(10)), "11", false, "", ReasonAboveMax},
		{"at max", NewOptions(ModeNumber, WithMax(10)), "10", true, "10", ""},
		{"max ignored when unset", NewOptions(ModeNumber), "99999", true, "99999", ""},
		{"below min", NewOptions(ModeNumber, WithMin(5)), "4", false, "", ReasonBelowMin},
		{"at min", NewOptions(ModeNumber, WithMin(5)), "5", true, "5", ""},
		{"negative with zero min", NewOptions(ModeNumber, WithMin(0)), "-5", false, "", ReasonBelowMin},
		{"negative zero with zero min", NewOptions(ModeNumber, WithMin(0)), "-0", false, "", ReasonNegative},
		{"negative allowed when min disabled", NewOptions(ModeNumber), "-5", true, "-5", ""},
		{"negative above nonzero min", NewOptions(ModeNumber, WithMin(-10)), "-5", true, "-5", ""},
		{"negative below nonzero min", NewOptions(ModeNumber, WithMin(-10)), "-11", false, "", ReasonBelowMin},
		{"fraction rejected", NewOptions(ModeNumber), "3.5", false, "", ReasonFraction},
		{"fraction allowed", NewOptions(ModeNumber, WithInteger(false)), "3.5", true, "3.5", ""},
		{"trailing point is integer", NewOptions(ModeNumber), "3.", true, "3", ""},
		{"plus sign", NewOptions(ModeNumber), "+5", false, "", ReasonNotation},
		{"exponent", NewOptions(ModeNumber), "1e3", false, "", ReasonNotation},
		{"upper exponent", NewOptions(ModeNumber), "1E3", false, "", ReasonNotation},
		{"leading zeros stripped", NewOptions(ModeNumber), "007", true, "7", ""},
		{"leading zeros kept", NewOptions(ModeNumber, WithLeadingZero(true)), "007", true, "007", ""},
		{"fraction canonical", NewOptions(ModeNumber, WithInteger(false)), "01.50", true, "1.5", ""},
		{"whitespace canonical", NewOptions(ModeNumber), " 8 ", true, "8", ""},
		{"whitespace only coerces to zero", NewOptions(ModeNumber), "  ", true, "0", ""},
		{"whitespace only kept verbatim", NewOptions(ModeNumber, WithLeadingZero(true)), "  ", true, "  ", ""},
		{"hex canonical", NewOptions(ModeNumber), "0x10", true, "16", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := AdmitNumber(tt.next, tt.opts)
			if d.Admitted != tt.wantOK {
				t.Fatalf("AdmitNumber(%q) admitted = %v, want %v (reason %q)", tt.next, d.Admitted, tt.wantOK, d.Reason)
			}
			if d.Value != tt.wantValue {
				t.Errorf("AdmitNumber(%q) value = %q, want %q", tt.next, d.Value, tt.wantValue)
			}
			if d.Reason != tt.wantReason {
				t.Errorf("AdmitNumber(%q) reason = %q, want %q", tt.next, d.Reason, tt.wantReason)
			}
		})
	}
}

func TestAdmitTextIsVerbatim(t *testing.T) {
	for _, mode := range []Mode{ModeText, ModePassword} {
		for _, next := range []string{"", "abc", "1e3", "-", "  007 "} {
			d := Admit(next, NewOptions(mode, WithMax(1), WithMin(0)))
			if !d.Admitted || d.Value != next {
				t.Errorf("Admit(%q) in %s mode = %+v, want verbatim admission", next, mode, d)
			}
		}
	}
}

// Every admitted numeric value is empty or well formed under the options.
func TestAdmittedNumbersAreWellFormed(t *testing.T) {
	opts := NewOptions(ModeNumber, WithMax(100), WithMin(0))
	inputs := []string{
		"", "0", "5", "50", "100", "101", "-1", "-0", "1.5", "2.0", "1e2",
		"+3", "abc", "007", " 9", "0x20", "99.", ".", "--1", "1-1",
	}

	for _, in := range inputs {
		d := AdmitNumber(in, opts)
		if !d.Admitted {
			continue
		}
		if d.Value == "" {
			continue
		}
		n, ok := ParseNumber(d.Value)
		if !ok {
			t.Errorf("admitted %q stored %q which does not parse", in, d.Value)
			continue
		}
		if n > 100 || n < 0 || !IsInteger(n) {
			t.Errorf("admitted %q stored out of range value %q", in, d.Value)
		}
		if strings.ContainsAny(in, "+eE") || strings.Contains(in, "-") {
			t.Errorf("admitted %q containing forbidden characters", in)
		}
	}
}

func TestAdmitIsIdempotent(t *testing.T) {
	opts := NewOptions(ModeNumber)
	for _, in := range []string{"007", "42", "", " 3"} {
		first := AdmitNumber(in, opts)
		second := AdmitNumber(in, opts)
		if first != second {
			t.Errorf("AdmitNumber(%q) not idempotent: %+v then %+v", in, first, second)
		}
		if first.Admitted {
			again := AdmitNumber(first.Value, opts)
			if again.Value != first.Value {
				t.Errorf("re-admitting %q gave %q", first.Value, again.Value)
			}
		}
	}
}

func TestAllowKey(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		key  string
		want bool
	}{
		{"dot in integer number", NewOptions(ModeNumber), ".", false},
		{"dot in decimal number", NewOptions(ModeNumber, WithInteger(false)), ".", true},
		{"dot in text", NewOptions(ModeText), ".", true},
		{"digit in integer number", NewOptions(ModeNumber), "5", true},
		{"minus in integer number", NewOptions(ModeNumber), "-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowKey(tt.key, tt.opts); got != tt.want {
				t.Errorf("AllowKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
