package verifiedinput

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type changeRecorder struct {
	calls []string
}

func (r *changeRecorder) onChange(v string) { r.calls = append(r.calls, v) }

func TestFieldMountsOnExternalValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"abc", "abc"},
		{42, "42"},
		{3.5, "3.5"},
		{nil, ""},
	}
	for _, tt := range tests {
		f := NewField(tt.in, NewOptions(ModeNumber), nil)
		if f.Value() != tt.want {
			t.Errorf("NewField(%v).Value() = %q, want %q", tt.in, f.Value(), tt.want)
		}
	}
}

func TestFieldNumberScenario(t *testing.T) {
	rec := &changeRecorder{}
	f := NewField("", NewOptions(ModeNumber, WithMax(100), WithMin(0)), rec.onChange)

	if d := f.Change("150"); d.Admitted {
		t.Fatalf("Change(150) admitted: %+v", d)
	}
	if f.Value() != "" {
		t.Errorf("Value() after rejected edit = %q, want empty", f.Value())
	}
	if len(rec.calls) != 0 {
		t.Errorf("onChange fired on rejected edit: %v", rec.calls)
	}

	if d := f.Change("50"); !d.Admitted {
		t.Fatalf("Change(50) rejected: %+v", d)
	}
	if f.Value() != "50" {
		t.Errorf("Value() = %q, want 50", f.Value())
	}
	if len(rec.calls) != 1 || rec.calls[0] != "50" {
		t.Errorf("onChange calls = %v, want [50]", rec.calls)
	}
}

func TestFieldRejectedEditKeepsValue(t *testing.T) {
	rec := &changeRecorder{}
	f := NewField("10", NewOptions(ModeNumber, WithMax(10)), rec.onChange)

	f.Change("11")
	if f.Value() != "10" {
		t.Errorf("Value() = %q, want 10", f.Value())
	}
	if len(rec.calls) != 0 {
		t.Errorf("onChange calls = %v, want none", rec.calls)
	}
}

func TestFieldLeadingZeroLaw(t *testing.T) {
	keep := NewField("", NewOptions(ModeNumber, WithLeadingZero(true)), nil)
	keep.Change("007")
	if keep.Value() != "007" {
		t.Errorf("with leading zeros Value() = %q, want 007", keep.Value())
	}

	strip := NewField("", NewOptions(ModeNumber), nil)
	strip.Change("007")
	if strip.Value() != "7" {
		t.Errorf("without leading zeros Value() = %q, want 7", strip.Value())
	}
}

func TestFieldChangeIsIdempotent(t *testing.T) {
	rec := &changeRecorder{}
	f := NewField("", NewOptions(ModeNumber), rec.onChange)
	f.Change("0012")
	first := f.Value()
	f.Change("0012")
	if f.Value() != first {
		t.Errorf("second admission stored %q, first stored %q", f.Value(), first)
	}
	if len(rec.calls) != 2 || rec.calls[0] != rec.calls[1] {
		t.Errorf("onChange calls = %v, want two identical calls", rec.calls)
	}
}

func TestFieldTextAdmitsEverything(t *testing.T) {
	rec := &changeRecorder{}
	f := NewField("", NewOptions(ModeText), rec.onChange)
	f.Change("1e5+")
	if f.Value() != "1e5+" || len(rec.calls) != 1 {
		t.Errorf("Value() = %q calls = %v", f.Value(), rec.calls)
	}
}

func TestFieldKeyDown(t *testing.T) {
	f := NewField("", NewOptions(ModeNumber), nil)
	if f.KeyDown(".") {
		t.Error("KeyDown(.) allowed on integer field")
	}
	if !f.KeyDown("1") {
		t.Error("KeyDown(1) suppressed")
	}
}

func TestFieldErrorVisibility(t *testing.T) {
	f := NewField("", NewOptions(ModeText, WithValidation(Required)), nil)
	if f.IsError() {
		t.Fatal("IsError() before interaction")
	}

	f.Blur()
	if !f.IsError() {
		t.Fatal("IsError() = false after blur with empty value")
	}

	f.Change("hello")
	if f.IsError() {
		t.Error("IsError() = true for valid value")
	}

	f.Change("")
	if !f.IsError() {
		t.Error("IsError() = false after clearing value")
	}
	if !f.Touched() {
		t.Error("Touched() reset")
	}
}

func TestFieldSubmitAttemptShowsError(t *testing.T) {
	f := NewField("", NewOptions(ModeText, WithValidation(Required)), nil)
	f.SetSubmitAttempted(true)
	if !f.IsError() {
		t.Error("IsError() = false after submit attempt")
	}
}

func TestFieldValidationDisabled(t *testing.T) {
	opts := NewOptions(ModeText)
	opts.Predicate = never
	f := NewField("", opts, nil)
	f.Blur()
	f.SetSubmitAttempted(true)
	if f.IsError() {
		t.Error("IsError() = true with validation disabled")
	}
}

func TestFieldPasswordReveal(t *testing.T) {
	f := NewField("secret", NewOptions(ModePassword, WithReveal()), nil)
	if f.InputType() != InputPassword {
		t.Fatalf("initial InputType() = %s, want password", f.InputType())
	}

	f.ToggleReveal()
	if f.InputType() != InputText {
		t.Errorf("after one toggle InputType() = %s, want text", f.InputType())
	}

	f.ToggleReveal()
	if f.InputType() != InputPassword {
		t.Errorf("after two toggles InputType() = %s, want password", f.InputType())
	}
}

func TestFieldRevealRequiresPermission(t *testing.T) {
	f := NewField("secret", NewOptions(ModePassword), nil)
	if f.ToggleReveal() {
		t.Error("ToggleReveal() revealed without permission")
	}
	if f.InputType() != InputPassword {
		t.Errorf("InputType() = %s, want password", f.InputType())
	}

	text := NewField("", NewOptions(ModeText, WithReveal()), nil)
	if text.ToggleReveal() {
		t.Error("ToggleReveal() changed a text field")
	}
}

func TestFieldRestore(t *testing.T) {
	s := State{Value: "5", Touched: true, Submitted: true, Revealed: true}
	f := Restore(s, NewOptions(ModePassword, WithReveal()), nil)
	if f.State() != s {
		t.Errorf("State() = %+v, want %+v", f.State(), s)
	}
	if f.InputType() != InputText {
		t.Errorf("InputType() = %s, want text", f.InputType())
	}
}

func TestFieldLogsRejections(t *testing.T) {
	var buf bytes.Buffer
	f := NewField("", NewOptions(ModeNumber, WithMax(1)), nil)
	f.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	f.Change("2")
	if !strings.Contains(buf.String(), "reason=above_max") {
		t.Errorf("log output missing reason: %s", buf.String())
	}
}
