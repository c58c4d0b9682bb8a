package hx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pthm/verifiedinput/internal/encoding"
)

func TestSentinelErrorsDistinct(t *testing.T) {
	errs := []error{ErrNotFound, ErrDecryptFailed, ErrSignatureInvalid, ErrInvalidFormat, ErrHydrationFailed}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   bool
		decryption bool
		badRequest bool
	}{
		{"nil", nil, false, false, false},
		{"not found", ErrNotFound, true, false, false},
		{"wrapped not found", fmt.Errorf("x: %w", ErrNotFound), true, false, false},
		{"decrypt", ErrDecryptFailed, false, true, true},
		{"signature", fmt.Errorf("x: %w", ErrSignatureInvalid), false, true, true},
		{"format", ErrInvalidFormat, false, false, true},
		{"hydration", ErrHydrationFailed, false, false, false},
		{"other", errors.New("other"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
			if got := IsDecryptionError(tt.err); got != tt.decryption {
				t.Errorf("IsDecryptionError() = %v, want %v", got, tt.decryption)
			}
			if got := IsBadRequest(tt.err); got != tt.badRequest {
				t.Errorf("IsBadRequest() = %v, want %v", got, tt.badRequest)
			}
		})
	}
}

func TestWrapDecodeError(t *testing.T) {
	tests := []struct {
		in   error
		want error
	}{
		{encoding.ErrSignatureInvalid, ErrSignatureInvalid},
		{fmt.Errorf("%w: short", encoding.ErrDecryptFailed), ErrDecryptFailed},
		{encoding.ErrInvalidFormat, ErrInvalidFormat},
	}
	for _, tt := range tests {
		if got := WrapDecodeError(tt.in); !errors.Is(got, tt.want) {
			t.Errorf("WrapDecodeError(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if WrapDecodeError(nil) != nil {
		t.Error("WrapDecodeError(nil) != nil")
	}
	other := errors.New("msgpack: bad")
	if got := WrapDecodeError(other); got != other {
		t.Errorf("WrapDecodeError(other) = %v", got)
	}
}

func TestErrorComponent(t *testing.T) {
	var buf bytes.Buffer
	err := ErrorComponent(errors.New(`bad <predicate>`)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, `class="hx-error"`) || !strings.Contains(got, "bad &lt;predicate&gt;") {
		t.Errorf("ErrorComponent() = %s", got)
	}
}
