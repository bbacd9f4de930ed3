package errors

import (
	"errors"
	"fmt"
	"testing"
)

var errDisk = errors.New("disk full")

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidScale, "scale must be positive, got %v", -1), "INVALID_SCALE: scale must be positive, got -1"},
		{Wrap(ErrCodeFileNotFound, errDisk, "read %s", "groups.json"), "FILE_NOT_FOUND: read groups.json: disk full"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeInternal, errDisk, "export")
	if !errors.Is(err, errDisk) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(err) != errDisk {
		t.Error("Unwrap should return the cause")
	}
	if New(ErrCodeInternal, "x").Unwrap() != nil {
		t.Error("New should not set a cause")
	}
}

func TestCodeLookup(t *testing.T) {
	nested := Wrap(ErrCodeInternal, New(ErrCodeInvalidGroup, "inner"), "outer")

	tests := []struct {
		name       string
		err        error
		code       Code
		validation bool
	}{
		{"plain error", errDisk, "", false},
		{"nil", nil, "", false},
		{"validation", New(ErrCodeInvalidGeometry, "too small"), ErrCodeInvalidGeometry, true},
		{"outermost code wins", nested, ErrCodeInternal, false},
		{"behind fmt wrapping", wrapf(New(ErrCodeInvalidScale, "x")), ErrCodeInvalidScale, true},
		{"not found", New(ErrCodeFileNotFound, "x"), ErrCodeFileNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.code {
				t.Errorf("CodeOf() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is(UNSUPPORTED) = true")
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.validation)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if got := Message(Wrap(ErrCodeInvalidInput, errDisk, "bad body")); got != "bad body" {
		t.Errorf("Message() = %q, want %q", got, "bad body")
	}
	if got := Message(errDisk); got != "disk full" {
		t.Errorf("Message() = %q, want %q", got, "disk full")
	}
}

func TestCodeValidation(t *testing.T) {
	for _, c := range []Code{ErrCodeInvalidInput, ErrCodeInvalidScale, ErrCodeInvalidGroup,
		ErrCodeInvalidGeometry, ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeInvalidPath} {
		if !c.Validation() {
			t.Errorf("%s.Validation() = false", c)
		}
	}
	for _, c := range []Code{ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeInternal, ErrCodeUnsupported} {
		if c.Validation() {
			t.Errorf("%s.Validation() = true", c)
		}
	}
}

func wrapf(err error) error {
	return fmt.Errorf("layout: %w", err)
}
