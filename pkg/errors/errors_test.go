package errors

import (
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	inner := New("invalid syntax")
	err := &ParseError{
		File:  "data/referendum.csv",
		Line:  42,
		Field: "Registered",
		Value: "abc",
		Err:   inner,
	}

	if got := err.Error(); got != `data/referendum.csv:42: parsing Registered "abc": invalid syntax` {
		t.Errorf("unexpected message: %s", got)
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ParseError should match ErrInvalidInput")
	}
	if !Is(err, inner) {
		t.Error("ParseError should unwrap to its cause")
	}

	var pe *ParseError
	if !As(err, &pe) || pe.Line != 42 {
		t.Error("As should recover the ParseError")
	}
}

func TestParseErrorWithoutField(t *testing.T) {
	err := &ParseError{File: "regions.csv", Line: 3, Err: New("wrong number of fields")}
	want := "regions.csv:3: wrong number of fields"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{File: "departments.csv", Field: "region_code"}
	if !Is(err, ErrMissingField) {
		t.Error("MissingFieldError should match ErrMissingField")
	}
	want := `departments.csv: required column "region_code" not found in header`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapIO(t *testing.T) {
	if WrapIO(nil, "read", "x") != nil {
		t.Error("WrapIO(nil) should be nil")
	}

	cause := New("permission denied")
	err := WrapIO(cause, "read", "data/regions.geojson")
	if !Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	want := "read data/regions.geojson: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrappingWithFmt(t *testing.T) {
	err := fmt.Errorf("loading inputs: %w", &MissingFieldError{File: "r.csv", Field: "code"})
	if !Is(err, ErrMissingField) {
		t.Error("fmt-wrapped MissingFieldError should still match ErrMissingField")
	}
}
