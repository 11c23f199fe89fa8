package validation

import (
	"errors"
	"strings"
	"testing"
)

type form struct {
	Email string `json:"email" validate:"required,email"`
	Start string `json:"startTime" validate:"required,clocktime"`
	Day   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(form{Email: "a@b.com", Start: "09:00", Day: "2025-05-01"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(form{Start: "25:00"})
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", ve.Fields)
	}
	if ve.Fields[0] != "email is required" {
		t.Fatalf("unexpected message: %s", ve.Fields[0])
	}
	if !strings.Contains(ve.Fields[1], "startTime") {
		t.Fatalf("expected startTime in message, got %s", ve.Fields[1])
	}
}

func TestVar_DateLayout(t *testing.T) {
	if err := Var("date", "2025-05-01", "datetime=2006-01-02"); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	err := Var("date", "05/01/2025", "datetime=2006-01-02")
	if err == nil || err.Error() != "date must match 2006-01-02" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsClockTime(t *testing.T) {
	cases := map[string]bool{
		"09:00":    true,
		"23:59:59": true,
		"24:00":    false,
		"9:00":     false,
		"09:00:6":  false,
		"":         false,
	}
	for in, want := range cases {
		if got := IsClockTime(in); got != want {
			t.Fatalf("IsClockTime(%q) = %v, want %v", in, got, want)
		}
	}
}
