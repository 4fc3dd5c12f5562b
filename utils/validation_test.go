package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sampleRequest struct {
	Name                 string  `json:"name" binding:"required,alphaspace"`
	Phone                string  `json:"phone" binding:"required,phone"`
	Title                *string `json:"title" binding:"omitempty,min=3"`
	Password             string  `json:"password" binding:"required,min=8"`
	PasswordConfirmation string  `json:"password_confirmation" binding:"required,eqfield=Password"`
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	RegisterValidators()

	short := "ab"
	req := sampleRequest{
		Name:                 "R2 D2",
		Phone:                "abc",
		Title:                &short,
		Password:             "short",
		PasswordConfirmation: "different",
	}
	err := binding.Validator.ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields, ok := FieldErrors(err)
	if !ok {
		t.Fatalf("FieldErrors(%v) not a validation error", err)
	}

	for _, key := range []string{"name", "phone", "title", "password", "password_confirmation"} {
		if len(fields[key]) == 0 {
			t.Errorf("missing errors for %q in %v", key, fields)
		}
	}
	if msg := fields["title"][0]; !strings.Contains(msg, "at least 3 characters") {
		t.Errorf("title message = %q", msg)
	}
	if msg := fields["password_confirmation"][0]; msg != "The password confirmation does not match." {
		t.Errorf("confirmation message = %q", msg)
	}
}

func TestFieldErrorsSkipsNilPointers(t *testing.T) {
	RegisterValidators()

	req := sampleRequest{Name: "Jane Doe", Phone: "+1 650 253 0000", Password: "longenough", PasswordConfirmation: "longenough"}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFieldErrorsNonValidation(t *testing.T) {
	if _, ok := FieldErrors(errors.New("unexpected EOF")); ok {
		t.Fatal("plain error reported as validation failure")
	}
}

func TestNormalizePhone(t *testing.T) {
	valid := map[string]string{
		"+1 650 253 0000":   "+16502530000",
		"+1 (650) 253-0000": "+16502530000",
		"+44 7400 123456":   "+447400123456",
	}
	for in, want := range valid {
		got, ok := NormalizePhone(in)
		if !ok || got != want {
			t.Errorf("NormalizePhone(%q) = %q, %v; want %q", in, got, ok, want)
		}
		if len(got) > 20 {
			t.Errorf("NormalizePhone(%q) = %q does not fit the phone column", in, got)
		}
	}

	invalid := []string{
		"",
		"12345",
		"phone",
		"6502530000",            // no country code
		"+44 20 7946 0018",      // London landline
		"+(12) 345-678-901-234", // too long
	}
	for _, p := range invalid {
		if IsPhone(p) {
			t.Errorf("IsPhone(%q) = true, want false", p)
		}
	}
}
