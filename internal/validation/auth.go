package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	phonePattern   = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*]`)
)

// CreateAccountInput is the registration form.
type CreateAccountInput struct {
	BusinessName string `json:"businessName"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// Validate checks the registration form.
func (in CreateAccountInput) Validate() error {
	errs := Errors{}
	lengthBetween(errs, "businessName", in.BusinessName, 2, 100, "Business name")
	lengthBetween(errs, "fullName", in.FullName, 2, 100, "Full name")
	if !phonePattern.MatchString(in.PhoneNumber) {
		errs.add("phoneNumber", "Please enter a valid phone number following E.164 format")
	}
	email(errs, "email", in.Email)
	lengthBetween(errs, "email", in.Email, 5, 100, "Email")
	password(errs, "password", in.Password)
	return errs.orNil()
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the sign-in form.
func (in LoginInput) Validate() error {
	errs := Errors{}
	email(errs, "email", in.Email)
	if in.Password == "" {
		errs.add("password", "Password is required")
	}
	return errs.orNil()
}

// ForgotPasswordInput requests a reset link.
type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// Validate checks the forgot-password form.
func (in ForgotPasswordInput) Validate() error {
	errs := Errors{}
	email(errs, "email", in.Email)
	return errs.orNil()
}

// ResetPasswordInput sets a new password using a reset token.
type ResetPasswordInput struct {
	ResetToken      string `json:"resetToken"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the reset-password form.
func (in ResetPasswordInput) Validate() error {
	errs := Errors{}
	if strings.TrimSpace(in.ResetToken) == "" {
		errs.add("resetToken", "Reset token is required")
	}
	password(errs, "password", in.Password)
	if in.ConfirmPassword == "" {
		errs.add("confirmPassword", "Please confirm your password")
	} else if in.ConfirmPassword != in.Password {
		errs.add("confirmPassword", "Passwords do not match")
	}
	return errs.orNil()
}

func lengthBetween(errs Errors, field, value string, min, max int, label string) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		errs.add(field, label+" must be at least "+itoa(min)+" characters")
	case n > max:
		errs.add(field, label+" must be less than "+itoa(max)+" characters")
	}
}

func email(errs Errors, field, value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		errs.add(field, "Please enter a valid email address")
	}
}

func password(errs Errors, field, value string) {
	lengthBetween(errs, field, value, 8, 100, "Password")
	if !upperPattern.MatchString(value) || !digitPattern.MatchString(value) || !specialPattern.MatchString(value) {
		errs.add(field, "Password must contain at least one uppercase letter, one number, and one special character")
	}
}
