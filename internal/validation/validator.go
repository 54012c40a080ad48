// Package validation provides request validation helpers used by the
// HTTP handlers. The payment service performs its own method-specific
// validation before dispatch; these checks exist to reject malformed
// requests at the edge with field-level messages.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex  = regexp.MustCompile(`^0[2356]\d{8}$`) // Ghanaian mobile format
	tinRegex    = regexp.MustCompile(`^[A-Z]\d{10}$`)  // GRA taxpayer identification number
	parcelRegex = regexp.MustCompile(`^[A-Z]{2,3}-\d{1,6}(-\d{1,4})?$`)
)

// Validator collects field errors for one request
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks if a string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Positive checks if an amount is greater than zero
func (v *Validator) Positive(field string, value float64) {
	v.Check(value > 0, field, "must be greater than zero")
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Phone validates a Ghanaian mobile number
func (v *Validator) Phone(field, phone string) {
	v.Check(phoneRegex.MatchString(phone), field, "must be a valid Ghanaian mobile number")
}

// TIN validates a GRA taxpayer identification number; empty is allowed
func (v *Validator) TIN(field, tin string) {
	if tin == "" {
		return
	}
	v.Check(tinRegex.MatchString(tin), field, "must be a valid TIN")
}

// ParcelNumber validates an assembly valuation roll number
func (v *Validator) ParcelNumber(field, parcel string) {
	v.Check(parcelRegex.MatchString(parcel), field, "must be a valid parcel number")
}

// MinLength checks if a string has at least n characters
func (v *Validator) MinLength(field string, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// HasSpecialChar reports whether s contains at least one symbol.
func HasSpecialChar(s string) bool {
	return strings.ContainsAny(s, "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~")
}
