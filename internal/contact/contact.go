package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid contact request")

const (
	SuccessMessage = "Message sent successfully."
	FailureMessage = "Failed to send message. Please try again."

	maxFieldLen   = 200
	maxMessageLen = 5000
)

// Request is the contact form payload.
type Request struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// Response is what the contact endpoint replies with.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// FieldError names the field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Reason }
func (e *FieldError) Unwrap() error { return ErrInvalid }

// Normalize trims surrounding whitespace from every field.
func (r Request) Normalize() Request {
	return Request{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
		Subject:   strings.TrimSpace(r.Subject),
		Message:   strings.TrimSpace(r.Message),
	}
}

// Validate checks a normalized request. Every field but phone is required.
func (r Request) Validate() error {
	required := []struct {
		name, value string
	}{
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"subject", r.Subject},
		{"message", r.Message},
	}
	for _, f := range required {
		if f.value == "" {
			return &FieldError{Field: f.name, Reason: "is required"}
		}
	}
	for _, f := range []struct {
		name, value string
	}{
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"phone", r.Phone},
		{"subject", r.Subject},
	} {
		if len(f.value) > maxFieldLen {
			return &FieldError{Field: f.name, Reason: fmt.Sprintf("exceeds %d characters", maxFieldLen)}
		}
	}
	if len(r.Message) > maxMessageLen {
		return &FieldError{Field: "message", Reason: fmt.Sprintf("exceeds %d characters", maxMessageLen)}
	}
	addr, err := mail.ParseAddress(r.Email)
	if err != nil || addr.Address != r.Email {
		return &FieldError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}
