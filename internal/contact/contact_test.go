package contact

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Subject:   "New campaign",
		Message:   "We would like to work with you.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Request)
		field string
	}{
		{"valid", func(*Request) {}, ""},
		{"phone optional", func(r *Request) { r.Phone = "" }, ""},
		{"missing first name", func(r *Request) { r.FirstName = "" }, "firstName"},
		{"missing last name", func(r *Request) { r.LastName = "" }, "lastName"},
		{"missing email", func(r *Request) { r.Email = "" }, "email"},
		{"missing subject", func(r *Request) { r.Subject = "" }, "subject"},
		{"missing message", func(r *Request) { r.Message = "" }, "message"},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, "email"},
		{"display name email", func(r *Request) { r.Email = "Ada <ada@example.com>" }, "email"},
		{"long subject", func(r *Request) { r.Subject = strings.Repeat("x", 201) }, "subject"},
		{"long message", func(r *Request) { r.Message = strings.Repeat("x", 5001) }, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.edit(&req)
			err := req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestNormalize(t *testing.T) {
	req := Request{FirstName: "  Ada ", Email: " ada@example.com\n", Message: "\thi "}
	n := req.Normalize()
	assert.Equal(t, "Ada", n.FirstName)
	assert.Equal(t, "ada@example.com", n.Email)
	assert.Equal(t, "hi", n.Message)
}

func TestWhitespaceOnlyIsMissing(t *testing.T) {
	req := validRequest()
	req.Subject = "   "
	assert.ErrorIs(t, req.Normalize().Validate(), ErrInvalid)
}
