package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/showreel/internal/contact"
	"github.com/pders01/showreel/internal/media"
	"github.com/pders01/showreel/internal/validation"
)

func TestUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"field", wrapErr("contact", &contact.FieldError{Field: "email", Reason: "is required"}), "email is required"},
		{"no player", wrapErr("open", media.ErrNoPlayer), "no media player found; set media.default_opener"},
		{"bad url", fmt.Errorf("%w: scheme", validation.ErrInvalidURL), "this video link can't be opened"},
		{"timeout", wrapErr("submit", context.DeadlineExceeded), "request timed out"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userFacing(tt.err))
		})
	}
}

func TestWrapErrNil(t *testing.T) {
	assert.NoError(t, wrapErr("x", nil))
}
