package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/pders01/showreel/internal/contact"
	"github.com/pders01/showreel/internal/media"
	"github.com/pders01/showreel/internal/validation"
)

// wrapErr formats an error with a contextual prefix.
func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// userFacing shortens errors that have a friendlier rendering in the status bar.
func userFacing(err error) string {
	var fe *contact.FieldError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return fe.Error()
	case errors.Is(err, media.ErrNoPlayer):
		return "no media player found; set media.default_opener"
	case errors.Is(err, validation.ErrInvalidURL):
		return "this video link can't be opened"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return err.Error()
	}
}
