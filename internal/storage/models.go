package storage

import (
	"time"

	"github.com/pders01/showreel/internal/catalog"
)

// Submission is a persisted contact form message.
type Submission struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeedCache keeps the last successful media feed import so the showcase can
// start offline and refresh with a conditional request.
type FeedCache struct {
	URL    string            `json:"url"`
	State  catalog.FeedState `json:"state"`
	Videos []catalog.Video   `json:"videos"`
}
