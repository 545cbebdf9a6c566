package search

import (
	"fmt"

	"github.com/pders01/showreel/internal/catalog"
)

// Kind of catalog entry a document came from.
type Kind string

const (
	KindService Kind = "service"
	KindVideo   Kind = "video"
	KindPartner Kind = "partner"
)

// Doc is one searchable catalog entry. Index is its position in the
// catalog section, used to center the matching carousel on it.
type Doc struct {
	Kind        Kind   `json:"kind"`
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

func (d Doc) key() string { return fmt.Sprintf("%s:%d", d.Kind, d.Index) }

// Result is a ranked match.
type Result struct {
	Doc     Doc
	Score   float64
	Matches []Match
}

// Match represents where text was found
type Match struct {
	Field  string
	Text   string
	Weight float64
}

// Searcher defines the minimal search API used by the TUI.
type Searcher interface {
	Index(docs []Doc) error
	Search(query string, limit int) ([]*Result, error)
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}

// Documents flattens a catalog into searchable documents.
func Documents(c *catalog.Catalog) []Doc {
	var docs []Doc
	for i, s := range c.Services {
		docs = append(docs, Doc{Kind: KindService, ID: s.ID, Index: i, Title: s.Title, Description: s.Description, URL: s.Image})
	}
	for i, v := range c.Videos {
		docs = append(docs, Doc{Kind: KindVideo, ID: v.ID, Index: i, Title: v.Title, URL: v.URL})
	}
	for i, p := range c.Partners {
		docs = append(docs, Doc{Kind: KindPartner, ID: p.Name, Index: i, Title: p.Name, URL: p.Logo})
	}
	return docs
}
