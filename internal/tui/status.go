package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgSearching      = "Searching…"
	MsgNoResults      = "No results"
	MsgImportingFeed  = "Importing showcase feed…"
	MsgFeedUnchanged  = "Showcase feed unchanged"
	MsgCatalogChanged = "Catalog reloaded"
	MsgFillRequired   = "Please fill in all required fields"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func MsgImportedVideos(n int, cached bool) string {
	src := "feed"
	if cached {
		src = "cache"
	}
	return fmt.Sprintf("Showcase: %d videos from %s", n, src)
}

func MsgOpened(title, player string) string {
	title = strings.TrimSpace(title)
	if player == "" {
		return fmt.Sprintf("Opened '%s'", title)
	}
	return fmt.Sprintf("Opened '%s' in %s", title, player)
}
