package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/showreel/internal/catalog"
	"github.com/pders01/showreel/internal/contact"
	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/storage"
)

// errNoEndpoint is reported when the form is sent without a contact endpoint.
var errNoEndpoint = errors.New("contact endpoint not configured")

func (a *App) performSearch(query string) tea.Cmd {
	searcher := a.searcher
	return func() tea.Msg {
		found, err := searcher.Search(query, 20)
		if err != nil {
			return errorMsg{err: wrapErr("search", err)}
		}
		results := make([]searchResultItem, 0, len(found))
		for _, r := range found {
			results = append(results, searchResultItem{result: r})
		}
		return searchResultsMsg{query: query, results: results}
	}
}

func (a *App) submitContact(token uint64, req contact.Request) tea.Cmd {
	client := a.contact
	timeout := a.config.Contact.Timeout
	return func() tea.Msg {
		if client == nil {
			return contactSubmittedMsg{token: token, err: errNoEndpoint}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := client.Submit(ctx, req)
		return contactSubmittedMsg{token: token, err: err}
	}
}

func (a *App) openVideo(v catalog.Video) tea.Cmd {
	launcher := a.launcher
	return func() tea.Msg {
		if err := launcher.Open(v.URL); err != nil {
			return videoOpenedMsg{title: v.Title, err: fmt.Errorf("failed to open %s: %w", v.Title, err)}
		}
		return videoOpenedMsg{title: v.Title}
	}
}

// refresh re-imports the showcase feed when one is configured, otherwise it
// reloads the catalog file.
func (a *App) refresh() tea.Cmd {
	if a.importer != nil && a.config.Catalog.FeedURL != "" {
		a.setStatus(MsgImportingFeed, StatusInfo)
		return a.importFeed()
	}
	return a.reloadCatalog()
}

func (a *App) reloadCatalog() tea.Cmd {
	path := a.config.Catalog.Path
	return func() tea.Msg {
		c, err := catalog.Load(path)
		return catalogReloadedMsg{catalog: c, err: err}
	}
}

// importFeed pulls showcase videos from the configured feed. The last good
// import is cached in the store and replayed when the feed is unchanged or
// unreachable.
func (a *App) importFeed() tea.Cmd {
	store := a.store
	importer := a.importer
	url := a.config.Catalog.FeedURL
	timeout := a.config.Catalog.HTTPTimeout

	return func() tea.Msg {
		var cached *storage.FeedCache
		state := catalog.FeedState{}
		if store != nil {
			c, err := store.GetFeedCache(url)
			switch {
			case err == nil:
				cached = c
				state = c.State
			case !errors.Is(err, storage.ErrNotFound):
				debuglog.Warnf("reading feed cache: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		videos, next, changed, err := importer.Import(ctx, url, state)
		if err != nil {
			if cached != nil && len(cached.Videos) > 0 {
				debuglog.Warnf("feed import failed, using cache: %v", err)
				return feedImportedMsg{videos: cached.Videos, cached: true}
			}
			return feedImportedMsg{err: wrapErr("importing feed", err)}
		}
		if !changed {
			if cached == nil {
				return feedImportedMsg{}
			}
			return feedImportedMsg{videos: cached.Videos, cached: true}
		}

		if store != nil {
			entry := &storage.FeedCache{URL: url, State: next, Videos: videos}
			if err := retryOperation(func() error { return store.SaveFeedCache(entry) }); err != nil {
				debuglog.Warnf("caching feed: %v", err)
			}
		}
		return feedImportedMsg{videos: videos}
	}
}

func (a *App) onFeedImported(msg feedImportedMsg) tea.Cmd {
	if msg.err != nil {
		a.err = msg.err
		return nil
	}
	if len(msg.videos) == 0 {
		a.setStatus(MsgFeedUnchanged, StatusInfo)
		return nil
	}
	next := *a.catalog
	next.Videos = msg.videos
	return a.remount(&next, MsgImportedVideos(len(msg.videos), msg.cached))
}

func (a *App) onCatalogReloaded(msg catalogReloadedMsg) tea.Cmd {
	if msg.err != nil {
		a.err = wrapErr("reloading catalog", msg.err)
		return nil
	}
	return a.remount(msg.catalog, MsgCatalogChanged)
}

// remount swaps the catalog and rebuilds every carousel. Timers armed for the
// old carousels are dropped by the generation check.
func (a *App) remount(c *catalog.Catalog, status string) tea.Cmd {
	prev := a.catalog
	a.catalog = c
	if err := a.mount(); err != nil {
		a.catalog = prev
		if rerr := a.mount(); rerr != nil {
			debuglog.Errorf("restoring previous catalog: %v", rerr)
		}
		a.err = err
		return tea.Batch(a.scheduleShuffle(), a.scheduleFrame())
	}
	a.refreshAbout()
	a.setStatus(status, StatusSuccess)
	return tea.Batch(a.scheduleShuffle(), a.scheduleFrame())
}

// retryOperation retries a database operation up to 3 times with exponential backoff
func retryOperation(operation func() error) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := operation(); err != nil {
			lastErr = err
			if i < maxRetries-1 {
				delay := baseDelay * time.Duration(1<<i)
				time.Sleep(delay)
				continue
			}
		} else {
			return nil
		}
	}
	return lastErr
}
