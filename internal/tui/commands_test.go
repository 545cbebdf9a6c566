package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/showreel/internal/catalog"
	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/storage"
)

const reelFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Reels</title>
  <item>
    <title>Launch film</title>
    <guid>launch</guid>
    <enclosure url="https://cdn.test/launch.mp4" type="video/mp4" length="1"/>
  </item>
  <item>
    <title>Teaser</title>
    <guid>teaser</guid>
    <enclosure url="https://cdn.test/teaser.webm" type="video/webm" length="1"/>
  </item>
</channel>
</rss>`

type feedServer struct {
	*httptest.Server
	hits   atomic.Int32
	broken atomic.Bool
}

func newFeedServer(t *testing.T) *feedServer {
	t.Helper()
	fs := &feedServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		if fs.broken.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		if r.Header.Get("If-None-Match") == `"reels-1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"reels-1"`)
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(reelFeed))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func newFeedApp(t *testing.T, url string) *testApp {
	t.Helper()
	app := newTestApp(t, func(c *config.Config) { c.Catalog.FeedURL = url })

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "showreel.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	app.store = store
	app.importer = catalog.NewImporter(5*time.Second, "showreel-test")
	return app
}

func TestImportFeedCachesAndReplays(t *testing.T) {
	srv := newFeedServer(t)
	app := newFeedApp(t, srv.URL)

	msg, ok := app.importFeed()().(feedImportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.False(t, msg.cached)
	require.Len(t, msg.videos, 2)
	assert.Equal(t, "launch", msg.videos[0].ID)

	cache, err := app.store.GetFeedCache(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, `"reels-1"`, cache.State.ETag)
	assert.Len(t, cache.Videos, 2)

	// Second import gets a 304 and replays the cached videos.
	msg = app.importFeed()().(feedImportedMsg)
	require.NoError(t, msg.err)
	assert.True(t, msg.cached)
	assert.Len(t, msg.videos, 2)
	assert.EqualValues(t, 2, srv.hits.Load())

	app.Update(msg)
	assert.Equal(t, 2, app.showcase.Slots())
	assert.Equal(t, MsgImportedVideos(2, true), app.status)
}

func TestImportFeedFallsBackToCache(t *testing.T) {
	srv := newFeedServer(t)
	app := newFeedApp(t, srv.URL)

	msg := app.importFeed()().(feedImportedMsg)
	require.NoError(t, msg.err)

	srv.broken.Store(true)
	msg = app.importFeed()().(feedImportedMsg)
	require.NoError(t, msg.err)
	assert.True(t, msg.cached)
	assert.Len(t, msg.videos, 2)
}

func TestImportFeedErrorWithoutCache(t *testing.T) {
	srv := newFeedServer(t)
	srv.broken.Store(true)
	app := newFeedApp(t, srv.URL)

	msg := app.importFeed()().(feedImportedMsg)
	require.Error(t, msg.err)

	slots := app.showcase.Slots()
	app.Update(msg)
	assert.Error(t, app.err)
	assert.Equal(t, slots, app.showcase.Slots())
}

func TestRefreshPrefersFeed(t *testing.T) {
	srv := newFeedServer(t)
	app := newFeedApp(t, srv.URL)

	cmd := app.press("ctrl+r")
	require.NotNil(t, cmd)
	assert.Equal(t, MsgImportingFeed, app.status)

	msg, ok := cmd().(feedImportedMsg)
	require.True(t, ok)
	app.Update(msg)
	assert.Equal(t, "Launch film", app.catalog.Videos[0].Title)
}

func TestReloadCatalogFromFile(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) {
		c.Catalog.Path = filepath.Join(t.TempDir(), "missing.toml")
	})

	msg, ok := app.reloadCatalog()().(catalogReloadedMsg)
	require.True(t, ok)
	assert.Error(t, msg.err)
}

func TestRetryOperation(t *testing.T) {
	calls := 0
	err := retryOperation(func() error {
		calls++
		if calls < 2 {
			return errors.New("locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = retryOperation(func() error {
		calls++
		return errors.New("locked")
	})
	assert.EqualError(t, err, "locked")
	assert.Equal(t, 3, calls)
}
