package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mediaRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Reels</title>
  <item>
    <title>Launch film</title>
    <guid>launch</guid>
    <enclosure url="https://cdn.test/launch.mp4" type="video/mp4" length="1"/>
  </item>
  <item>
    <title>Press photo</title>
    <guid>photo</guid>
    <enclosure url="https://cdn.test/photo.jpg" type="image/jpeg" length="1"/>
  </item>
  <item>
    <title>Teaser</title>
    <enclosure url="https://cdn.test/teaser.webm?v=2" type="" length="1"/>
  </item>
</channel>
</rss>`

func TestImport(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(mediaRSS))
	}))
	defer srv.Close()

	im := NewImporter(5*time.Second, "showreel-test")
	videos, state, changed, err := im.Import(context.Background(), srv.URL, FeedState{})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "showreel-test", gotAgent)
	assert.Equal(t, `"v1"`, state.ETag)
	assert.False(t, state.LastFetched.IsZero())

	require.Len(t, videos, 2)
	assert.Equal(t, "launch", videos[0].ID)
	assert.Equal(t, "Launch film", videos[0].Title)
	assert.Equal(t, "https://cdn.test/launch.mp4", videos[0].URL)
	assert.Equal(t, "feed-3", videos[1].ID)
	assert.Equal(t, "https://cdn.test/teaser.webm?v=2", videos[1].URL)

	videos, again, changed, err := im.Import(context.Background(), srv.URL, state)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Nil(t, videos)
	assert.Equal(t, state, again)
}

func TestImportHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, _, _, err := NewImporter(0, "").Import(context.Background(), srv.URL, FeedState{})
	assert.ErrorContains(t, err, "410")
}

func TestImportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := NewImporter(0, "").Import(ctx, "http://127.0.0.1:1/feed", FeedState{})
	assert.Error(t, err)
}

func TestVideosFromFeedDropsUnsafeURLs(t *testing.T) {
	feed := &gofeed.Feed{Items: []*gofeed.Item{
		{Title: "local", GUID: "a", Enclosures: []*gofeed.Enclosure{{URL: "http://127.0.0.1/a.mp4", Type: "video/mp4"}}},
		{Title: "flag", GUID: "b", Enclosures: []*gofeed.Enclosure{{URL: "--script=x.mp4", Type: "video/mp4"}}},
		{Title: "ok", GUID: "c", Enclosures: []*gofeed.Enclosure{{URL: "https://cdn.test/c.mp4", Type: "video/mp4"}}},
	}}
	videos := videosFromFeed(feed)
	require.Len(t, videos, 1)
	assert.Equal(t, "c", videos[0].ID)
}
