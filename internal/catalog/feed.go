package catalog

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/validation"
)

const defaultUserAgent = "showreel/1.0 (https://github.com/pders01/showreel)"

// FeedState carries the conditional request headers between imports.
type FeedState struct {
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	LastFetched  time.Time `json:"last_fetched"`
}

// Importer pulls showcase videos from a media RSS or Atom feed.
type Importer struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
}

func NewImporter(timeout time.Duration, userAgent string) *Importer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Importer{
		client:    &http.Client{Timeout: timeout},
		parser:    gofeed.NewParser(),
		userAgent: userAgent,
	}
}

// Import fetches url and returns the videos it lists. changed is false when
// the server answered 304 for the given state, in which case videos is nil
// and state is returned untouched.
func (im *Importer) Import(ctx context.Context, url string, state FeedState) (videos []Video, next FeedState, changed bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, state, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", im.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")
	if state.ETag != "" {
		req.Header.Set("If-None-Match", state.ETag)
	}
	if state.LastModified != "" {
		req.Header.Set("If-Modified-Since", state.LastModified)
	}

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, state, false, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return nil, state, false, nil
	}
	if resp.StatusCode >= 400 {
		return nil, state, false, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	feed, err := im.parser.Parse(resp.Body)
	if err != nil {
		return nil, state, false, fmt.Errorf("parsing feed: %w", err)
	}

	next = FeedState{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
		LastFetched:  time.Now(),
	}
	return videosFromFeed(feed), next, true, nil
}

func videosFromFeed(feed *gofeed.Feed) []Video {
	urls := validation.NewURLValidator()
	var out []Video
	for i, item := range feed.Items {
		u := videoURL(item)
		if u == "" {
			continue
		}
		u, err := urls.ValidateAndNormalize(u)
		if err != nil {
			debuglog.Warnf("feed item %q: %v", item.Title, err)
			continue
		}
		v := Video{ID: item.GUID, Title: item.Title, URL: u}
		if v.ID == "" {
			v.ID = fmt.Sprintf("feed-%d", i+1)
		}
		if item.Image != nil {
			v.Poster = item.Image.URL
		}
		out = append(out, v)
	}
	return out
}

var videoExtensions = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".m4v": true}

// videoURL picks the first enclosure that is a video, by MIME type or by
// file extension.
func videoURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "video/") {
			return enc.URL
		}
		p := enc.URL
		if i := strings.IndexAny(p, "?#"); i >= 0 {
			p = p[:i]
		}
		if videoExtensions[strings.ToLower(path.Ext(p))] {
			return enc.URL
		}
	}
	return ""
}
