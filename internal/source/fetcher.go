// Package source acquires narration text from a remote JSON document. The
// fetcher never fails: malformed or missing upstream data resolves to safe
// defaults and the pipeline decides what an empty body means.
package source

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// PlaceholderTitle is used when the upstream document carries no title.
const PlaceholderTitle = "Untitled post"

const maxBodyBytes = 1 << 20 // 1 MB of JSON is plenty for a text post

// Post is the acquired narration text.
type Post struct {
	Title string
	Body  string
}

// Fetcher retrieves a post's title and body text.
type Fetcher interface {
	FetchPost(ctx context.Context, locator string) Post
}

// HTTPFetcher fetches reddit-style JSON documents. It tolerates both the
// wrapped listing shape ([{"data":{"children":[{"data":{...}}]}}]) and a
// flat {"title","selftext"} object.
type HTTPFetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

func NewHTTPFetcher(userAgent string, timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

type postPayload struct {
	Title    string `json:"title"`
	SelfText string `json:"selftext"`
	Body     string `json:"body"`
}

type listing struct {
	Data struct {
		Children []struct {
			Data postPayload `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchPost GETs the locator and extracts title and body. Any failure along
// the way (network, status, parse, missing fields) degrades to defaults.
func (f *HTTPFetcher) FetchPost(ctx context.Context, locator string) Post {
	fallback := Post{Title: PlaceholderTitle}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		f.logger.Warn("invalid source locator", "error", err)
		return fallback
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("source fetch failed", "error", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("source returned non-success status", "status", resp.StatusCode)
		return fallback
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		f.logger.Warn("reading source body failed", "error", err)
		return fallback
	}

	return parsePost(data)
}

func parsePost(data []byte) Post {
	post := Post{}

	var listings []listing
	if err := json.Unmarshal(data, &listings); err == nil {
		for _, l := range listings {
			for _, child := range l.Data.Children {
				post = fromPayload(child.Data)
				if post.Body != "" || post.Title != "" {
					return withDefaults(post)
				}
			}
		}
		return withDefaults(post)
	}

	var flat postPayload
	if err := json.Unmarshal(data, &flat); err == nil {
		return withDefaults(fromPayload(flat))
	}

	return withDefaults(post)
}

func fromPayload(p postPayload) Post {
	body := p.SelfText
	if body == "" {
		body = p.Body
	}
	return Post{
		Title: strings.TrimSpace(p.Title),
		Body:  strings.TrimSpace(body),
	}
}

func withDefaults(p Post) Post {
	if p.Title == "" {
		p.Title = PlaceholderTitle
	}
	return p
}
