package feed

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
)

// defaultLimit is how many of a feed's latest entries are returned.
const defaultLimit = 3

// descriptionLimit caps cleaned summaries before the ellipsis is appended.
const descriptionLimit = 150

// Article is a single feed entry shaped for the tech-articles endpoint.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Published   string `json:"published"`
	Category    string `json:"category"`
	Source      string `json:"source"`
}

// Source describes one RSS feed and the labels its articles carry.
type Source struct {
	URL      string
	Category string
	Name     string
}

// DefaultSources returns the built-in feed catalog.
func DefaultSources() map[string]Source {
	return map[string]Source{
		"techcrunch": {URL: "https://feeds.feedburner.com/TechCrunch", Category: "Trending Tech", Name: "TechCrunch"},
		"theverge":   {URL: "https://www.theverge.com/rss/tech/index.xml", Category: "Trending Reviews", Name: "The Verge"},
		"wired":      {URL: "https://www.wired.com/feed/rss", Category: "Trending Science", Name: "Wired"},
	}
}

// Fetcher retrieves raw bytes from a URL. *fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// Client fetches and parses RSS feeds into article lists.
type Client struct {
	Fetcher Fetcher
	// Sources overrides the built-in catalog. Nil means DefaultSources.
	Sources map[string]Source
	// Limit caps entries per feed. Zero means the default (3).
	Limit int
}

// Latest returns the newest entries of the named feed source, with titles and
// summaries stripped of markup and summaries truncated for display.
func (c *Client) Latest(ctx context.Context, key string) ([]Article, error) {
	sources := c.Sources
	if sources == nil {
		sources = DefaultSources()
	}
	src, ok := sources[key]
	if !ok {
		return nil, fmt.Errorf("unknown feed source %q", key)
	}

	body, _, err := c.Fetcher.Get(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	limit := c.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(parsed.Items) < limit {
		limit = len(parsed.Items)
	}

	articles := make([]Article, 0, limit)
	for _, item := range parsed.Items[:limit] {
		articles = append(articles, Article{
			Title:       CleanHTML(item.Title),
			URL:         item.Link,
			Description: truncate(CleanHTML(item.Description), descriptionLimit),
			Published:   item.Published,
			Category:    src.Category,
			Source:      src.Name,
		})
	}
	return articles, nil
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
