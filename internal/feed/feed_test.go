package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeFetcher struct {
	body    string
	err     error
	lastURL string
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, string, error) {
	f.lastURL = url
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte(f.body), "application/rss+xml", nil
}

func rssDoc(items ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Example Feed</title>%s</channel></rss>`, strings.Join(items, ""))
}

func rssItem(title, link, description, published string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><description>%s</description><pubDate>%s</pubDate></item>`,
		title, link, description, published)
}

func TestLatestShapesArticles(t *testing.T) {
	doc := rssDoc(
		rssItem("&lt;b&gt;Big&lt;/b&gt; launch", "https://example.com/a", "A &amp;\n  short   summary.", "Mon, 01 Sep 2025 10:00:00 GMT"),
		rssItem("Second", "https://example.com/b", "Another one.", "Mon, 01 Sep 2025 09:00:00 GMT"),
	)
	fetcher := &fakeFetcher{body: doc}
	c := &Client{
		Fetcher: fetcher,
		Sources: map[string]Source{
			"techcrunch": {URL: "https://feeds.example.com/tc", Category: "Trending Tech", Name: "TechCrunch"},
		},
	}

	articles, err := c.Latest(context.Background(), "techcrunch")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if fetcher.lastURL != "https://feeds.example.com/tc" {
		t.Fatalf("fetched %q", fetcher.lastURL)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	first := articles[0]
	if first.Title != "Big launch" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://example.com/a" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Description != "A & short summary." {
		t.Errorf("description = %q", first.Description)
	}
	if first.Published != "Mon, 01 Sep 2025 10:00:00 GMT" {
		t.Errorf("published = %q", first.Published)
	}
	if first.Category != "Trending Tech" || first.Source != "TechCrunch" {
		t.Errorf("labels = %q / %q", first.Category, first.Source)
	}
}

func TestLatestCapsEntriesAtThree(t *testing.T) {
	var items []string
	for i := 0; i < 5; i++ {
		items = append(items, rssItem(fmt.Sprintf("Item %d", i), fmt.Sprintf("https://example.com/%d", i), "Summary.", ""))
	}
	c := &Client{
		Fetcher: &fakeFetcher{body: rssDoc(items...)},
		Sources: map[string]Source{"wired": {URL: "https://feeds.example.com/w", Category: "Trending Science", Name: "Wired"}},
	}

	articles, err := c.Latest(context.Background(), "wired")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(articles))
	}
	if articles[0].Title != "Item 0" {
		t.Errorf("first title = %q", articles[0].Title)
	}
}

func TestLatestTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("é", 200)
	c := &Client{
		Fetcher: &fakeFetcher{body: rssDoc(rssItem("T", "https://example.com/t", long, ""))},
		Sources: map[string]Source{"theverge": {URL: "https://feeds.example.com/v", Category: "Trending Reviews", Name: "The Verge"}},
	}

	articles, err := c.Latest(context.Background(), "theverge")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	want := strings.Repeat("é", 150) + "..."
	if articles[0].Description != want {
		t.Errorf("description = %q, want 150 runes plus ellipsis", articles[0].Description)
	}
}

func TestLatestUnknownSource(t *testing.T) {
	c := &Client{Fetcher: &fakeFetcher{}}
	if _, err := c.Latest(context.Background(), "usenet"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestLatestFetchFailure(t *testing.T) {
	c := &Client{Fetcher: &fakeFetcher{err: errors.New("connection refused")}}
	if _, err := c.Latest(context.Background(), "techcrunch"); err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v", err)
	}
}

func TestCleanHTML(t *testing.T) {
	in := "<p>Hello&nbsp;&amp;\n\t  <em>welcome</em>&quot;here&quot;</p> "
	if got := CleanHTML(in); got != `Hello & welcome"here"` {
		t.Errorf("CleanHTML = %q", got)
	}
}
