package analyze

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type metadata struct {
	title       string
	author      string
	pubDate     string
	description string
}

// extractMetadata collects title, author, publish date, and description.
// Each field is best-effort with a fixed override order: the later, more
// specific source wins when present.
func extractMetadata(doc *goquery.Document) metadata {
	var m metadata

	m.title = strings.TrimSpace(doc.Find("title").First().Text())
	if v, ok := metaContent(doc, `meta[property="og:title"]`); ok {
		m.title = v
	}

	if v, ok := metaContent(doc, `meta[name="author"]`); ok {
		m.author = v
	}
	if byline := findByClassTerms(doc, "byline", "author"); byline != nil {
		m.author = strings.TrimSpace(byline.Text())
	}

	if v, ok := metaContent(doc, `meta[property="article:published_time"]`); ok {
		m.pubDate = v
	}
	// Only the document's first <time> tag may override, and only when it
	// carries a datetime. A bare first <time> leaves the meta value in place.
	if dt, ok := doc.Find("time").First().Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		m.pubDate = strings.TrimSpace(dt)
	}

	if v, ok := metaContent(doc, `meta[name="description"]`); ok {
		m.description = v
	}
	if v, ok := metaContent(doc, `meta[property="og:description"]`); ok {
		m.description = v
	}

	return m
}

// extractImages returns the main image (og:image, else the first image in the
// content scope) and all image URLs in the content scope, in document order.
func extractImages(doc *goquery.Document, content *goquery.Selection) (string, []string) {
	mainImage := ""
	if v, ok := metaContent(doc, `meta[property="og:image"]`); ok {
		mainImage = v
	} else {
		if src, ok := content.Find("img[src]").First().Attr("src"); ok {
			mainImage = src
		}
	}

	var all []string
	content.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			all = append(all, src)
		}
	})
	return mainImage, all
}

func metaContent(doc *goquery.Document, selector string) (string, bool) {
	v, ok := doc.Find(selector).First().Attr("content")
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// findByClassTerms returns the first element, in document order, whose class
// attribute contains any of the given terms.
func findByClassTerms(doc *goquery.Document, terms ...string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if classContainsAny(class, terms) {
			found = s
			return false
		}
		return true
	})
	return found
}

// classContainsAny reports whether any whitespace-split token of the class
// attribute contains one of the terms as a substring, case-insensitively.
func classContainsAny(class string, terms []string) bool {
	for _, token := range strings.Fields(strings.ToLower(class)) {
		for _, term := range terms {
			if strings.Contains(token, term) {
				return true
			}
		}
	}
	return false
}
