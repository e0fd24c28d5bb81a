package analyze

import (
	"bytes"
	"context"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// NoContentMessage is the error text reported when a page yields zero
// substantive paragraphs after filtering.
const NoContentMessage = "No substantive paragraphs found on page"

// mainContentSelector picks the article body, in preference order. When
// nothing matches, the whole document is the content scope.
const mainContentSelector = "main, article, .content, #content, .post, .article, .entry-content"

// nonContentSelector matches chrome that never contributes paragraphs,
// headings, or lists.
const nonContentSelector = "nav, footer, header, aside, .sidebar, .menu, .navigation, .footer, .comments, .widget"

// ParagraphStats describes the filtered paragraph list.
type ParagraphStats struct {
	Count        int     `json:"count"`
	AvgSentences float64 `json:"avg_sentences"`
	AvgWords     float64 `json:"avg_words"`
}

// Structure counts document skeleton elements inside the content scope.
type Structure struct {
	Sections int `json:"sections"`
	Lists    int `json:"lists"`
}

// ContentStats carries word-level statistics over the filtered paragraphs.
type ContentStats struct {
	AvgWordLength float64 `json:"avg_word_length"`
}

// Result is the extractor's sole output. On failure only Success and Error
// are populated; all analysis fields are absent.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	ParagraphStats   *ParagraphStats `json:"paragraph_stats,omitempty"`
	Structure        *Structure      `json:"structure,omitempty"`
	ContentStats     *ContentStats   `json:"content_stats,omitempty"`
	ToneIndicators   []string        `json:"tone_indicators,omitempty"`
	SampleParagraphs []string        `json:"sample_paragraphs,omitempty"`

	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	PubDate     string   `json:"pub_date,omitempty"`
	Description string   `json:"description,omitempty"`
	MainImage   string   `json:"main_image,omitempty"`
	AllImages   []string `json:"all_images,omitempty"`
}

// Fetcher retrieves raw bytes from a URL. *fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// Analyzer fetches a page and runs the content analysis over it.
type Analyzer struct {
	Fetcher Fetcher
}

// AnalyzeURL fetches url and analyzes the body. All failure modes, including
// network errors and non-2xx statuses, are encoded in the result; it never
// panics past this boundary.
func (a *Analyzer) AnalyzeURL(ctx context.Context, url string) Result {
	body, _, err := a.Fetcher.Get(ctx, url)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return AnalyzeHTML(body)
}

// AnalyzeHTML extracts metadata, images, and the filtered paragraph list from
// an HTML document, then derives statistics and tone indicators. It is a pure
// function of its input.
func AnalyzeHTML(body []byte) Result {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	meta := extractMetadata(doc)

	content := doc.Find(mainContentSelector).First()
	if content.Length() == 0 {
		// Use the full document when no main content area is identified.
		content = doc.Selection
	}

	mainImage, allImages := extractImages(doc, content)

	// Strip chrome before paragraph, heading, and list extraction. Detached
	// nodes disappear from the content scope as well.
	doc.Find(nonContentSelector).Remove()

	paragraphs := filterParagraphs(content)
	if len(paragraphs) == 0 {
		return Result{Success: false, Error: NoContentMessage}
	}

	samples := sampleParagraphs(paragraphs, 3)

	var sentenceCounts, wordCounts []int
	var wordTotal, charTotal int
	for _, p := range paragraphs {
		sentenceCounts = append(sentenceCounts, countSentences(p))
		words := strings.Fields(p)
		wordCounts = append(wordCounts, len(words))
		for _, w := range words {
			wordTotal++
			charTotal += utf8.RuneCountInString(w)
		}
	}
	avgWordLength := 0.0
	if wordTotal > 0 {
		avgWordLength = float64(charTotal) / float64(wordTotal)
	}

	return Result{
		Success: true,
		ParagraphStats: &ParagraphStats{
			Count:        len(paragraphs),
			AvgSentences: round1(mean(sentenceCounts)),
			AvgWords:     round1(mean(wordCounts)),
		},
		Structure: &Structure{
			Sections: content.Find("h1,h2,h3,h4,h5,h6").Length(),
			Lists:    content.Find("ul,ol").Length(),
		},
		ContentStats:     &ContentStats{AvgWordLength: round1(avgWordLength)},
		ToneIndicators:   inferTone(paragraphs, avgWordLength),
		SampleParagraphs: samples,
		Title:            meta.title,
		Author:           meta.author,
		PubDate:          meta.pubDate,
		Description:      meta.description,
		MainImage:        mainImage,
		AllImages:        allImages,
	}
}

// sampleParagraphs returns the first n paragraphs with more than 15 words,
// in document order.
func sampleParagraphs(paragraphs []string, n int) []string {
	var out []string
	for _, p := range paragraphs {
		if len(strings.Fields(p)) > 15 {
			out = append(out, p)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// countSentences approximates sentence count by splitting on runs of
// terminator punctuation and discarding empty fragments.
func countSentences(text string) int {
	n := 0
	for _, frag := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(frag) != "" {
			n++
		}
	}
	return n
}

var formalIndicators = []string{"therefore", "consequently", "furthermore", "moreover", "thus"}

var casualIndicators = []string{"don't", "won't", "can't", "let's", "awesome", "cool", "great"}

// inferTone runs independent substring checks over the joined paragraph text.
// The set is never empty: "neutral" fills in when nothing else matched.
func inferTone(paragraphs []string, avgWordLength float64) []string {
	joined := strings.Join(paragraphs, " ")
	lowered := strings.ToLower(joined)

	var tones []string
	if containsAny(lowered, formalIndicators) {
		tones = append(tones, "formal")
	}
	if containsAny(lowered, casualIndicators) {
		tones = append(tones, "casual")
	}
	if avgWordLength > 6 {
		tones = append(tones, "technical")
	}
	if strings.ContainsAny(joined, "?!") {
		tones = append(tones, "conversational")
	}
	if len(tones) == 0 {
		tones = append(tones, "neutral")
	}
	return tones
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
