package analyze

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Class terms that disqualify a paragraph through its parent container.
var parentClassTerms = []string{"comment", "widget", "sidebar", "footer", "menu", "nav", "author", "meta"}

// Class terms that disqualify a paragraph directly.
var ownClassTerms = []string{"meta", "info", "date", "author", "tag", "button", "caption"}

// Parent tags whose paragraph children are chrome, not prose.
var nonProseParents = map[string]bool{
	"td": true, "th": true, "li": true, "button": true, "label": true, "a": true,
}

var (
	numberedListRe = regexp.MustCompile(`^\d+\.`)
	attributionRe  = regexp.MustCompile(`©|\bcopyright\b|\ball rights reserved\b|\bposted on\b|\bby\b.*\bon\b.*\d{4}`)
	twoSentencesRe = regexp.MustCompile(`[.!?].*[.!?]`)
	listMarkerRe   = regexp.MustCompile(`^([•\-*]|\d+\.\s)`)
)

// Glyphs typical of navigation and UI controls, never of article prose.
const uiGlyphs = "→⟶▶»☰✓"

// filterParagraphs walks every <p> in the content scope and keeps only
// substantive prose, applying the rule sequence twice: a structural pass over
// the DOM, then a second text-only pass that catches short fragments and list
// items the markup hid.
func filterParagraphs(content *goquery.Selection) []string {
	excluded := excludedTexts(content)

	var texts []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		if isHidden(p) {
			return
		}
		text := strings.TrimSpace(p.Text())
		if text == "" {
			return
		}
		if parentClass, ok := p.Parent().Attr("class"); ok && classContainsAny(parentClass, parentClassTerms) {
			return
		}
		if excluded[text] {
			return
		}
		if utf8.RuneCountInString(text) < 80 && looksLikeFragment(text) {
			return
		}
		if nonProseParents[goquery.NodeName(p.Parent())] {
			return
		}
		if ownClass, ok := p.Attr("class"); ok && classContainsAny(ownClass, ownClassTerms) {
			return
		}
		if attributionRe.MatchString(strings.ToLower(text)) {
			return
		}
		texts = append(texts, text)
	})

	var filtered []string
	for _, text := range texts {
		if utf8.RuneCountInString(text) < 100 && len(strings.Fields(text)) < 20 && !twoSentencesRe.MatchString(text) {
			continue
		}
		if listMarkerRe.MatchString(text) {
			continue
		}
		filtered = append(filtered, text)
	}
	return filtered
}

// excludedTexts gathers the exact texts of headings, table cells, and UI
// controls in the content scope. A paragraph equal to any of them is chrome.
func excludedTexts(content *goquery.Selection) map[string]bool {
	out := make(map[string]bool)
	content.Find("h1,h2,h3,h4,h5,h6,th,td,caption,button,label,input,select,textarea").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			out[t] = true
		}
	})
	return out
}

func isHidden(p *goquery.Selection) bool {
	style, _ := p.Attr("style")
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

// looksLikeFragment applies the stricter rejection rules for texts under 80
// characters: unterminated short phrases, heading-cased lines, list items,
// and UI glyphs.
func looksLikeFragment(text string) bool {
	if len(strings.Fields(text)) < 15 && !strings.HasSuffix(text, ".") &&
		!strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		return true
	}
	if isAllUpper(text) || (startsUpper(text) && !strings.ContainsAny(text, ".,;")) {
		return true
	}
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "•") || strings.HasPrefix(text, "*") ||
		numberedListRe.MatchString(text) {
		return true
	}
	return strings.ContainsAny(text, uiGlyphs)
}

// isAllUpper reports whether text has at least one letter and no lowercase
// letters.
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func startsUpper(text string) bool {
	for _, r := range text {
		return unicode.IsUpper(r)
	}
	return false
}
