package thread

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTweetLength is the platform's per-post character limit.
const MaxTweetLength = 280

// Split breaks generated text into a bounded-length sequence of posts. Text
// that already fits is returned as the sole element. Longer text is split on
// the literal ". " delimiter and greedily re-accumulated; posts after the
// first carry an "i/N " prefix.
//
// N is estimated up front from the total length and is not recomputed as
// segments accumulate, so it can diverge from the real segment count for very
// long or unevenly sentenced text. The prefix format is load-bearing for
// downstream consumers, so the estimate is kept as-is rather than corrected.
//
// Split is a pure function of its input and never returns an empty slice.
// maxLength values <= 20 fall back to MaxTweetLength.
func Split(text string, maxLength int) []string {
	if maxLength <= 20 {
		maxLength = MaxTweetLength
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return []string{text}
	}

	sentences := strings.Split(text, ". ")
	totalThreads := utf8.RuneCountInString(text) / (maxLength - 20)
	if totalThreads < 2 {
		totalThreads = 2
	}

	var threads []string
	current := ""
	number := 1
	for _, sentence := range sentences {
		prefix := ""
		if number > 1 {
			prefix = fmt.Sprintf("%d/%d ", number, totalThreads)
		}
		potential := prefix + current + sentence + ". "
		if utf8.RuneCountInString(potential) > maxLength && current != "" {
			threads = append(threads, numbered(number, totalThreads, current))
			current = sentence + ". "
			number++
		} else {
			current += sentence + ". "
		}
	}
	if strings.TrimSpace(current) != "" {
		threads = append(threads, numbered(number, totalThreads, current))
	}
	return threads
}

// numbered trims the buffer and applies the thread prefix to every post but
// the first.
func numbered(number, total int, text string) string {
	if number > 1 {
		return fmt.Sprintf("%d/%d %s", number, total, strings.TrimSpace(text))
	}
	return strings.TrimSpace(text)
}
