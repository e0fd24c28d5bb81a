package thread

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_ShortTextReturnedAsIs(t *testing.T) {
	text := "Sentence one. Sentence two. Sentence three."
	got := Split(text, 280)
	if len(got) != 1 {
		t.Fatalf("expected single tweet, got %d", len(got))
	}
	if got[0] != text {
		t.Fatalf("short text must be returned unchanged, got %q", got[0])
	}
}

func TestSplit_ExactLimitIsSingleTweet(t *testing.T) {
	text := strings.Repeat("a", 280)
	if got := Split(text, 280); len(got) != 1 {
		t.Fatalf("text at the limit must not be split, got %d segments", len(got))
	}
}

func TestSplit_LongTextProducesBoundedSegments(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "This is sentence number %d with a handful of extra words to add length. ", i)
	}
	text := strings.TrimSpace(b.String())

	got := Split(text, 280)
	if len(got) < 2 {
		t.Fatalf("expected a thread, got %d segments", len(got))
	}
	for i, seg := range got {
		if n := utf8.RuneCountInString(seg); n > 280 {
			t.Errorf("segment %d exceeds limit: %d chars", i, n)
		}
	}
}

func TestSplit_NumberingPrefixes(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "Sentence %d carries enough words to make accumulation overflow the limit quickly. ", i)
	}
	got := Split(strings.TrimSpace(b.String()), 180)
	if len(got) < 2 {
		t.Fatalf("expected a thread, got %d", len(got))
	}
	if strings.HasPrefix(got[0], "1/") {
		t.Errorf("first tweet must carry no prefix, got %q", got[0])
	}
	for i, seg := range got[1:] {
		want := fmt.Sprintf("%d/", i+2)
		if !strings.HasPrefix(seg, want) {
			t.Errorf("tweet %d missing %q prefix: %q", i+2, want, seg)
		}
	}
}

func TestSplit_EstimateNotRecomputed(t *testing.T) {
	// The announced total is derived from the input length up front; the
	// actual segment count is allowed to differ. Verify every prefix quotes
	// the same total.
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "Sentence %d has a spread of words of moderate length for splitting purposes. ", i)
	}
	text := strings.TrimSpace(b.String())
	est := utf8.RuneCountInString(text) / (200 - 20)
	if est < 2 {
		est = 2
	}

	for _, seg := range Split(text, 200)[1:] {
		if !strings.Contains(seg, fmt.Sprintf("/%d ", est)) {
			t.Fatalf("prefix must quote the up-front estimate %d: %q", est, seg)
		}
	}
}

func TestSplit_Idempotent(t *testing.T) {
	got := Split("A tidy short post.", 280)
	again := Split(got[0], 280)
	if len(again) != 1 || again[0] != got[0] {
		t.Fatalf("re-splitting a fitting tweet must be a no-op, got %v", again)
	}
}

func TestSplit_NeverEmpty(t *testing.T) {
	if got := Split("", 280); len(got) != 1 {
		t.Fatalf("empty input still yields one element, got %d", len(got))
	}
}

func TestSplit_DefaultLimitForDegenerateMax(t *testing.T) {
	text := strings.Repeat("word. ", 10)
	got := Split(text, 0)
	if len(got) != 1 {
		t.Fatalf("degenerate max falls back to the platform limit, got %d segments", len(got))
	}
}
