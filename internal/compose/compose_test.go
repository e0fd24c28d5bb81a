package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/gotweet/internal/analyze"
)

// scriptedClient returns canned outputs in order and records every prompt.
type scriptedClient struct {
	prompts []string
	outputs []string
	temps   []float32
	err     error
}

func (s *scriptedClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	s.prompts = append(s.prompts, req.Messages[len(req.Messages)-1].Content)
	s.temps = append(s.temps, req.Temperature)
	out := s.outputs[len(s.prompts)-1]
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: out}}},
	}, nil
}

func sampleInput() Input {
	return Input{
		Paragraphs:   []string{"First paragraph about the topic.", "Second paragraph with more depth."},
		Tone:         []string{"formal", "technical"},
		Stats:        analyze.ParagraphStats{Count: 2, AvgSentences: 2.5, AvgWords: 24.0},
		Structure:    analyze.Structure{Sections: 3, Lists: 1},
		ContentStats: analyze.ContentStats{AvgWordLength: 6.2},
	}
}

func TestCompose_ThreeSequentialStages(t *testing.T) {
	client := &scriptedClient{outputs: []string{"draft tweet", "reviewed tweet", "  final tweet #go #http  "}}
	c := &Composer{Client: client, Model: "test-model"}

	got, err := c.Compose(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "final tweet #go #http" {
		t.Fatalf("expected trimmed final stage output, got %q", got)
	}
	if len(client.prompts) != 3 {
		t.Fatalf("expected exactly 3 calls, got %d", len(client.prompts))
	}
	// Stage 1 carries the context block and paragraphs.
	if !strings.Contains(client.prompts[0], "Tone: formal, technical") {
		t.Errorf("stage 1 missing tone context:\n%s", client.prompts[0])
	}
	if !strings.Contains(client.prompts[0], "First paragraph about the topic.") {
		t.Errorf("stage 1 missing paragraphs")
	}
	// Stage N consumes stage N-1's raw output.
	if !strings.Contains(client.prompts[1], "draft tweet") {
		t.Errorf("review stage must receive summarize output")
	}
	if !strings.Contains(client.prompts[2], "reviewed tweet") {
		t.Errorf("enhance stage must receive review output")
	}
	for i, temp := range client.temps {
		if temp != 0.7 {
			t.Errorf("stage %d temperature = %v, want 0.7", i+1, temp)
		}
	}
}

func TestCompose_AdditionalInstructionsInContext(t *testing.T) {
	client := &scriptedClient{outputs: []string{"a", "b", "c"}}
	c := &Composer{Client: client, Model: "test-model"}
	in := sampleInput()
	in.AdditionalText = "mention the benchmark numbers"

	if _, err := c.Compose(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(client.prompts[0], "Additional Instructions: mention the benchmark numbers") {
		t.Errorf("stage 1 missing additional instructions:\n%s", client.prompts[0])
	}
}

func TestCompose_ProviderFailurePropagates(t *testing.T) {
	client := &scriptedClient{err: errors.New("backend unreachable")}
	c := &Composer{Client: client, Model: "test-model"}

	_, err := c.Compose(context.Background(), sampleInput())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "summarize call") {
		t.Fatalf("expected stage name in error, got %v", err)
	}
}

func TestCompose_RequiresConfiguration(t *testing.T) {
	c := &Composer{}
	if _, err := c.Compose(context.Background(), sampleInput()); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestCompose_RequiresParagraphs(t *testing.T) {
	client := &scriptedClient{outputs: []string{"a", "b", "c"}}
	c := &Composer{Client: client, Model: "test-model"}
	in := sampleInput()
	in.Paragraphs = nil

	if _, err := c.Compose(context.Background(), in); err == nil {
		t.Fatalf("expected error for empty paragraphs")
	}
	if len(client.prompts) != 0 {
		t.Fatalf("chain must not be invoked without paragraphs")
	}
}
