package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gotweet/internal/analyze"
	"github.com/hyperifyio/gotweet/internal/llm"
)

// The three stage prompts. Each stage feeds the previous stage's raw output
// into the next; the chain deliberately favors substance over the 280-char
// convention and leaves length enforcement to the thread splitter.
const (
	summarizePrompt = "You are a developer with a strong technical background. " +
		"Given the following blog analysis and content, write an engaging tweet that provides real value. " +
		"If the content is complex or detailed, don't be afraid to exceed 280 characters to create a comprehensive, " +
		"informative tweet that truly helps the reader. Focus on substance over brevity when the content warrants it. " +
		"Write like a real human, not a bot. Use clear, concise, and technical language where appropriate.\n" +
		"BLOG ANALYSIS AND CONTEXT:\n%s"

	reviewPrompt = "You are a technical editor. Review and improve this tweet for clarity, engagement, and technical accuracy. " +
		"If the tweet exceeds 280 characters but provides substantial value, keep it comprehensive. " +
		"The goal is to create useful content, not just fit arbitrary character limits. " +
		"Ensure it sounds like a real human with a technical background wrote it.\n" +
		"Tweet:\n%s"

	enhancePrompt = "You are a social media expert. Enhance the following tweet to maximize its reach and engagement. " +
		"Add relevant and trending hashtags (max 3-4). If the tweet is longer than 280 characters, " +
		"that's fine if it provides substantial value. Focus on creating useful, informative content.\n" +
		"Tweet:\n%s"
)

// chainTemperature matches the sampling temperature the chain was tuned with.
const chainTemperature = 0.7

// Input carries the extractor's context for the summarize stage.
type Input struct {
	Paragraphs     []string
	Tone           []string
	Stats          analyze.ParagraphStats
	Structure      analyze.Structure
	ContentStats   analyze.ContentStats
	AdditionalText string
}

// Composer drives the three-stage summarize → review → enhance chain against
// a chat model. Stages run sequentially; a failure at any stage aborts the
// whole composition with no partial result.
type Composer struct {
	Client llm.Client
	Model  string
}

// Compose returns the trimmed final-stage output. It performs exactly three
// blocking calls, each consuming the previous call's raw output. No retry and
// no output validation happen here; provider resilience and length bounds are
// the collaborators' concern.
func (c *Composer) Compose(ctx context.Context, in Input) (string, error) {
	if c.Client == nil || strings.TrimSpace(c.Model) == "" {
		return "", errors.New("composer not configured")
	}
	if len(in.Paragraphs) == 0 {
		return "", errors.New("no paragraphs to compose from")
	}

	tweet, err := c.call(ctx, "summarize", fmt.Sprintf(summarizePrompt, buildContext(in)))
	if err != nil {
		return "", err
	}
	tweet, err = c.call(ctx, "review", fmt.Sprintf(reviewPrompt, tweet))
	if err != nil {
		return "", err
	}
	tweet, err = c.call(ctx, "enhance", fmt.Sprintf(enhancePrompt, tweet))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tweet), nil
}

func (c *Composer) call(ctx context.Context, stage, prompt string) (string, error) {
	log.Debug().Str("stage", stage).Str("model", c.Model).Int("prompt_len", len(prompt)).Msg("composer prompt")
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: chainTemperature,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("%s call: %w", stage, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s call: no choices", stage)
	}
	return resp.Choices[0].Message.Content, nil
}

// buildContext assembles the stage-1 context block: tone, stats, structure,
// content stats, optional extra instructions, then the joined paragraphs.
func buildContext(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tone: %s\n", strings.Join(in.Tone, ", "))
	fmt.Fprintf(&b, "Paragraph stats: count=%d avg_sentences=%.1f avg_words=%.1f\n",
		in.Stats.Count, in.Stats.AvgSentences, in.Stats.AvgWords)
	fmt.Fprintf(&b, "Structure: sections=%d lists=%d\n", in.Structure.Sections, in.Structure.Lists)
	fmt.Fprintf(&b, "Content stats: avg_word_length=%.1f\n", in.ContentStats.AvgWordLength)
	if in.AdditionalText != "" {
		fmt.Fprintf(&b, "\nAdditional Instructions: %s\n", in.AdditionalText)
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(in.Paragraphs, "\n\n"))
	return b.String()
}
