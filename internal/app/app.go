package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/gotweet/internal/analyze"
	"github.com/hyperifyio/gotweet/internal/compose"
	"github.com/hyperifyio/gotweet/internal/feed"
	"github.com/hyperifyio/gotweet/internal/fetch"
	"github.com/hyperifyio/gotweet/internal/llm"
	"github.com/hyperifyio/gotweet/internal/thread"
	"github.com/hyperifyio/gotweet/internal/twitter"
)

// App wires the extractor, the generation chain, and the optional posting
// client together. All work is request scoped; App itself holds no mutable
// state and is safe for concurrent use.
type App struct {
	cfg      Config
	analyzer *analyze.Analyzer
	composer *compose.Composer
	twitter  *twitter.Client
	feeds    *feed.Client
}

// TweetResult is the analysis record augmented with the generated tweet.
type TweetResult struct {
	analyze.Result

	Tweet        string   `json:"tweet"`
	ThreadTweets []string `json:"thread_tweets"`
	IsThread     bool     `json:"is_thread"`
}

// New builds an App from config. The LLM backend is probed best-effort by
// listing models; an unreachable backend logs a warning but does not fail
// startup, so dry runs and analysis-only calls keep working.
func New(ctx context.Context, cfg Config) *App {
	cfg = cfg.withDefaults()

	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}

	fetcher := &fetch.Client{UserAgent: cfg.UserAgent, PerRequestTimeout: cfg.FetchTimeout}
	a := &App{
		cfg:      cfg,
		analyzer: &analyze.Analyzer{Fetcher: fetcher},
		composer: &compose.Composer{Client: provider, Model: cfg.LLMModel},
		feeds:    &feed.Client{Fetcher: fetcher},
	}
	if cfg.TwitterBearerToken != "" {
		a.twitter = &twitter.Client{BaseURL: cfg.TwitterBaseURL, BearerToken: cfg.TwitterBearerToken}
	}

	preflight(ctx, provider)
	return a
}

func preflight(ctx context.Context, lister llm.ModelLister) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := lister.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
		return
	}
	log.Info().Int("count", len(models.Models)).Msg("LLM models available")
}

// Config returns the effective configuration after defaults.
func (a *App) Config() Config { return a.cfg }

// Twitter returns the posting client, or nil when no token is configured.
func (a *App) Twitter() *twitter.Client { return a.twitter }

// Feeds returns the RSS feed client.
func (a *App) Feeds() *feed.Client { return a.feeds }

// TweetFromURL runs the full pipeline: analyze the page, compose a tweet from
// the sample paragraphs, split it into a thread when it exceeds the limit.
//
// It returns (nil, nil) when the page yields nothing to post — a failed
// extraction or a page without sampleable paragraphs. Callers must treat a
// nil result as "nothing to post", not as an error. The generation chain is
// never invoked in that case. A generation failure is returned as an error
// with no partial result.
func (a *App) TweetFromURL(ctx context.Context, url, additionalText string) (*TweetResult, error) {
	analysis := a.analyzer.AnalyzeURL(ctx, url)
	if !analysis.Success {
		log.Warn().Str("url", url).Str("reason", analysis.Error).Msg("analysis failed")
		return nil, nil
	}
	if len(analysis.SampleParagraphs) == 0 {
		log.Warn().Str("url", url).Msg("no sample paragraphs; nothing to post")
		return nil, nil
	}

	tweet, err := a.composer.Compose(ctx, compose.Input{
		Paragraphs:     analysis.SampleParagraphs,
		Tone:           analysis.ToneIndicators,
		Stats:          *analysis.ParagraphStats,
		Structure:      *analysis.Structure,
		ContentStats:   *analysis.ContentStats,
		AdditionalText: additionalText,
	})
	if err != nil {
		return nil, err
	}

	threads := thread.Split(tweet, a.cfg.MaxTweetLength)
	return &TweetResult{
		Result:       analysis,
		Tweet:        tweet,
		ThreadTweets: threads,
		IsThread:     len(threads) > 1,
	}, nil
}
