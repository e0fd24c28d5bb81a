package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gotweet/internal/app"
	"github.com/hyperifyio/gotweet/internal/server"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is optional; real env always wins
	_ = godotenv.Load()

	var (
		pageURL    string
		extraText  string
		listenAddr string
		configPath string
		llmBaseURL string
		llmModel   string
		llmKey     string
		userAgent  string
		fetchTO    time.Duration
		maxLength  int
		twToken    string
		verbose    bool
	)

	flag.StringVar(&pageURL, "url", "", "Article URL to turn into a tweet (one-shot mode)")
	flag.StringVar(&extraText, "extra", "", "Additional instructions passed to the generation chain")
	flag.StringVar(&listenAddr, "listen", "", "Listen address for server mode, e.g. :8000")
	flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name (default gpt-3.5-turbo)")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the OpenAI-compatible server")
	flag.StringVar(&userAgent, "fetch.ua", "", "Override the article fetch User-Agent")
	flag.DurationVar(&fetchTO, "fetch.timeout", 0, "Per-fetch timeout (e.g. 30s)")
	flag.IntVar(&maxLength, "tweet.maxLength", 0, "Per-post character limit (default 280)")
	flag.StringVar(&twToken, "twitter.token", "", "OAuth 2.0 bearer token for posting")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		LLMBaseURL:         llmBaseURL,
		LLMModel:           llmModel,
		LLMAPIKey:          llmKey,
		UserAgent:          userAgent,
		FetchTimeout:       fetchTO,
		MaxTweetLength:     maxLength,
		TwitterBearerToken: twToken,
		ListenAddr:         listenAddr,
		Verbose:            verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file")
		}
		app.MergeFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()
	a := app.New(ctx, cfg)

	if cfg.ListenAddr != "" {
		log.Info().Str("addr", cfg.ListenAddr).Msg("serving HTTP API")
		if err := server.New(a).Run(cfg.ListenAddr); err != nil {
			log.Fatal().Err(err).Msg("server")
		}
		return
	}

	if pageURL == "" {
		fmt.Fprintln(os.Stderr, "usage: gotweet -url <article-url> [-extra <instructions>] | -listen <addr>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(ctx, a.Config().RequestTimeout)
	defer cancel()
	res, err := a.TweetFromURL(ctx, pageURL, extraText)
	if err != nil {
		log.Fatal().Err(err).Msg("tweet generation failed")
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
	fmt.Println(string(out))
	if res == nil {
		// Nothing to post is not a failure, but make it visible on stderr.
		log.Warn().Str("url", pageURL).Msg("nothing to post")
	}
}
