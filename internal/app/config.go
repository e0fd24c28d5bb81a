package app

import "time"

// Config holds runtime configuration for the pipeline.
type Config struct {
	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Fetching
	UserAgent    string
	FetchTimeout time.Duration

	// Tweeting
	MaxTweetLength int

	// Posting (optional; leave the token empty to disable posting)
	TwitterBearerToken string
	TwitterBaseURL     string

	// Server mode
	ListenAddr     string
	RequestTimeout time.Duration

	// Behavior
	Verbose bool
}

// withDefaults fills zero values with working defaults.
func (c Config) withDefaults() Config {
	if c.LLMModel == "" {
		c.LLMModel = "gpt-3.5-turbo"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.MaxTweetLength <= 0 {
		c.MaxTweetLength = 280
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 2 * time.Minute
	}
	return c
}
