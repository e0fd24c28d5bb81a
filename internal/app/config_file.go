package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and env variables.
type FileConfig struct {
	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		// Timeout is a duration string, e.g. "30s".
		Timeout string `yaml:"timeout"`
	} `yaml:"fetch"`

	Tweet struct {
		MaxLength int `yaml:"maxLength"`
	} `yaml:"tweet"`

	Twitter struct {
		BearerToken string `yaml:"bearerToken"`
		BaseURL     string `yaml:"base"`
	} `yaml:"twitter"`

	Listen string `yaml:"listen"`
	// RequestTimeout is a duration string, e.g. "2m".
	RequestTimeout string `yaml:"requestTimeout"`
	Verbose        bool   `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file from path.
func LoadConfigFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &fc, nil
}

// MergeFileConfig fills unset cfg fields from fc. Values already present in
// cfg (from flags) win over the file.
func MergeFileConfig(cfg *Config, fc *FileConfig) {
	if cfg == nil || fc == nil {
		return
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout != "" {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if cfg.MaxTweetLength == 0 {
		cfg.MaxTweetLength = fc.Tweet.MaxLength
	}
	if cfg.TwitterBearerToken == "" {
		cfg.TwitterBearerToken = fc.Twitter.BearerToken
	}
	if cfg.TwitterBaseURL == "" {
		cfg.TwitterBaseURL = fc.Twitter.BaseURL
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fc.Listen
	}
	if cfg.RequestTimeout == 0 && fc.RequestTimeout != "" {
		if d, err := time.ParseDuration(fc.RequestTimeout); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
}
