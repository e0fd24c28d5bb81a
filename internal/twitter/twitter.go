package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the X API v2 endpoint root.
const DefaultBaseURL = "https://api.twitter.com"

// ErrNotAuthenticated is returned when no bearer token is configured.
var ErrNotAuthenticated = errors.New("twitter: no bearer token configured")

// APIError carries the platform's status code and raw response body.
// Note: the free access tier rejects write calls with 403/453; that condition
// surfaces here as a normal APIError for the caller to inspect, it is not
// masked as success.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter status %d: %s", e.StatusCode, e.Body)
}

// Client posts tweets via the v2 API using a pre-obtained OAuth 2.0 bearer
// token. The OAuth handshake that produces the token is an external concern.
type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client
}

// Tweet is the platform's record of a created post.
type Tweet struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type createRequest struct {
	Text  string        `json:"text"`
	Reply *replyPayload `json:"reply,omitempty"`
}

type replyPayload struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type createResponse struct {
	Data Tweet `json:"data"`
}

// PostTweet creates a single tweet.
func (c *Client) PostTweet(ctx context.Context, text string) (Tweet, error) {
	return c.create(ctx, createRequest{Text: text})
}

// PostThread posts tweets as a reply chain, each one replying to its
// predecessor, and returns the created tweets in order. A failure partway
// leaves earlier tweets posted; the error reports which index failed.
func (c *Client) PostThread(ctx context.Context, texts []string) ([]Tweet, error) {
	if len(texts) == 0 {
		return nil, errors.New("twitter: no tweets to post")
	}
	posted := make([]Tweet, 0, len(texts))
	prevID := ""
	for i, text := range texts {
		req := createRequest{Text: text}
		if prevID != "" {
			req.Reply = &replyPayload{InReplyToTweetID: prevID}
		}
		tw, err := c.create(ctx, req)
		if err != nil {
			return posted, fmt.Errorf("post tweet %d/%d: %w", i+1, len(texts), err)
		}
		posted = append(posted, tw)
		prevID = tw.ID
	}
	return posted, nil
}

func (c *Client) create(ctx context.Context, payload createRequest) (Tweet, error) {
	if strings.TrimSpace(c.BearerToken) == "" {
		return Tweet{}, ErrNotAuthenticated
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Tweet{}, err
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return Tweet{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Tweet{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Tweet{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Tweet{}, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	var out createResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Tweet{}, fmt.Errorf("decode create response: %w", err)
	}
	return out.Data, nil
}
