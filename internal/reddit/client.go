package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAuthBaseURL = "https://www.reddit.com"
	defaultAPIBaseURL  = "https://oauth.reddit.com"

	// Reddit asks script apps to stay at or under one request per second.
	requestSpacing = 1 * time.Second

	// Listings cap out at 100 children per page.
	maxPageSize = 100
)

// Config holds credentials and transport settings for a script-app client.
type Config struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string

	AuthBaseURL string
	APIBaseURL  string
	Timeout     time.Duration

	// RequestSpacing is the minimum delay between API requests.
	// Defaults to requestSpacing.
	RequestSpacing time.Duration
}

// DefaultConfig fills in transport defaults and fixes up short or missing
// user agents, which Reddit throttles aggressively.
func DefaultConfig(cfg Config) Config {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = defaultAuthBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestSpacing == 0 {
		cfg.RequestSpacing = requestSpacing
	}
	if len(cfg.UserAgent) < 10 {
		cfg.UserAgent = fmt.Sprintf("redditwithllm:v1.0 (by /u/%s)", cfg.Username)
	}
	return cfg
}

// Client implements Service against the Reddit OAuth2 API using the
// script-app password grant.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	lastRequest time.Time
}

var _ Service = (*Client)(nil)

// NewClient creates a Reddit client. The token is fetched lazily on the
// first request.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	cfg = DefaultConfig(cfg)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

// ensureToken fetches or refreshes the OAuth2 token under the client mutex.
func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.cfg.AuthBaseURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request returned %d: %s", resp.StatusCode, snippet(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.Error != "" {
		return fmt.Errorf("token request rejected: %s", tok.Error)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("token response contained no access token")
	}

	c.token = tok.AccessToken
	// Refresh one minute early so in-flight requests never carry a stale token.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	c.logger.Debug("reddit token refreshed",
		zap.Int("expires_in", tok.ExpiresIn))
	return nil
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	// Request pacing: script apps get throttled hard past 1 rps.
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestSpacing {
		time.Sleep(c.cfg.RequestSpacing - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	u := c.cfg.APIBaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, snippet(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// Me implements Service.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var data accountData
	if err := c.get(ctx, "/api/v1/me", nil, &data); err != nil {
		return nil, err
	}
	return &Account{
		Name:         data.Name,
		CreatedUTC:   int64(data.CreatedUTC),
		CommentKarma: data.CommentKarma,
		LinkKarma:    data.LinkKarma,
		IsGold:       data.IsGold,
		IsMod:        data.IsMod,
	}, nil
}

// Submissions implements Service.
func (c *Client) Submissions(ctx context.Context, limit int) ([]Submission, error) {
	things, err := c.listing(ctx, "/user/"+c.cfg.Username+"/submitted", limit)
	if err != nil {
		return nil, err
	}
	subs := make([]Submission, 0, len(things))
	for _, th := range things {
		if th.Kind != kindLink {
			continue
		}
		sub, err := decodeSubmission(th.Data)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

// Comments implements Service.
func (c *Client) Comments(ctx context.Context, limit int) ([]UserComment, error) {
	things, err := c.listing(ctx, "/user/"+c.cfg.Username+"/comments", limit)
	if err != nil {
		return nil, err
	}
	comments := make([]UserComment, 0, len(things))
	for _, th := range things {
		if th.Kind != kindComment {
			continue
		}
		cm, err := decodeUserComment(th.Data)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *cm)
	}
	return comments, nil
}

// Saved implements Service. Posts and comments come back interleaved in
// Reddit's saved order; the kind tag on each child decides the variant.
func (c *Client) Saved(ctx context.Context, limit int) ([]SavedThing, error) {
	things, err := c.listing(ctx, "/user/"+c.cfg.Username+"/saved", limit)
	if err != nil {
		return nil, err
	}
	saved := make([]SavedThing, 0, len(things))
	for _, th := range things {
		switch th.Kind {
		case kindLink:
			sub, err := decodeSubmission(th.Data)
			if err != nil {
				return nil, err
			}
			saved = append(saved, SavedThing{Submission: sub})
		case kindComment:
			cm, err := decodeUserComment(th.Data)
			if err != nil {
				return nil, err
			}
			saved = append(saved, SavedThing{Comment: cm})
		}
	}
	return saved, nil
}

// PostComments implements Service. The comment tree is flattened
// depth-first; "more" placeholders are dropped rather than expanded, which
// matches how much context a summary needs.
func (c *Client) PostComments(ctx context.Context, postID string) ([]PostComment, error) {
	query := url.Values{}
	query.Set("limit", "100")

	var pages []listingEnvelope
	if err := c.get(ctx, "/comments/"+postID, query, &pages); err != nil {
		return nil, err
	}
	// Page 0 is the submission itself, page 1 the comment forest.
	if len(pages) < 2 {
		return nil, fmt.Errorf("comment tree response for %s had %d listings, want 2", postID, len(pages))
	}

	var flat []PostComment
	flattenComments(pages[1].Data.Children, &flat)
	return flat, nil
}

// SubscribedSubreddits implements Service.
func (c *Client) SubscribedSubreddits(ctx context.Context, limit int) ([]string, error) {
	things, err := c.listing(ctx, "/subreddits/mine/subscriber", limit)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(things))
	for _, th := range things {
		var data struct {
			DisplayName string `json:"display_name"`
		}
		if err := json.Unmarshal(th.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to parse subreddit entry: %w", err)
		}
		names = append(names, data.DisplayName)
	}
	return names, nil
}

// listing pages through a listing endpoint until limit children are
// collected or the listing is exhausted.
func (c *Client) listing(ctx context.Context, path string, limit int) ([]thing, error) {
	var collected []thing
	after := ""
	for len(collected) < limit {
		page := limit - len(collected)
		if page > maxPageSize {
			page = maxPageSize
		}
		query := url.Values{}
		query.Set("limit", fmt.Sprintf("%d", page))
		query.Set("sort", "new")
		if after != "" {
			query.Set("after", after)
		}

		var env listingEnvelope
		if err := c.get(ctx, path, query, &env); err != nil {
			return nil, err
		}
		collected = append(collected, env.Data.Children...)
		if env.Data.After == "" || len(env.Data.Children) == 0 {
			break
		}
		after = env.Data.After
	}
	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, nil
}

// flattenComments walks a comment forest depth-first, appending real
// comments and descending into replies. Children of kind "more" are the
// pagination placeholders and get skipped.
func flattenComments(children []thing, out *[]PostComment) {
	for _, th := range children {
		if th.Kind != kindComment {
			continue
		}
		var data commentTreeData
		if err := json.Unmarshal(th.Data, &data); err != nil {
			continue
		}
		author := data.Author
		if author == "" {
			author = "[deleted]"
		}
		*out = append(*out, PostComment{
			Author:      author,
			Body:        data.Body,
			Score:       data.Score,
			CreatedUTC:  int64(data.CreatedUTC),
			IsSubmitter: data.IsSubmitter,
			Permalink:   permalinkURL(data.Permalink),
		})
		if len(data.Replies) > 0 && data.Replies[0] == '{' {
			var nested listingEnvelope
			if err := json.Unmarshal(data.Replies, &nested); err == nil {
				flattenComments(nested.Data.Children, out)
			}
		}
	}
}

func permalinkURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://reddit.com" + path
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
