package usage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wakamex/ccusage/internal/config"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	usageEndpoint  = "/api/oauth/usage"
	userAgent      = "ccusage/1.0"

	// The endpoint rejects OAuth bearer tokens without this beta header,
	// even when the token itself is valid.
	betaHeader = "oauth-2025-04-20"

	requestTimeout = 10 * time.Second
)

var (
	ErrNoCredentials = errors.New("no Claude Code credentials found (run `claude` to log in)")
	ErrNoToken       = errors.New("no OAuth access token in credentials")
	ErrTokenExpired  = errors.New("OAuth token expired (open Claude Code to refresh it)")
)

// Client issues authenticated requests against the usage endpoint. It reads
// the OAuth token fresh from the credentials file on every call, so an
// external token rotation is picked up without restarting.
type Client struct {
	BaseURL         string
	CredentialsPath string
	HTTPClient      *http.Client

	now func() time.Time
}

func NewClient(credentialsPath string) *Client {
	return &Client{
		BaseURL:         defaultBaseURL,
		CredentialsPath: credentialsPath,
		HTTPClient:      &http.Client{Timeout: requestTimeout},
		now:             time.Now,
	}
}

// Plan returns the display name of the current subscription tier, or
// "unknown" when no credentials are available.
func (c *Client) Plan() string {
	creds, _ := config.LoadCredentialsFrom(c.CredentialsPath)
	return creds.Plan()
}

// Fetch performs one GET against the usage endpoint. Credential problems
// surface as the sentinel errors above; transport, HTTP-status, and parse
// failures collapse into wrapped generic errors.
func (c *Client) Fetch(ctx context.Context) (*Response, error) {
	creds, err := config.LoadCredentialsFrom(c.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	if creds == nil {
		return nil, ErrNoCredentials
	}

	oauth := creds.ClaudeAiOauth
	if oauth.AccessToken == "" {
		return nil, ErrNoToken
	}
	if c.now().UnixMilli() > oauth.ExpiresAt {
		return nil, ErrTokenExpired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+usageEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+oauth.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("anthropic-beta", betaHeader)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("usage endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var usage Response
	if err := json.Unmarshal(body, &usage); err != nil {
		return nil, fmt.Errorf("parsing usage response: %w", err)
	}

	return &usage, nil
}
