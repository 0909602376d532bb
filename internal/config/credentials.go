package config

import (
	"encoding/json"
	"os"
	"strings"
)

// planPrefix is stripped from the rate-limit tier before display:
// "default_claude_max_5x" shows as "max_5x".
const planPrefix = "default_claude_"

// OAuth mirrors the claudeAiOauth section of Claude Code's credentials file.
// ExpiresAt is epoch milliseconds.
type OAuth struct {
	AccessToken      string `json:"accessToken"`
	ExpiresAt        int64  `json:"expiresAt"`
	RateLimitTier    string `json:"rateLimitTier"`
	SubscriptionType string `json:"subscriptionType"`
}

// Credentials is Claude Code's credentials file. An external agent writes and
// rotates it; this tool only ever reads it.
type Credentials struct {
	ClaudeAiOauth OAuth `json:"claudeAiOauth"`
}

func LoadCredentials() (*Credentials, error) {
	return LoadCredentialsFrom(CredentialsPath())
}

// LoadCredentialsFrom returns nil (without error) when the file is absent or
// not valid JSON. Missing credentials is an expected condition at every call
// site, not a failure.
func LoadCredentialsFrom(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, nil
	}

	return &creds, nil
}

// Plan returns the display name of the subscription tier, preferring
// rateLimitTier over subscriptionType. Safe on a nil receiver.
func (c *Credentials) Plan() string {
	if c == nil {
		return "unknown"
	}
	tier := c.ClaudeAiOauth.RateLimitTier
	if tier == "" {
		tier = c.ClaudeAiOauth.SubscriptionType
	}
	if tier == "" {
		return "unknown"
	}
	return strings.TrimPrefix(tier, planPrefix)
}
