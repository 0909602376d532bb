// Package usage fetches rate-limit utilization from Anthropic's OAuth usage
// endpoint, normalizes it into a stable cached form, and decides when the
// cache is fresh enough to serve without a network round-trip.
package usage

import "time"

// RawBucket is one rate-limit window as the endpoint reports it.
type RawBucket struct {
	Utilization float64 `json:"utilization"`
	ResetsAt    string  `json:"resets_at"`
}

// Response is the raw body of GET /api/oauth/usage. A nil bucket means the
// window does not apply to the account's plan.
type Response struct {
	FiveHour       *RawBucket     `json:"five_hour"`
	SevenDay       *RawBucket     `json:"seven_day"`
	SevenDaySonnet *RawBucket     `json:"seven_day_sonnet"`
	SevenDayOpus   *RawBucket     `json:"seven_day_opus"`
	ExtraUsage     map[string]any `json:"extra_usage"`
}

// Bucket is one window in the cached snapshot.
type Bucket struct {
	Pct      float64 `json:"pct"`
	ResetsAt string  `json:"resets_at,omitempty"`
}

// Snapshot is the cached usage entity. A bucket key is present iff the
// endpoint reported that window as non-null at capture time. The zero value
// marshals to {} and every renderer must cope with it.
type Snapshot struct {
	Plan           string         `json:"plan,omitempty"`
	Source         string         `json:"source,omitempty"`
	UpdatedAt      string         `json:"updated_at,omitempty"`
	FiveHour       *Bucket        `json:"5h,omitempty"`
	SevenDay       *Bucket        `json:"7d,omitempty"`
	SevenDaySonnet *Bucket        `json:"7d_sonnet,omitempty"`
	SevenDayOpus   *Bucket        `json:"7d_opus,omitempty"`
	ExtraUsage     map[string]any `json:"extra_usage,omitempty"`
}

// Age reports how long ago the snapshot was captured. ok is false when
// updated_at is missing or unparsable.
func (s Snapshot) Age(now time.Time) (time.Duration, bool) {
	if s.UpdatedAt == "" {
		return 0, false
	}
	captured, err := time.Parse(time.RFC3339, s.UpdatedAt)
	if err != nil {
		return 0, false
	}
	return now.Sub(captured), true
}

// ExtraEnabled reports whether the account has pay-per-use extra usage active.
func (s Snapshot) ExtraEnabled() bool {
	enabled, _ := s.ExtraUsage["is_enabled"].(bool)
	return enabled
}

// ExtraCents reads an integer-cents field from extra_usage. JSON numbers
// decode as float64.
func (s Snapshot) ExtraCents(key string) float64 {
	v, _ := s.ExtraUsage[key].(float64)
	return v
}
