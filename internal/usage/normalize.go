package usage

import "time"

// Normalize maps a raw endpoint response into the cached snapshot form. Pure:
// the capture time comes in as an argument and is stamped as updated_at.
func Normalize(resp *Response, plan string, now time.Time) Snapshot {
	snap := Snapshot{
		Plan:           plan,
		Source:         "api",
		UpdatedAt:      now.UTC().Format(time.RFC3339),
		FiveHour:       normalizeBucket(resp.FiveHour),
		SevenDay:       normalizeBucket(resp.SevenDay),
		SevenDaySonnet: normalizeBucket(resp.SevenDaySonnet),
		SevenDayOpus:   normalizeBucket(resp.SevenDayOpus),
	}
	if len(resp.ExtraUsage) > 0 {
		snap.ExtraUsage = resp.ExtraUsage
	}
	return snap
}

func normalizeBucket(raw *RawBucket) *Bucket {
	if raw == nil {
		return nil
	}
	return &Bucket{
		Pct:      raw.Utilization,
		ResetsAt: raw.ResetsAt,
	}
}
