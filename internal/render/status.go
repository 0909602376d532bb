package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/wakamex/ccusage/internal/usage"
)

// Status prints the human-readable summary: the plan line, one line per
// present bucket, and the extra-usage balance when enabled.
func Status(w io.Writer, snap usage.Snapshot, now time.Time) {
	plan := snap.Plan
	if plan == "" {
		plan = "unknown"
	}
	fmt.Fprintf(w, "Plan: %s\n", plan)

	rows := []struct {
		label  string
		bucket *usage.Bucket
	}{
		{"Session (5h)", snap.FiveHour},
		{"Week (all)", snap.SevenDay},
		{"Week (Sonnet)", snap.SevenDaySonnet},
		{"Week (Opus)", snap.SevenDayOpus},
	}
	for _, row := range rows {
		if row.bucket == nil {
			continue
		}
		suffix := ""
		if in := ResetIn(row.bucket.ResetsAt, now); in != "" {
			suffix = styleDim.Render(" resets " + in)
		}
		fmt.Fprintf(w, "  %-20s %s%s\n", row.label, Pct(int(row.bucket.Pct)), suffix)
	}

	if snap.ExtraEnabled() {
		used := snap.ExtraCents("used_credits") / 100
		limit := snap.ExtraCents("monthly_limit") / 100
		fmt.Fprintf(w, "  %-20s $%.2f / $%.2f\n", "Extra usage", used, limit)
	}
}

// JSON dumps the snapshot verbatim, pretty-printed.
func JSON(w io.Writer, snap usage.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
