package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wakamex/ccusage/internal/usage"
)

// HostContext is what the host application tells us about the current
// session via the statusline stdin payload.
type HostContext struct {
	Model   string
	CostUSD float64
	Dir     string
}

// ParseHostPayload decodes the host's stdin JSON. Every field degrades to a
// placeholder on malformed or empty input — the statusline must render
// something regardless.
func ParseHostPayload(r io.Reader) HostContext {
	var payload struct {
		Model struct {
			DisplayName string `json:"display_name"`
		} `json:"model"`
		Cost struct {
			TotalCostUSD float64 `json:"total_cost_usd"`
		} `json:"cost"`
		Workspace struct {
			CurrentDir string `json:"current_dir"`
		} `json:"workspace"`
	}
	_ = json.NewDecoder(r).Decode(&payload)

	host := HostContext{
		Model:   payload.Model.DisplayName,
		CostUSD: payload.Cost.TotalCostUSD,
		Dir:     payload.Workspace.CurrentDir,
	}
	if host.Model == "" {
		host.Model = "?"
	}
	if host.Dir == "" {
		host.Dir = "?"
	}
	return host
}

// StatusLine prints the compact one-line status consumed by the host's
// status bar, e.g.:
//
//	~/code [Opus 4.6] 5h:35% 7d:14% son:39% | $0.42 | max_5x | reset:1h44m
func StatusLine(w io.Writer, snap usage.Snapshot, host HostContext, now time.Time) {
	parts := []string{
		styleDim.Render(abbreviateHome(host.Dir)),
		"[" + styleModel.Render(host.Model) + "]",
	}

	if snap.FiveHour != nil {
		parts = append(parts, "5h:"+Pct(int(snap.FiveHour.Pct)))
	}
	if snap.SevenDay != nil {
		parts = append(parts, "7d:"+Pct(int(snap.SevenDay.Pct)))
	}
	if snap.SevenDaySonnet != nil {
		parts = append(parts, "son:"+Pct(int(snap.SevenDaySonnet.Pct)))
	}

	cost := "$0"
	if host.CostUSD > 0 {
		cost = fmt.Sprintf("$%.2f", host.CostUSD)
	}
	plan := snap.Plan
	if plan == "" {
		plan = "?"
	}
	parts = append(parts, fmt.Sprintf("| %s | %s", cost, styleDim.Render(plan)))

	if snap.FiveHour != nil {
		if in := ResetIn(snap.FiveHour.ResetsAt, now); in != "" {
			parts = append(parts, "| "+styleDim.Render("reset:"+in))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

func abbreviateHome(dir string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if strings.HasPrefix(dir, home+string(os.PathSeparator)) {
		return "~" + dir[len(home):]
	}
	return dir
}
