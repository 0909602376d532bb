// Package render formats a usage snapshot for the terminal: a multi-line
// human summary, a raw JSON dump, and the single-line statusline string.
package render

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Statusline output is read back through a pipe by the host application, so
// the renderer forces the basic ANSI profile instead of letting lipgloss
// strip colors on non-TTY output.
var renderer = lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI))

var (
	styleHigh  = renderer.NewStyle().Foreground(lipgloss.Color("1")) // red
	styleWarn  = renderer.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	styleOK    = renderer.NewStyle().Foreground(lipgloss.Color("2")) // green
	styleModel = renderer.NewStyle().Foreground(lipgloss.Color("6")) // cyan
	styleDim   = renderer.NewStyle().Foreground(lipgloss.Color("8")) // bright black
)

// Pct colors an integer percentage by threshold: >=70 high, >=50 caution,
// below that nominal. The thresholds are shared by every renderer.
func Pct(pct int) string {
	s := strconv.Itoa(pct) + "%"
	switch {
	case pct >= 70:
		return styleHigh.Render(s)
	case pct >= 50:
		return styleWarn.Render(s)
	default:
		return styleOK.Render(s)
	}
}

// ResetIn formats the time until resetsAt as "1h44m" or "32m". Empty for a
// missing, unparsable, or already-passed timestamp.
func ResetIn(resetsAt string, now time.Time) string {
	if resetsAt == "" {
		return ""
	}
	reset, err := time.Parse(time.RFC3339, resetsAt)
	if err != nil {
		return ""
	}
	secs := int(reset.Sub(now).Seconds())
	if secs <= 0 {
		return ""
	}
	m := secs / 60
	if m >= 60 {
		return fmt.Sprintf("%dh%dm", m/60, m%60)
	}
	return fmt.Sprintf("%dm", m)
}
