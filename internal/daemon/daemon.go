// Package daemon runs the foreground polling loop: refresh, persist, log,
// sleep, until the context is cancelled.
package daemon

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"

	"github.com/wakamex/ccusage/internal/history"
	"github.com/wakamex/ccusage/internal/usage"
)

type Runner struct {
	Service  *usage.Service
	History  *history.Store // optional; nil disables history recording
	Interval time.Duration

	// CredentialsPath, when set, is watched so a token rotation by the
	// external agent triggers an immediate refresh instead of waiting out
	// the interval.
	CredentialsPath string

	Out io.Writer
	Err io.Writer

	now func() time.Time
}

// Run performs one cycle immediately, then keeps cycling every Interval (or
// sooner, when the credentials file changes) until ctx is done. A failed
// cycle logs and continues; it is never fatal.
func (r *Runner) Run(ctx context.Context) {
	if r.now == nil {
		r.now = time.Now
	}

	nudge := make(chan struct{}, 1)
	if r.CredentialsPath != "" {
		if stop, err := r.watchCredentials(nudge); err != nil {
			fmt.Fprintf(r.Err, "credentials watch disabled: %v\n", err)
		} else {
			defer stop()
		}
	}

	for {
		r.cycle(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.Interval):
		case <-nudge:
		}
	}
}

func (r *Runner) cycle(ctx context.Context) {
	snap, err := r.Service.Refresh(ctx)
	stamp := r.now().Format("15:04:05")

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(r.Err, "[%s] Error: %v\n", stamp, err)
		return
	}

	if r.History != nil {
		if err := r.History.Record(snap); err != nil {
			fmt.Fprintf(r.Err, "[%s] %v\n", stamp, err)
		}
	}

	fmt.Fprintf(r.Out, "[%s] %s\n", stamp, summaryLine(snap))
}

// summaryLine renders the compact per-cycle log line, e.g. "5h:35% 7d:14%".
func summaryLine(snap usage.Snapshot) string {
	type labeled struct {
		label  string
		bucket *usage.Bucket
	}
	pairs := []labeled{
		{"5h", snap.FiveHour},
		{"7d", snap.SevenDay},
		{"7d_sonnet", snap.SevenDaySonnet},
	}
	parts := lo.FilterMap(pairs, func(p labeled, _ int) (string, bool) {
		if p.bucket == nil {
			return "", false
		}
		return fmt.Sprintf("%s:%d%%", p.label, int(p.bucket.Pct)), true
	})
	return strings.Join(parts, " ")
}

// watchCredentials watches the credentials file's directory (the agent
// replaces the file by rename, so watching the file itself would go stale)
// and collapses matching events into the buffered nudge channel.
func (r *Runner) watchCredentials(nudge chan<- struct{}) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(r.CredentialsPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	base := filepath.Base(r.CredentialsPath)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case nudge <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
