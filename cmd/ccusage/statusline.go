package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wakamex/ccusage/internal/config"
	"github.com/wakamex/ccusage/internal/render"
)

func newStatusLineCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "statusline",
		Short: "Render one status-bar line from the host payload on stdin",
		// Never fails for usage problems: the host bar always gets a line,
		// degraded to placeholders when nothing is available.
		RunE: func(_ *cobra.Command, _ []string) error {
			host := render.ParseHostPayload(os.Stdin)
			snap := newService().GetUsage(context.Background(), cfg.RefreshInterval())
			render.StatusLine(os.Stdout, snap, host, time.Now())
			return nil
		},
	}
}
