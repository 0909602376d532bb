package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wakamex/ccusage/internal/render"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current usage (default)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus(false)
		},
	}
}

func newJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "json",
		Short: "Print the usage snapshot as raw JSON",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus(true)
		},
	}
}

// runStatus always performs a full fetch; the freshness gate is only for the
// statusline path, where latency matters more than currency.
func runStatus(rawJSON bool) error {
	snap, err := newService().Refresh(context.Background())
	if err != nil {
		return err
	}

	if rawJSON {
		return render.JSON(os.Stdout, snap)
	}
	render.Status(os.Stdout, snap, time.Now())
	return nil
}
