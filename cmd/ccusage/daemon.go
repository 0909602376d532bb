package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wakamex/ccusage/internal/config"
	"github.com/wakamex/ccusage/internal/daemon"
	"github.com/wakamex/ccusage/internal/history"
)

func newDaemonCommand(cfg config.Config) *cobra.Command {
	interval := cfg.RefreshIntervalSeconds

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the refresh loop in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDaemon(interval)
		},
	}
	cmd.Flags().IntVarP(&interval, "interval", "i", interval, "refresh interval in seconds")
	return cmd
}

func runDaemon(intervalSeconds int) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hist, err := history.Open(config.HistoryPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "history disabled: %v\n", err)
		hist = nil
	} else {
		defer hist.Close()
	}

	fmt.Printf("ccusage daemon started (refreshing every %ds)\n", intervalSeconds)
	fmt.Printf("Writing to %s\n", config.UsagePath())

	runner := &daemon.Runner{
		Service:         newService(),
		History:         hist,
		Interval:        time.Duration(intervalSeconds) * time.Second,
		CredentialsPath: config.CredentialsPath(),
		Out:             os.Stdout,
		Err:             os.Stderr,
	}
	runner.Run(ctx)
	return nil
}
