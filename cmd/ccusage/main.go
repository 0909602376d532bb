package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/wakamex/ccusage/internal/config"
	"github.com/wakamex/ccusage/internal/usage"
)

func main() {
	if os.Getenv("CCUSAGE_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:   "ccusage",
		Short: "ccusage monitors Claude Code rate-limit usage via the OAuth usage endpoint.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus(false)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStatusCommand(),
		newJSONCommand(),
		newDaemonCommand(cfg),
		newStatusLineCommand(cfg),
		newHistoryCommand(),
		newInstallCommand(),
		newVersionCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService wires the fetch client and cache store at their fixed paths.
func newService() *usage.Service {
	store := usage.NewStore(config.UsagePath())
	client := usage.NewClient(config.CredentialsPath())
	return usage.NewService(store, client)
}
