package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wakamex/ccusage/internal/config"
	"github.com/wakamex/ccusage/internal/version"
)

func newInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Print setup instructions",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf(`ccusage setup
=============

1. Run the daemon (in a terminal, tmux, or a service manager):
   ccusage daemon

2. Configure the Claude Code statusline in ~/.claude/settings.json:
   {
     "statusLine": {
       "type": "command",
       "command": "ccusage statusline"
     }
   }

3. The statusline serves %s (refreshed by the daemon)
   and shows: 5h session, 7d all-models, 7d Sonnet-specific limits.

Optional: set "refresh_interval_seconds" in %s
to change both the daemon cycle and the statusline's max cache age.
`, config.UsagePath(), config.ConfigPath())
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("ccusage " + version.String())
		},
	}
}
