package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wakamex/ccusage/internal/config"
	"github.com/wakamex/ccusage/internal/history"
)

func newHistoryCommand() *cobra.Command {
	limit := 20

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent snapshots recorded by the daemon",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runHistory(limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", limit, "number of rows to show")
	return cmd
}

func runHistory(limit int) error {
	store, err := history.Open(config.HistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No history yet — run `ccusage daemon` to start recording.")
		return nil
	}

	for _, row := range rows {
		fmt.Printf("%-22s %-10s %s\n", row.CapturedAt, row.Plan, historyPcts(row))
	}
	return nil
}

func historyPcts(row history.Row) string {
	var parts []string
	add := func(label string, pct *float64) {
		if pct != nil {
			parts = append(parts, fmt.Sprintf("%s:%d%%", label, int(*pct)))
		}
	}
	add("5h", row.FiveHour)
	add("7d", row.SevenDay)
	add("7d_sonnet", row.SevenDaySonnet)
	add("7d_opus", row.SevenDayOpus)
	return strings.Join(parts, " ")
}
