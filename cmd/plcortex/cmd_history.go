package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plcortex/cmd/plcortex/ui"
)

var historyCount int

// historyCmd lists recent activity
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()

		entries, err := hist.Recent(historyCount)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No recent activity.")
			return nil
		}

		styles := ui.DefaultStyles()
		table := ui.NewSimpleTable("Recent activity", "When", "Kind", "Summary")
		for _, e := range entries {
			table.AddRow(e.CreatedAt.Local().Format("Jan 02 15:04"), string(e.Kind), e.Summary)
		}
		fmt.Print(table.View(styles))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()

		if err := hist.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyCount, "count", "n", 10, "Number of entries to show")
	historyCmd.AddCommand(historyClearCmd)
}
