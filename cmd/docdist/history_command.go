package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"docdist/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "History is disabled ([history] enabled = false)")
				return nil
			}

			var records []history.Record
			if err := ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				var listErr error
				records, listErr = store.List(cmd.Context(), limit)
				return listErr
			}); err != nil {
				return err
			}

			if jsonOutput {
				if records == nil {
					records = []history.Record{}
				}
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No comparisons recorded")
				return nil
			}
			for _, line := range renderSectionHeader("Recent comparisons", shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			headers, rows, aligns := historyTable(records, cfg.Output.Precision)
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum number of comparisons to list")
	historyCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the records as JSON")
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "History is disabled; nothing to clear")
				return nil
			}
			var removed int64
			if err := ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				var clearErr error
				removed, clearErr = store.Clear(cmd.Context())
				return clearErr
			}); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d comparison(s)\n", removed)
			return nil
		},
	}
}

func historyTable(records []history.Record, precision int) ([]string, [][]string, []columnAlignment) {
	headers := []string{"When", "Policy", "Document A", "Document B", "Angle"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		angle := "n/a"
		if rec.Defined() {
			angle = formatAngle(*rec.Angle, precision)
		}
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format(time.DateTime),
			rec.Policy,
			describeSummary(rec.A),
			describeSummary(rec.B),
			angle,
		})
	}
	return headers, rows, aligns
}

func describeSummary(s history.DocSummary) string {
	return fmt.Sprintf("%s (%d words)", s.Name, s.Words)
}
