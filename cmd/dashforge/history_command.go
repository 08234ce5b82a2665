package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dashforge/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent run results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.LogDir)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				detail := record.ManifestPath
				if record.Status == history.StatusFailed {
					detail = record.ErrorDetail
				}
				rows = append(rows, []string{
					record.CreatedAt.Local().Format(time.DateTime),
					record.Source,
					record.Ladder,
					strconv.Itoa(record.TrackCount),
					record.Status,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Source", "Ladder", "Tracks", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of rows to show")
	return cmd
}
