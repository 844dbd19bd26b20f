package main

import (
	"errors"
	"fmt"
	"time"

	"careers-engine/internal/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRunsCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			if cfg.Store.Path == "" {
				return errors.New("store.path is not set; run history is disabled")
			}

			db, err := store.Open(cmd.Context(), cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Started", "Took", "Source", "Records", "Jobs", "Files", "Published", "Fetch error"})
			for _, r := range runs {
				t.AppendRow(table.Row{
					r.ID,
					r.StartedAt.Local().Format("2006-01-02 15:04:05"),
					r.Duration().Round(time.Millisecond),
					r.Source,
					r.Records,
					r.Jobs,
					r.Artifacts,
					yesNo(r.Published),
					r.FetchError,
				})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
