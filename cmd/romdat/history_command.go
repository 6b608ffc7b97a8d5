package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"romdat/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently applied operations from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return errors.New("journal is disabled; set [journal] enabled = true in the config")
			}
			if _, err := os.Stat(cfg.Journal.Path); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded")
				return nil
			}
			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				if entries == nil {
					entries = []journal.Entry{}
				}
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded")
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				to := ""
				if e.To != "" {
					to = filepath.Base(e.To)
				}
				rows[i] = []string{
					strconv.FormatInt(e.ID, 10),
					e.RecordedAt.Local().Format("2006-01-02 15:04"),
					e.Console,
					e.Stage,
					filepath.Base(e.From),
					to,
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "When", "Console", "Stage", "From", "To"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}
