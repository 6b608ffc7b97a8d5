package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type consoleView struct {
	Name          string   `json:"name"`
	Extensions    []string `json:"extensions"`
	ProtectedTags []string `json:"protected_tags"`
	Threshold     float64  `json:"threshold"`
	ArtDirection  string   `json:"art_direction"`
	Games         string   `json:"games_dir"`
}

func newConsolesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "consoles",
		Short: "List console profiles and their resolved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var views []consoleView
			for _, name := range cfg.ConsoleNames() {
				p, err := cfg.Console(name)
				if err != nil {
					return err
				}
				views = append(views, consoleView{
					Name:          p.Name,
					Extensions:    p.Extensions,
					ProtectedTags: p.ProtectedTags,
					Threshold:     p.Matching.Threshold,
					ArtDirection:  p.ArtDirection,
					Games:         p.Layout.Games,
				})
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, views)
			}
			rows := make([][]string, len(views))
			for i, v := range views {
				rows[i] = []string{
					v.Name,
					strings.Join(v.Extensions, " "),
					strconv.FormatFloat(v.Threshold, 'f', 2, 64),
					v.ArtDirection,
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Console", "Extensions", "Threshold", "Art"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
