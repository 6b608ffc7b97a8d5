package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"romdat/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var console string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the folders and files a console run needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if console == "" {
				return errNoConsole
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			profile, err := cfg.Console(console)
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg, profile)
			if ctx.jsonMode() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Preflight "+profile.Name, colorize) {
					fmt.Fprintln(out, line)
				}
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&console, "console", "", "Console profile to check")
	return cmd
}
