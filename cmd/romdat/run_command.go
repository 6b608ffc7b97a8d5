package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"romdat/internal/config"
	"romdat/internal/decision"
	"romdat/internal/journal"
	"romdat/internal/logging"
	"romdat/internal/pipeline"
	"romdat/internal/stage"
)

type runOptions struct {
	console string
	yes     bool
	keep    string
	stages  []string
	gate    bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := runOptions{gate: true}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline for one console",
		Long: "Run dedupe, strip, overrides, rename, art, and quarantine in order.\n" +
			"Each stage asks for confirmation unless --yes is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeStages(cmd, ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.console, "console", "", "Console profile to process")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Run every stage without prompting")
	cmd.Flags().StringVar(&opts.keep, "keep", "", "Duplicate keep rule: prompt, all, or first")
	cmd.Flags().StringSliceVar(&opts.stages, "stages", nil, "Subset of stages to run")
	return cmd
}

var stageSummaries = map[string]string{
	stage.Dedupe:     "Archive duplicate ROMs into the removed folder",
	stage.Strip:      "Remove release tags from ROM file names",
	stage.Overrides:  "Apply the literal rename table",
	stage.Rename:     "Rename ROMs to their closest reference title",
	stage.Art:        "Copy cover art to ROM-named files",
	stage.Quarantine: "Move ROMs without cover art aside",
}

// newStageCommands exposes every pipeline stage as a standalone command.
func newStageCommands(ctx *commandContext) []*cobra.Command {
	var cmds []*cobra.Command
	for _, name := range stage.Ordered() {
		opts := runOptions{stages: []string{name}}
		cmd := &cobra.Command{
			Use:   name,
			Short: stageSummaries[name],
			RunE: func(cmd *cobra.Command, args []string) error {
				return executeStages(cmd, ctx, opts)
			},
		}
		cmd.Flags().StringVar(&opts.console, "console", "", "Console profile to process")
		cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Answer prompts automatically")
		if name == stage.Dedupe {
			cmd.Flags().StringVar(&opts.keep, "keep", "", "Duplicate keep rule: prompt, all, or first")
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func executeStages(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	if strings.TrimSpace(opts.console) == "" {
		return errNoConsole
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	profile, err := cfg.Console(opts.console)
	if err != nil {
		return err
	}
	if opts.keep != "" && opts.keep != config.KeepPrompt && opts.keep != config.KeepAll && opts.keep != config.KeepFirst {
		return fmt.Errorf("--keep must be prompt, all, or first (got %q)", opts.keep)
	}
	if err := ctx.acquireLock(); err != nil {
		return err
	}
	defer ctx.releaseLock()
	run, err := ctx.logger()
	if err != nil {
		return err
	}

	var decisions decision.Source
	if opts.yes {
		decisions = decision.Auto{Approve: true, KeepAll: opts.keep == config.KeepAll}
	} else {
		term := decision.NewTerminal(cmd.InOrStdin(), cmd.ErrOrStderr())
		if !term.Interactive() {
			run.Logger.Debug("input is not a terminal; prompts read piped answers",
				logging.String(logging.FieldEventType, "prompt_non_interactive"))
		}
		decisions = term
	}

	runner, err := pipeline.New(cfg, profile, decisions, run.Logger)
	if err != nil {
		return err
	}
	runner.Keep = opts.keep
	runner.Gate = opts.gate && !opts.yes

	runCtx := stage.WithRunID(cmd.Context(), run.ID)
	if cfg.Journal.Enabled {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.Observer = journalObserver(store, run, profile.Name)
	}

	summary, err := runner.Run(runCtx, opts.stages...)
	if ctx.jsonMode() {
		if jerr := writeJSON(cmd, summary); jerr != nil {
			return jerr
		}
	} else {
		renderSummary(cmd.OutOrStdout(), summary, shouldColorize(cmd.OutOrStdout()))
	}
	if err != nil {
		return err
	}
	if n := summary.Failures(); n > 0 {
		return fmt.Errorf("%d operation(s) failed; details in %s", n, run.LogPath)
	}
	return nil
}

func journalObserver(store *journal.Store, run *logging.Run, console string) pipeline.Observer {
	return func(ctx context.Context, report *stage.Report) {
		if _, err := store.RecordReport(ctx, run.ID, console, report); err != nil {
			logging.WarnWithContext(logging.WithContext(ctx, run.Logger), "journal write failed", "journal_failure",
				logging.Error(err),
				logging.String(logging.FieldImpact, "history for this stage is incomplete"),
				logging.String(logging.FieldErrorHint, "check the journal path is writable"),
			)
		}
	}
}
