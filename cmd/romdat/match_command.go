package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"romdat/internal/logging"
	"romdat/internal/pipeline"
)

type matchResult struct {
	Name       string           `json:"name"`
	Title      string           `json:"title"`
	Tag        string           `json:"tag,omitempty"`
	Key        string           `json:"key"`
	Clean      string           `json:"clean"`
	Threshold  float64          `json:"threshold"`
	Candidates []matchCandidate `json:"candidates"`
}

type matchCandidate struct {
	Title    string  `json:"title"`
	Score    float64 `json:"score"`
	Exact    bool    `json:"exact,omitempty"`
	Accepted bool    `json:"accepted"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var console string
	var limit int
	cmd := &cobra.Command{
		Use:   "match <name>",
		Short: "Show how a file name normalizes and which reference titles it matches",
		Args:  cobra.ExactArgs(1),
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
			runner, err := pipeline.New(cfg, profile, nil, logging.NewNop())
			if err != nil {
				return err
			}
			refs, err := profile.Layout.LoadReferences()
			if err != nil {
				return err
			}
			titles := make([]string, len(refs))
			for i, ref := range refs {
				titles[i] = ref.Title
			}

			name := args[0]
			norm := runner.Normalizer().Normalize(name)
			pool := runner.Matcher().Pool(titles)
			result := matchResult{
				Name:       name,
				Title:      norm.Title,
				Tag:        norm.Tag,
				Key:        norm.Key,
				Clean:      norm.Clean,
				Threshold:  runner.Matcher().Threshold(),
				Candidates: []matchCandidate{},
			}
			for _, c := range pool.Rank(norm.Base, limit) {
				result.Candidates = append(result.Candidates, matchCandidate{
					Title:    c.Candidate,
					Score:    c.Score,
					Exact:    c.Exact,
					Accepted: pool.Accepts(c),
				})
			}

			if ctx.jsonMode() {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n", result.Title)
			if result.Tag != "" {
				fmt.Fprintf(out, "Tag:   %s\n", result.Tag)
			}
			fmt.Fprintf(out, "Clean: %s\n", result.Clean)
			if len(result.Candidates) == 0 {
				fmt.Fprintln(out, "No candidates")
				return nil
			}
			rows := make([][]string, len(result.Candidates))
			for i, c := range result.Candidates {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					c.Title,
					strconv.FormatFloat(c.Score, 'f', 3, 64),
					yesNo(c.Accepted),
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Reference", "Score", "Accepted"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&console, "console", "", "Console profile whose references to search")
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Number of candidates to show (0 for all)")
	return cmd
}
