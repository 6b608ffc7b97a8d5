package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"romdat/internal/pipeline"
	"romdat/internal/stage"
)

func renderSummary(out io.Writer, summary pipeline.Summary, colorize bool) {
	for _, line := range renderSectionHeader("romdat "+summary.Console, colorize) {
		fmt.Fprintln(out, line)
	}
	rows := make([][]string, 0, len(summary.Reports))
	for _, r := range summary.Reports {
		rows = append(rows, []string{
			r.Stage,
			strconv.Itoa(len(r.Applied)),
			strconv.Itoa(len(r.Skipped)),
			strconv.Itoa(len(r.Errors)),
			r.Note,
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Stage", "Applied", "Skipped", "Errors", "Note"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
		))
	}
	for _, name := range summary.Declined {
		fmt.Fprintln(out, renderStatusLine(name, statusInfo, "declined", colorize))
	}
	for _, r := range summary.Reports {
		renderSkips(out, r, colorize)
		for _, e := range r.Errors {
			fmt.Fprintln(out, renderStatusLine(r.Stage, statusError, e.Error(), colorize))
		}
	}
}

func renderSkips(out io.Writer, r *stage.Report, colorize bool) {
	for _, s := range r.Skipped {
		msg := filepath.Base(s.From)
		if s.Reason != "" {
			msg += " (" + s.Reason + ")"
		}
		fmt.Fprintln(out, renderStatusLine(r.Stage, statusWarn, msg, colorize))
	}
}
