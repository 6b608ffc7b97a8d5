package decision

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a Terminal without a TTY on its input
// runs out of answers.
var ErrNotInteractive = errors.New("interactive input requires a terminal (use --yes for unattended runs)")

// Terminal asks questions on a line-oriented terminal.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	tty    bool
	prompt *color.Color
	option *color.Color
	warn   *color.Color
}

// NewTerminal builds a Terminal over in and out. Color is enabled only when
// out is a terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		in:     bufio.NewReader(in),
		out:    out,
		tty:    isTerminal(in),
		prompt: color.New(color.FgCyan, color.Bold),
		option: color.New(color.FgYellow),
		warn:   color.New(color.FgRed),
	}
	if !isTerminal(out) {
		for _, c := range []*color.Color{t.prompt, t.option, t.warn} {
			c.DisableColor()
		}
	}
	return t
}

// Interactive reports whether the input side is a terminal.
func (t *Terminal) Interactive() bool {
	return t.tty
}

// Confirm asks a yes/no question until it gets a valid answer.
func (t *Terminal) Confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		t.prompt.Fprintf(t.out, "%s (yes/no): ", prompt)
		line, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.warn.Fprintln(t.out, "Please answer 'yes' or 'no'.")
	}
}

// ChooseIndices prints the numbered options and re-asks until the reply
// parses with ParseIndices.
func (t *Terminal) ChooseIndices(ctx context.Context, prompt string, options []string) ([]int, error) {
	if len(options) == 0 {
		return nil, ErrInvalidSelection
	}
	for {
		t.prompt.Fprintln(t.out, prompt)
		for i, opt := range options {
			t.option.Fprintf(t.out, "  %d. ", i+1)
			fmt.Fprintln(t.out, opt)
		}
		t.prompt.Fprint(t.out, "Enter the numbers to keep (e.g. 1,3 or 'all'): ")
		line, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}
		indices, err := ParseIndices(line, len(options))
		if err == nil {
			return indices, nil
		}
		t.warn.Fprintln(t.out, err.Error())
	}
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			if !t.tty {
				return "", fmt.Errorf("%w: %w", ErrNotInteractive, io.ErrUnexpectedEOF)
			}
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
