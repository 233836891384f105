package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/kata/kata"
	"github.com/ardnew/kata/log"
)

// Check compiles templates without rendering them.
type Check struct {
	Templates []string `arg:"" default:"-" help:"Template file(s) or '-' for stdin" optional:""`
}

// Run executes the check command. Every template is checked; the command
// fails if any of them does not compile.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	w := stderr(ctx)
	r := lipgloss.NewRenderer(w)

	var (
		pathStyle  = r.NewStyle().Bold(true)
		errorStyle = r.NewStyle().Foreground(lipgloss.Color("1"))
	)

	if len(c.Templates) == 0 {
		c.Templates = []string{stdinSource}
	}

	err = stdinOnce(nil, c.Templates...)
	if err != nil {
		return err
	}

	failed := 0

	for _, path := range c.Templates {
		if isStdin(path) {
			path = stdinSource
		}

		_, err := compileFile(ctx, path)
		if err == nil {
			log.DebugContext(ctx, "template ok", slog.String("template", path))

			continue
		}

		failed++

		var pe *kata.ParseError
		if !errors.As(err, &pe) {
			return err
		}

		fmt.Fprintf(w, "%s:%d:%d: %s\n",
			pathStyle.Render(path), pe.Line(), pe.Column(),
			errorStyle.Render(pe.Error()))
		fmt.Fprint(w, pe.Snippet())
	}

	if failed > 0 {
		return ErrCheck.With(
			slog.Int("failed", failed),
			slog.Int("checked", len(c.Templates)))
	}

	return nil
}
