package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/kata/log"
)

// Render renders a template against the loaded data.
type Render struct {
	Bindings `embed:""`

	Template string `arg:"" default:"-" help:"Template file or '-' for stdin" optional:""`
	Output   string `       default:"-" help:"Output file or '-' for stdout"                                   short:"o" type:"path"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	err = stdinOnce(dataFilesFrom(ctx), r.Template)
	if err != nil {
		return err
	}

	tmpl, err := compileFile(ctx, r.Template)
	if err != nil {
		return err
	}

	c, err := r.load(ctx)
	if err != nil {
		return err
	}

	out, err := tmpl.Render(c)
	if err != nil {
		return ErrRender.Wrap(err).With(slog.String("template", r.Template))
	}

	err = r.write(ctx, out)
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("output", r.Output))
	}

	log.DebugContext(ctx, "template rendered",
		slog.String("template", r.Template),
		slog.String("output", r.Output),
		slog.Int("bytes", len(out)))

	return nil
}

func (r *Render) write(ctx context.Context, out string) error {
	if r.Output == "" || r.Output == stdinSource {
		_, err := io.WriteString(stdout(ctx), out)

		return err
	}

	return os.WriteFile(r.Output, []byte(out), 0o644)
}
