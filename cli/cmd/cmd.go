package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kata/data"
	"github.com/ardnew/kata/kata"
	"github.com/ardnew/kata/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the kong context's output writer, or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the kong context's error writer, or os.Stderr.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

type dataFilesKey struct{}

// stdinSource names standard input wherever a file path is accepted.
const stdinSource = "-"

// isStdin reports whether path names standard input. An omitted optional
// path argument arrives empty and means stdin too.
func isStdin(path string) bool { return path == "" || path == stdinSource }

// stdinOnce fails if standard input is named more than once among the data
// files and templates a command reads.
func stdinOnce(dataFiles []string, templates ...string) error {
	uses := 0

	for _, path := range dataFiles {
		if path == stdinSource {
			uses++
		}
	}

	for _, path := range templates {
		if isStdin(path) {
			uses++
		}
	}

	if uses > 1 {
		return ErrStdinReused.With(slog.Int("uses", uses))
	}

	return nil
}

// WithDataFiles returns a new context.Context containing the data file paths
// given on the command line. Paths naming the same file are loaded once, and
// stdin, if named at all, is loaded last.
func WithDataFiles(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, dataFilesKey{}, uniqueFiles(paths))
}

func dataFilesFrom(ctx context.Context) []string {
	paths, _ := ctx.Value(dataFilesKey{}).([]string)

	return paths
}

// uniqueFiles drops paths that refer to a file already listed, comparing
// by file identity so that symlinks and relative paths are detected.
// Paths that cannot be inspected are kept so that loading reports them.
func uniqueFiles(paths []string) []string {
	var (
		out      []string
		seen     []os.FileInfo
		hasStdin bool
	)

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			out = append(out, path)

			continue
		}

		dup := false

		for _, s := range seen {
			if os.SameFile(s, info) {
				dup = true

				break
			}
		}

		if !dup {
			seen = append(seen, info)
			out = append(out, path)
		}
	}

	if hasStdin {
		out = append(out, stdinSource)
	}

	return out
}

// Bindings are the key=value and key=expr assignments accepted by commands
// that render.
type Bindings struct {
	Set  []string `help:"Bind a string (key=value, dotted keys nest, commas make arrays)" placeholder:"KEY=VALUE" sep:"none" short:"s"`
	Eval []string `help:"Bind the result of an expression evaluated against the data (key=expr)" placeholder:"KEY=EXPR" sep:"none" short:"e"`
}

// load reads the data files in ctx, merges the assignments in b over them
// in order, and binds the merged data to a new template context.
func (b Bindings) load(ctx context.Context) (*kata.Context, error) {
	sources := make([]map[string]any, 0, len(dataFilesFrom(ctx))+2)

	for _, path := range dataFilesFrom(ctx) {
		m, err := data.Load(ctx, path)
		if err != nil {
			return nil, ErrLoadData.Wrap(err)
		}

		sources = append(sources, m)
	}

	set, err := data.ParseAssignments(b.Set)
	if err != nil {
		return nil, ErrLoadData.Wrap(err)
	}

	literal, err := data.Values(set)
	if err != nil {
		return nil, ErrLoadData.Wrap(err)
	}

	merged := data.Merge(append(sources, literal)...)

	eval, err := data.ParseAssignments(b.Eval)
	if err != nil {
		return nil, ErrLoadData.Wrap(err)
	}

	computed, err := data.Evaluate(eval, merged)
	if err != nil {
		return nil, ErrLoadData.Wrap(err)
	}

	merged = data.Merge(merged, computed)

	c := kata.NewContext()

	err = data.Bind(c, merged)
	if err != nil {
		return nil, ErrLoadData.Wrap(err)
	}

	log.DebugContext(ctx, "data loaded",
		slog.Int("files", len(dataFilesFrom(ctx))),
		slog.Int("set", len(set)),
		slog.Int("eval", len(eval)),
		slog.String("keys", strings.Join(c.Keys(), ",")))

	return c, nil
}

// compileFile compiles the template at path, or standard input if path is
// "-" or empty. Compiled templates are cached by content.
func compileFile(ctx context.Context, path string) (*kata.Template, error) {
	r := io.Reader(os.Stdin)

	if isStdin(path) {
		path = stdinSource
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, ErrReadTemplate.Wrap(err).With(slog.String("path", path))
		}
		defer f.Close()

		r = f
	}

	tmpl, err := kata.CompileReader(r, kata.WithLogger(log.Default()))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("template", path))
	}

	log.TraceContext(ctx, "template compiled",
		slog.String("path", path),
		slog.Int("instruction_count", len(tmpl.Instructions())))

	return tmpl, nil
}
