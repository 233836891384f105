package cli

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kata/cli/cmd"
	"github.com/ardnew/kata/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// CLI is the top-level command-line interface for kata.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Data []string `help:"Data file(s) (.yaml, .yml, .json, .hcl) or '-' for stdin" name:"data" short:"d" type:"existingfile"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template"`
	Check  cmd.Check  `cmd:""                    help:"Compile a template and report syntax errors"`
	Dump   cmd.Dump   `cmd:""                    help:"Print the instruction tree of a template"`
	Repl   cmd.Repl   `cmd:""                    help:"Render templates interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the kata CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags take effect before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := newParser(&cli,
		kong.Exit(exit),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(baseConfig+".json")),
		kong.Configuration(resolve, pkg.ConfigPath(baseConfig+".yaml")),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDataFiles(ctx, cli.Data)

	// Apply the remaining logger flags once every source has been parsed.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	vars := kong.Vars{
		cmd.ConfigIdentifier: pkg.ConfigPath(baseConfig + ".yaml"),
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli,
		append([]kong.Option{
			kong.Name(pkg.Name),
			kong.Description(pkg.Description),
			kong.UsageOnError(),
			kong.ExplicitGroups(
				[]kong.Group{cli.Log.group(), cli.Pprof.group()},
			),
			kong.ConfigureHelp(
				kong.HelpOptions{
					Compact:             true,
					Summary:             true,
					Tree:                true,
					NoExpandSubcommands: true,
				}),
			vars,
		}, opts...)...,
	)
}

func join(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}
