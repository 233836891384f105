package cmd

import (
	"context"

	"github.com/ardnew/kata/cli/cmd/repl"
	"github.com/ardnew/kata/log"
)

// Repl renders template lines interactively against the loaded data.
type Repl struct {
	Bindings `embed:""`

	History string `default:"${cache}/history.utf8" help:"History file (empty to disable)"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	// Key input is read from stdin.
	err = stdinOnce(dataFilesFrom(ctx), stdinSource)
	if err != nil {
		return err
	}

	c, err := r.load(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, c, r.History, log.Default())
}
