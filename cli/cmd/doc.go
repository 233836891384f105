// Package cmd implements the kata subcommands: render, check, dump, repl
// and init.
//
// Commands receive a [context.Context] carrying the parsed [kong.Context]
// ([WithContext]) and the data files named with --data ([WithDataFiles]).
// Output goes to the kong context's Stdout and Stderr writers.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
