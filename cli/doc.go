// Package cli contains the command line interface for kata.
//
// # Usage
//
//	kata [flags] [render] TEMPLATE
//	kata check TEMPLATE...
//	kata dump [--format tree|json|yaml] TEMPLATE
//	kata repl
//	kata init [--force]
//
// Render is the default command. Data is loaded from the files given with
// -d/--data (YAML, JSON or HCL by extension, '-' for YAML on stdin), then
// --set and --eval assignments are merged over it in that order:
//
//	kata -d site.yaml -s title=Home -e 'count=len(items)' page.tmpl
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user config directory
// (see [pkg.ConfigDir]). Nested mappings name flags by joining keys with
// hyphens:
//
//	log:
//	  level: debug
//	  format: json
//	data:
//	  - defaults.yaml
//
// "kata init" writes the current flag values in this form. A config.json
// next to it is also read, with flat flag names as keys.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o kata .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/kata/pprof)
package cli
