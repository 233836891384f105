package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/kata/log"
	"github.com/ardnew/kata/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	out, err := yaml.Marshal(configValues(ktx))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	err = os.MkdirAll(filepath.Dir(confPath), 0o700)
	if err == nil {
		err = os.WriteFile(confPath, out, 0o600)
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// configValues collects the global flags with their current values. Flags in
// a group nest under the group key, so --log-level is written as
//
//	log:
//	  level: info
//
// Help, profiling and unset flags are omitted.
func configValues(ktx *kong.Context) map[string]any {
	out := make(map[string]any)
	ignore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := flagValue(ktx.FlagValue(flag))
		if val == nil {
			continue
		}

		if flag.Group != nil {
			if key, ok := strings.CutPrefix(flag.Name, flag.Group.Key+"-"); ok {
				group, _ := out[flag.Group.Key].(map[string]any)
				if group == nil {
					group = make(map[string]any)
					out[flag.Group.Key] = group
				}

				group[key] = val

				continue
			}
		}

		out[flag.Name] = val
	}

	return out
}

// flagValue returns v in a form suitable for YAML, or nil if v is empty.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}

		return v
	case []string:
		if len(v) == 0 {
			return nil
		}

		return v
	case interface{ String() string }:
		return v.String()
	default:
		return v
	}
}
