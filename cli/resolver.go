package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/kata/kata"
)

// ErrConfig is returned when the configuration file cannot be decoded.
var ErrConfig = kata.NewError("invalid configuration file")

// resolve is a [kong.ConfigurationLoader] for YAML config files:
//
//	log:
//	  level: debug
//	  pretty: false
//	data:
//	  - values.yaml
//
// Nested mappings join their keys with hyphens, so the document above sets
// --log-level, --no-log-pretty (--log-pretty=false) and --data. Keys may
// also be written with underscores or flat, as in "log_level" or
// "log-level". Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrConfig.Wrap(err)
	}

	c := make(config)
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

func (c config) flatten(prefix string, doc map[string]any) {
	for key, val := range doc {
		name := strings.ReplaceAll(prefix+key, "_", "-")

		switch v := val.(type) {
		case map[string]any:
			c.flatten(name+"-", v)
		case []any:
			elems := make([]string, len(v))
			for i, e := range v {
				elems[i] = fmt.Sprint(e)
			}

			c[name] = strings.Join(elems, ",")
		case nil:
		case bool, string:
			c[name] = v
		default:
			// kong parses numbers from their text.
			c[name] = fmt.Sprint(v)
		}
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(app *kong.Application) error {
	known := make(map[string]bool)

	var walk func(n *kong.Node)

	walk = func(n *kong.Node) {
		for _, flag := range n.Flags {
			known[flag.Name] = true
		}

		for _, child := range n.Children {
			walk(child)
		}
	}

	walk(app.Node)

	for name := range c {
		if !known[name] {
			return ErrConfig.With(slog.String("unknown", name))
		}
	}

	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}
