package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/ardnew/kata/log"
)

// Format identifies a data file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatHCL
)

// Stdin is the path that [Load] reads from standard input as YAML. JSON is a
// subset of YAML, so JSON input is also accepted.
const Stdin = "-"

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatHCL:
		return "hcl"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return 0, ErrUnknownFormat.With(
			slog.String("path", path),
			slog.String("extension", ext))
	}
}

// Load reads the data file at path, or standard input if path is [Stdin].
func Load(ctx context.Context, path string) (map[string]any, error) {
	if path == Stdin {
		return decode(ctx, os.Stdin, FormatYAML, "stdin")
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	return decode(ctx, f, format, path)
}

// Decode reads a single document of the given format from r. A document
// whose top level is not a mapping is an error.
func Decode(ctx context.Context, r io.Reader, format Format) (map[string]any, error) {
	return decode(ctx, r, format, format.String())
}

func decode(ctx context.Context, r io.Reader, format Format, name string) (map[string]any, error) {
	var (
		m   map[string]any
		err error
	)

	switch format {
	case FormatYAML:
		m, err = decodeYAML(ctx, r)
	case FormatJSON:
		m, err = decodeJSON(r)
	case FormatHCL:
		m, err = decodeHCL(r, name)
	default:
		return nil, ErrUnknownFormat.With(slog.String("format", format.String()))
	}

	if err != nil {
		return nil, ErrDecode.Wrap(err).With(
			slog.String("source", name),
			slog.String("format", format.String()))
	}

	if m == nil {
		m = make(map[string]any)
	}

	log.DebugContext(ctx, "data decoded",
		slog.String("source", name),
		slog.String("format", format.String()),
		slog.Int("keys", len(m)))

	return m, nil
}

func decodeYAML(ctx context.Context, r io.Reader) (map[string]any, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	var m map[string]any

	err = yaml.NewDecoder(bytes.NewReader(src)).DecodeContext(ctx, &m)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	return m, err
}

func decodeJSON(r io.Reader) (map[string]any, error) {
	var m map[string]any

	dec := json.NewDecoder(r)
	dec.UseNumber()

	err := dec.Decode(&m)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	return m, err
}

func decodeHCL(r io.Reader, name string) (map[string]any, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	file, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, diags
	}

	if body, ok := file.Body.(*hclsyntax.Body); ok {
		return hclBody(body)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	return hclAttributes(attrs)
}
