package data_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/kata/data"
)

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want data.Format
		err  bool
	}{
		{path: "values.yaml", want: data.FormatYAML},
		{path: "values.YML", want: data.FormatYAML},
		{path: "dir/values.json", want: data.FormatJSON},
		{path: "site.hcl", want: data.FormatHCL},
		{path: "values.toml", err: true},
		{path: "values", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := data.FormatOf(tt.path)
			if tt.err {
				if !errors.Is(err, data.ErrUnknownFormat) {
					t.Errorf("FormatOf(%q) error = %v, want ErrUnknownFormat", tt.path, err)
				}

				return
			}

			if err != nil || got != tt.want {
				t.Errorf("FormatOf(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format data.Format
		input  string
		want   map[string]any
	}{
		{
			name:   "yaml",
			format: data.FormatYAML,
			input:  "name: Ada\ntags:\n  - a\n  - b\nuser:\n  city: London\n",
			want: map[string]any{
				"name": "Ada",
				"tags": []any{"a", "b"},
				"user": map[string]any{"city": "London"},
			},
		},
		{
			name:   "json keeps numbers exact",
			format: data.FormatJSON,
			input:  `{"id": 12345678901234567890, "items": [{"v": "x"}]}`,
			want: map[string]any{
				"id":    json.Number("12345678901234567890"),
				"items": []any{map[string]any{"v": "x"}},
			},
		},
		{
			name:   "hcl attributes",
			format: data.FormatHCL,
			input:  "name = \"Ada\"\ncount = 3\ntags = [\"a\", \"b\"]\nuser = { city = \"London\" }\n",
			want: map[string]any{
				"name":  "Ada",
				"count": json.Number("3"),
				"tags":  []any{"a", "b"},
				"user":  map[string]any{"city": "London"},
			},
		},
		{
			name:   "hcl blocks",
			format: data.FormatHCL,
			input:  "server \"a\" {\n  port = 80\n}\nserver \"b\" {\n  port = 443\n}\n",
			want: map[string]any{
				"server": []any{
					map[string]any{"labels": []any{"a"}, "port": json.Number("80")},
					map[string]any{"labels": []any{"b"}, "port": json.Number("443")},
				},
			},
		},
		{
			name:   "empty yaml",
			format: data.FormatYAML,
			input:  "",
			want:   map[string]any{},
		},
		{
			name:   "empty hcl",
			format: data.FormatHCL,
			input:  "\n",
			want:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := data.Decode(context.Background(), strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format data.Format
		input  string
	}{
		{name: "yaml sequence", format: data.FormatYAML, input: "- a\n- b\n"},
		{name: "json syntax", format: data.FormatJSON, input: "{"},
		{name: "hcl syntax", format: data.FormatHCL, input: "name = "},
		{name: "hcl variable", format: data.FormatHCL, input: "name = other\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := data.Decode(context.Background(), strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, data.ErrDecode) {
				t.Errorf("Decode(%q) error = %v, want ErrDecode", tt.input, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path := filepath.Join(dir, "values.yaml")
	if err := os.WriteFile(path, []byte("greeting: hello\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := data.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if diff := cmp.Diff(map[string]any{"greeting": "hello"}, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	_, err = data.Load(context.Background(), filepath.Join(dir, "missing.json"))
	if !errors.Is(err, data.ErrOpen) {
		t.Errorf("Load(missing) error = %v, want ErrOpen", err)
	}
}
