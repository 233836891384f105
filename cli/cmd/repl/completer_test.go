package repl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/kata/data"
	"github.com/ardnew/kata/kata"
)

func testContext(t *testing.T) *kata.Context {
	t.Helper()

	c := kata.NewContext()

	err := data.Bind(c, map[string]any{
		"name": "Ada",
		"user": map[string]any{
			"address": map[string]any{"city": "London", "zip": "N1"},
			"email":   "ada@example.com",
		},
		"results": []any{
			map[string]any{"title": "A", "score": 1},
			map[string]any{"title": "B", "score": 2},
		},
		"tags": []any{"x", "y"},
	})
	if err != nil {
		t.Fatal(err)
	}

	return c
}

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot separated", "bar.baz", 7, "baz", 4, 7},
		{"after open delimiter", "{{na", 4, "na", 2, 4},
		{"after space", "{{ na", 5, "na", 3, 5},
		{"before close delimiter", "{{ name}}", 7, "name", 3, 7},
		{"mid word", "foobar", 3, "foobar", 0, 6},
		{"at start", "foo", 0, "foo", 0, 3},
		{"empty after dot", "{{ user.", 8, "", 8, 8},
		{"cursor past end", "ab", 9, "ab", 0, 2},
		{"hyphens are part of names", "{{ log-level", 12, "log-level", 3, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top level", "{{ na", 3, ""},
		{"simple chain", "{{ user.", 8, "user"},
		{"deep chain", "{{ user.address.ci", 16, "user.address"},
		{"after text", "Hi {{ user.", 11, "user"},
		{"no spaces", "{{user.", 7, "user"},
		{"at start", "user.", 5, "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestInDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"plain text", false},
		{"{{ ", true},
		{"{{ a }} b", false},
		{"{{ a }} {{ b", true},
		{"a { b", false},
	}

	for _, tt := range tests {
		if got := inDirective(tt.input, len(tt.input)); got != tt.want {
			t.Errorf("inDirective(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestChildCandidates(t *testing.T) {
	t.Parallel()

	c := testContext(t)

	tests := []struct {
		parent string
		want   []string
	}{
		{"", []string{"name", "results", "tags", "user", "foreach", "in", "end"}},
		{"user", []string{"address", "email"}},
		{"user.address", []string{"city", "zip"}},
		{"results", []string{"score", "title"}},
		{"name", nil},
		{"tags", nil},
		{"missing", nil},
		{"user.missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, childCandidates(c, tt.parent)); diff != "" {
				t.Errorf("childCandidates(%q) mismatch (-want +got):\n%s", tt.parent, diff)
			}
		})
	}

	if got := childCandidates(nil, ""); got != nil {
		t.Errorf("childCandidates(nil) = %q, want nil", got)
	}
}
