package data_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/kata/data"
	"github.com/ardnew/kata/kata"
)

func render(t *testing.T, source string, values map[string]any) string {
	t.Helper()

	c := kata.NewContext()
	if err := data.Bind(c, values); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}

	out, err := kata.MustCompile(source).Render(c)
	if err != nil {
		t.Fatalf("Render(%q) error: %v", source, err)
	}

	return out
}

func TestBind_Scalars(t *testing.T) {
	t.Parallel()

	values := map[string]any{
		"s":    "text",
		"b":    true,
		"i":    42,
		"u":    uint8(7),
		"f":    1.5,
		"n":    json.Number("12345678901234567890"),
		"null": nil,
		"t":    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	got := render(t, "{{s}} {{b}} {{i}} {{u}} {{f}} {{n}} [{{null}}] {{t}}", values)
	want := "text true 42 7 1.5 12345678901234567890 [] 2024-01-02T03:04:05Z"

	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestBind_Nested(t *testing.T) {
	t.Parallel()

	values := map[string]any{
		"user": map[string]any{
			"name": "Ada",
			"address": map[any]any{
				"city": "London",
			},
		},
		"tags": []any{"a", "b"},
		"strs": []string{"x", "y"},
		"items": []any{
			map[string]any{"id": 1},
			data.Object{"id": 2},
		},
		"rows": []map[string]any{{"v": "r1"}, {"v": "r2"}},
	}

	tests := []struct {
		source string
		want   string
	}{
		{"{{ user.name }} of {{ user.address.city }}", "Ada of London"},
		{"{{ foreach t in tags }}<{{ t }}>{{ end }}", "<a><b>"},
		{"{{ foreach s in strs }}{{ s }}{{ end }}", "xy"},
		{"{{ foreach it in items }}#{{ it.id }}{{ end }}", "#1#2"},
		{"{{ foreach r in rows }}{{ r.v }};{{ end }}", "r1;r2;"},
		{"{{ user }} {{ tags }} {{ items }}", "[object] [string_arr] [object_arr]"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			if got := render(t, tt.source, values); got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBind_EmptyArray(t *testing.T) {
	t.Parallel()

	c := kata.NewContext()
	if err := data.Bind(c, map[string]any{"xs": []any{}}); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}

	v, ok := c.Lookup("xs")
	if !ok || v.Kind() != kata.KindStringArray {
		t.Errorf("Lookup(xs) = %v, %v; want empty StringArray", v.Kind(), ok)
	}
}

func TestBind_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[string]any
		want   error
	}{
		{
			name:   "mixed array",
			values: map[string]any{"xs": []any{"a", map[string]any{"b": 1}}},
			want:   data.ErrMixedArray,
		},
		{
			name:   "nested array",
			values: map[string]any{"xs": []any{[]any{"a"}}},
			want:   data.ErrUnsupportedType,
		},
		{
			name:   "unsupported type",
			values: map[string]any{"ch": make(chan int)},
			want:   data.ErrUnsupportedType,
		},
		{
			name:   "unsupported type in object",
			values: map[string]any{"user": map[string]any{"name": "Ada", "ch": make(chan int)}},
			want:   data.ErrUnsupportedType,
		},
		{
			name: "mixed array in object array element",
			values: map[string]any{"pages": []any{
				map[string]any{"title": "Home"},
				map[string]any{"tags": []any{"a", map[string]any{}}},
			}},
			want: data.ErrMixedArray,
		},
		{
			name: "unsupported type deep in typed object array",
			values: map[string]any{"pages": []map[string]any{
				{"meta": map[string]any{"f": func() {}}},
			}},
			want: data.ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := kata.NewContext()

			err := data.Bind(c, tt.values)
			if !errors.Is(err, tt.want) {
				t.Errorf("Bind() error = %v, want %v", err, tt.want)
			}

			if keys := c.Keys(); len(keys) != 0 {
				t.Errorf("Bind() bound %v after failing", keys)
			}
		})
	}
}

func TestObject_DecomposeSkipsInvalid(t *testing.T) {
	t.Parallel()

	c := kata.NewContext()
	data.Object{"name": "Ada", "ch": make(chan int)}.Decompose(c)

	if diff := cmp.Diff([]string{"name"}, c.Keys()); diff != "" {
		t.Errorf("Decompose() keys mismatch (-want +got):\n%s", diff)
	}
}
