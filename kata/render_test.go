package kata_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/kata/kata"
	"github.com/ardnew/kata/log"
)

type result struct {
	title string
}

func (r result) Decompose(c *kata.Context) {
	c.SetString("title", r.title)
}

type address struct {
	city string
}

func (a address) Decompose(c *kata.Context) {
	c.SetString("city", a.city)
}

type user struct {
	name    string
	tags    []string
	address *address
}

func (u user) Decompose(c *kata.Context) {
	c.SetString("name", u.name)
	c.SetStringArray("tags", u.tags)

	if u.address != nil {
		c.SetObject("address", u.address)
	}
}

// counter records how many times it has been decomposed.
type counter struct {
	calls *int
}

func (o counter) Decompose(c *kata.Context) {
	*o.calls++
	c.SetString("n", strings.Repeat("|", *o.calls))
}

func fixture() *kata.Context {
	c := kata.NewContext()

	c.SetString("name", "World")
	c.SetString("query", "rust")
	c.SetStringArray("items", []string{"a", "b"})
	c.SetStringArray("outer", []string{"1", "2"})
	c.SetStringArray("inner", []string{"x", "y"})
	c.SetStringArray("empty", nil)

	kata.SetObjects(c, "results", []result{{title: "A"}, {title: "B"}})

	c.SetObject("user", user{
		name:    "ada",
		tags:    []string{"math", "code"},
		address: &address{city: "London"},
	})

	c.SetObject("anon", user{name: "anon"})

	return c
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no directives",
			input: "plain text\n\twith { braces } and }} closers",
			want:  "plain text\n\twith { braces } and }} closers",
		},
		{
			name:  "hello world",
			input: "Hello {{ name }}!",
			want:  "Hello World!",
		},
		{
			name:  "string array loop",
			input: "{{ foreach i in items }}{{ i }},{{ end }}",
			want:  "a,b,",
		},
		{
			name:  "object array loop",
			input: "{{ foreach r in results }}- {{ r.title }}\n{{ end }}",
			want:  "- A\n- B\n",
		},
		{
			name:  "search results",
			input: "Search results for '{{ query }}':\n{{ foreach r in results }}  {{ r.title }}\n{{ end }}",
			want:  "Search results for 'rust':\n  A\n  B\n",
		},
		{
			name:  "nested loops are row major",
			input: "{{ foreach o in outer }}{{ foreach i in inner }}{{ o }}{{ i }} {{ end }}{{ end }}",
			want:  "1x 1y 2x 2y ",
		},
		{
			name:  "empty array",
			input: "[{{ foreach e in empty }}{{ e }}{{ end }}]",
			want:  "[]",
		},
		{
			name:  "outer names visible in loop",
			input: "{{ foreach i in items }}{{ name }}{{ i }}{{ end }}",
			want:  "WorldaWorldb",
		},
		{
			name:  "binding shadows outer name",
			input: "{{ foreach name in items }}{{ name }}{{ end }}{{ name }}",
			want:  "abWorld",
		},
		{
			name:  "nested object path",
			input: "{{ user.name }} lives in {{ user.address.city }}",
			want:  "ada lives in London",
		},
		{
			name:  "dotted foreach source",
			input: "{{ foreach t in user.tags }}#{{ t }} {{ end }}",
			want:  "#math #code ",
		},
		{
			name:  "path past a string",
			input: "{{ name.first.letter }}",
			want:  "World",
		},
		{
			name:  "placeholders",
			input: "{{ items }} {{ results }} {{ user }}",
			want:  "[string_arr] [object_arr] [object]",
		},
		{
			name:  "object ref placeholder",
			input: "{{ foreach r in results }}{{ r }}{{ end }}",
			want:  "[object_ref][object_ref]",
		},
		{
			name:  "loop binding path into array",
			input: "{{ foreach r in results }}{{ r.title.x }}{{ end }}",
			want:  "AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := kata.Compile(tt.input)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.input, err)
			}

			got, err := tmpl.Render(fixture())
			if err != nil {
				t.Fatalf("Render(%q) error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     kata.RenderError
		sentinel error
	}{
		{
			name:     "missing top-level key",
			input:    "{{ missing }}",
			want:     kata.RenderError{Kind: kata.CannotResolve, Path: []string{"missing"}},
			sentinel: kata.ErrCannotResolve,
		},
		{
			name:     "missing final segment",
			input:    "{{ user.missing }}",
			want:     kata.RenderError{Kind: kata.CannotResolve, Path: []string{"user", "missing"}},
			sentinel: kata.ErrCannotResolve,
		},
		{
			name:  "missing intermediate segment",
			input: "{{ anon.address.city }}",
			want: kata.RenderError{
				Kind: kata.CannotResolve,
				Path: []string{"anon", "address", "city"},
			},
			sentinel: kata.ErrCannotResolve,
		},
		{
			name:     "missing foreach source",
			input:    "{{ foreach x in missing }}{{ x }}{{ end }}",
			want:     kata.RenderError{Kind: kata.CannotIterate, Key: "missing"},
			sentinel: kata.ErrCannotIterate,
		},
		{
			name:     "foreach over string",
			input:    "{{ foreach x in name }}{{ x }}{{ end }}",
			want:     kata.RenderError{Kind: kata.CannotIterate, Key: "name"},
			sentinel: kata.ErrCannotIterate,
		},
		{
			name:     "foreach over object",
			input:    "{{ foreach x in user }}{{ x }}{{ end }}",
			want:     kata.RenderError{Kind: kata.CannotIterate, Key: "user"},
			sentinel: kata.ErrCannotIterate,
		},
		{
			name:     "foreach over missing dotted source",
			input:    "{{ foreach x in user.missing }}{{ x }}{{ end }}",
			want:     kata.RenderError{Kind: kata.CannotIterate, Key: "user.missing"},
			sentinel: kata.ErrCannotIterate,
		},
		{
			name:     "failure inside loop body",
			input:    "{{ foreach r in results }}{{ r.author }}{{ end }}",
			want:     kata.RenderError{Kind: kata.CannotResolve, Path: []string{"r", "author"}},
			sentinel: kata.ErrCannotResolve,
		},
		{
			name:     "loop binding out of scope",
			input:    "{{ foreach i in items }}{{ end }}{{ i }}",
			want:     kata.RenderError{Kind: kata.CannotResolve, Path: []string{"i"}},
			sentinel: kata.ErrCannotResolve,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := kata.Compile(tt.input)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.input, err)
			}

			out, err := tmpl.Render(fixture())
			if err == nil {
				t.Fatalf("Render(%q) = %q, want error", tt.input, out)
			}

			if out != "" {
				t.Errorf("Render(%q) returned partial output %q", tt.input, out)
			}

			var re *kata.RenderError
			if !errors.As(err, &re) {
				t.Fatalf("Render(%q) error %T is not *RenderError", tt.input, err)
			}

			if diff := cmp.Diff(tt.want, *re); diff != "" {
				t.Errorf("Render(%q) error mismatch (-want +got):\n%s", tt.input, diff)
			}

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
		})
	}
}

func TestRender_ErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{
			err:  &kata.RenderError{Kind: kata.CannotResolve, Path: []string{"a", "b"}},
			want: "cannot resolve variable at path 'a.b'",
		},
		{
			err:  &kata.RenderError{Kind: kata.CannotIterate, Key: "xs"},
			want: "cannot iterate over variable 'xs'",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestRender_NilContext(t *testing.T) {
	t.Parallel()

	got, err := kata.MustCompile("static").Render(nil)
	if err != nil || got != "static" {
		t.Errorf("Render(nil) = %q, %v; want %q, nil", got, err, "static")
	}

	_, err = kata.MustCompile("{{ x }}").Render(nil)
	if !errors.Is(err, kata.ErrCannotResolve) {
		t.Errorf("Render(nil) error = %v, want CannotResolve", err)
	}
}

func TestRender_DecomposesPerIteration(t *testing.T) {
	t.Parallel()

	var calls int

	c := kata.NewContext()
	c.SetObjectArray("objs", []kata.Object{counter{calls: &calls}})

	tmpl := kata.MustCompile("{{ foreach o in objs }}{{ o.n }}{{ end }}")

	for i, want := range []string{"|", "||", "|||"} {
		got, err := tmpl.Render(c)
		if err != nil {
			t.Fatalf("render %d: %v", i, err)
		}

		if got != want {
			t.Errorf("render %d = %q, want %q", i, got, want)
		}
	}

	if calls != 3 {
		t.Errorf("Decompose called %d times, want 3", calls)
	}
}

func TestRender_NilObjectElement(t *testing.T) {
	t.Parallel()

	c := kata.NewContext()
	c.SetObjectArray("objs", []kata.Object{nil})

	got, err := kata.MustCompile("{{ foreach o in objs }}{{ o }}{{ end }}").Render(c)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if got != "[object_ref]" {
		t.Errorf("Render = %q, want %q", got, "[object_ref]")
	}
}

func TestRender_DoesNotMutateContext(t *testing.T) {
	t.Parallel()

	c := fixture()
	before := c.Keys()

	_, err := kata.MustCompile("{{ foreach zz in items }}{{ zz }}{{ end }}").Render(c)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if diff := cmp.Diff(before, c.Keys()); diff != "" {
		t.Errorf("context keys changed (-before +after):\n%s", diff)
	}

	if _, ok := c.Lookup("zz"); ok {
		t.Error("loop binding leaked into caller context")
	}
}

func TestRender_Concurrent(t *testing.T) {
	t.Parallel()

	tmpl := kata.MustCompile("{{ foreach r in results }}{{ r.title }}{{ end }}")
	c := fixture()

	var wg sync.WaitGroup

	errs := make(chan error, 16)

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, err := tmpl.Render(c)
			if err != nil {
				errs <- err

				return
			}

			if got != "AB" {
				errs <- errors.New("unexpected output " + got)
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false))

	tmpl, err := kata.Compile("Hello {{ name }}", kata.WithLogger(logger))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	_, err = tmpl.Render(fixture())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	for _, msg := range []string{"compile complete", "render complete"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("log output missing %q:\n%s", msg, buf.String())
		}
	}
}

// note decomposes a nil receiver to a placeholder binding.
type note struct{ text string }

func (n *note) Decompose(c *kata.Context) {
	if n == nil {
		c.SetString("text", "none")

		return
	}

	c.SetString("text", n.text)
}

func TestRender_TypedNilObjectElement(t *testing.T) {
	t.Parallel()

	c := kata.NewContext()
	kata.SetObjects(c, "notes", []*note{{text: "a"}, nil})

	got, err := kata.MustCompile("{{ foreach n in notes }}[{{ n.text }}]{{ end }}").Render(c)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if got != "[a][none]" {
		t.Errorf("Render = %q, want %q", got, "[a][none]")
	}
}
