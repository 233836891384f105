package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func decodeJSON(t *testing.T, b []byte) map[string]any {
	t.Helper()

	var m map[string]any

	err := json.Unmarshal(b, &m)
	if err != nil {
		t.Fatalf("invalid JSON %q: %v", b, err)
	}

	return m
}

func TestLogger_ZeroValue(t *testing.T) {
	t.Parallel()

	var l Logger

	// Must not panic.
	l.Trace("x")
	l.InfoContext(context.Background(), "x", slog.Int("n", 1))
	l = l.With(slog.String("k", "v"))
	l.Error("x")

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero Logger Level, Format = %v, %v", l.Level(), l.Format())
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn), WithFormat(FormatJSON))

	l.Trace("trace message")
	l.Debug("debug message")
	l.Info("info message")

	if buf.Len() > 0 {
		t.Errorf("messages below Warn were written: %s", buf.String())
	}

	l.Warn("warn message")

	if m := decodeJSON(t, buf.Bytes()); m["level"] != "WARN" || m["msg"] != "warn message" {
		t.Errorf("unexpected record %v", m)
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)).Trace("deep")

	if m := decodeJSON(t, buf.Bytes()); m["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", m["level"])
	}
}

func TestLogger_JSONAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
		With(slog.String("component", "test"))

	l.Info("hello", slog.Int("n", 3))

	m := decodeJSON(t, buf.Bytes())

	if _, ok := m["time"]; ok {
		t.Errorf("time present with layout none: %v", m)
	}

	if m["component"] != "test" || m["n"] != float64(3) {
		t.Errorf("attributes missing: %v", m)
	}
}

func TestLogger_Caller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON), WithCaller(true)).Info("where")

	m := decodeJSON(t, buf.Bytes())

	src, ok := m["source"].(map[string]any)
	if !ok {
		t.Fatalf("source missing: %v", m)
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source file = %q, want log_test.go", file)
	}
}

func TestLogger_Wrap(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer

	base := Make(&a, WithFormat(FormatJSON), WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&b), WithLevel(LevelDebug))

	wrapped.Debug("to b")
	base.Debug("dropped")

	if a.Len() != 0 {
		t.Errorf("base logger wrote %q", a.String())
	}

	if !strings.Contains(b.String(), "to b") {
		t.Errorf("wrapped logger output %q", b.String())
	}

	if wrapped.Format() != FormatJSON || wrapped.Level() != LevelDebug {
		t.Errorf("wrapped Format, Level = %v, %v", wrapped.Format(), wrapped.Level())
	}
}

func TestLogger_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithPretty(true), WithTimeLayout("none")).
		With(slog.String("app", "kata"))

	l.Info("compiled template",
		slog.Int("count", 2),
		slog.String("name", "two words"),
		slog.Group("req", slog.Bool("ok", true)))

	want := `level=INFO msg=compiled template app=kata count=2 name="two words" req.ok=true` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("pretty output\n got: %q\nwant: %q", got, want)
	}
}

func TestLogger_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	})

	l := Make(w, WithFormat(FormatJSON))

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			l.Info("concurrent", slog.Int("i", i))
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 8 {
		t.Errorf("got %d lines, want 8", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
