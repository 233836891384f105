package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by prettyHandler. Colors are dropped when
// the output is not a terminal.
type palette struct {
	key, str, num, time lipgloss.Style
	yes, no             lipgloss.Style
	trace, debug, info  lipgloss.Style
	warn, err           lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		time:  fg("4"),
		yes:   fg("2"),
		no:    fg("1"),
		trace: fg("5"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3"),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes key=value lines like [slog.TextHandler] with
// colorized values. Values are quoted only if they contain blanks, quotes or
// an equals sign.
type prettyHandler struct {
	opts   slog.HandlerOptions
	style  palette
	mu     *sync.Mutex
	w      io.Writer
	prefix string // group prefix for keys, such as "req."
	attrs  []byte // preformatted attributes from WithAttrs
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		style: makePalette(w),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		h.writeBuiltin(&buf, slog.Time(slog.TimeKey, r.Time), h.style.time)
	}

	h.writeBuiltin(&buf, slog.Any(slog.LevelKey, r.Level), h.style.level(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			loc := src.File + ":" + strconv.Itoa(src.Line)
			h.writeBuiltin(&buf, slog.String(slog.SourceKey, loc), h.style.str)
		}
	}

	h.writeBuiltin(&buf, slog.String(slog.MessageKey, r.Message), h.style.str)

	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(bytes.TrimPrefix(buf.Bytes(), []byte{' '}))

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h

	buf := bytes.NewBuffer(bytes.Clone(h.attrs))
	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}

	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// writeBuiltin writes one of the record's fixed attributes after passing it
// through ReplaceAttr.
func (h *prettyHandler) writeBuiltin(buf *bytes.Buffer, a slog.Attr, style lipgloss.Style) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return
	}

	h.writeKey(buf, a.Key)
	buf.WriteString(style.Render(a.Value.String()))
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	// Attributes with empty keys are ignored, except inline groups.
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, group, ga)
		}

		return
	}

	h.writeKey(buf, prefix+a.Key)
	h.writeValue(buf, a.Value)
}

// writeKey starts every attribute with a space; Handle drops the first one.
func (h *prettyHandler) writeKey(buf *bytes.Buffer, key string) {
	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(key + "="))
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	var (
		text  string
		style = h.style.str
	)

	switch v.Kind() {
	case slog.KindInt64:
		text, style = strconv.FormatInt(v.Int64(), 10), h.style.num
	case slog.KindUint64:
		text, style = strconv.FormatUint(v.Uint64(), 10), h.style.num
	case slog.KindFloat64:
		text, style = strconv.FormatFloat(v.Float64(), 'g', -1, 64), h.style.num
	case slog.KindBool:
		text, style = strconv.FormatBool(v.Bool()), h.style.no
		if v.Bool() {
			style = h.style.yes
		}
	case slog.KindDuration:
		text, style = v.Duration().String(), h.style.num
	case slog.KindTime:
		text, style = v.Time().String(), h.style.time
	default:
		text = v.String()
	}

	if strings.ContainsAny(text, " \t\n\"=") {
		text = strconv.Quote(text)
	}

	buf.WriteString(style.Render(text))
}
