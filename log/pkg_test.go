package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Not parallel: replaces the package-level logger.
func TestPackage_DefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)))

	tests := []struct {
		fn    func(string, ...slog.Attr)
		level string
	}{
		{Trace, "TRACE"},
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) ||
				!strings.Contains(out, `"key":"value"`) {
				t.Errorf("unexpected output: %s", out)
			}
		})
	}

	Config(WithLevel(LevelError))
	buf.Reset()
	Info("filtered")

	if buf.Len() != 0 {
		t.Errorf("Config did not raise the level: %s", buf.String())
	}
}
