// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is made once with functional options and never changes
// afterward; [Logger.Wrap] and [Logger.With] derive new loggers.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
//	logger = logger.With(slog.String("component", "render"))
//	logger.Info("template compiled", slog.Int("instructions", 12))
//
// Attributes are always typed [slog.Attr] values. Every level has a
// context-aware variant; the context-unaware ones use
// [DefaultContextProvider].
//
// The levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. Output is [FormatText] or [FormatJSON]. Text output is
// colorized by default when written to a terminal; see [WithPretty].
//
// The package-level functions log through a default logger writing to
// standard error, reconfigured with [Config].
//
// The zero Logger discards all messages.
package log
