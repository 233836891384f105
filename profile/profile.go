package profile

// Stopper ends a profiling session and flushes its output.
type Stopper interface {
	Stop()
}

type settings struct {
	mode  string
	path  string
	quiet bool
}

// Option configures a profiling session.
type Option func(*settings)

// WithMode selects one of [Modes]. An empty or unknown mode disables
// profiling.
func WithMode(mode string) Option {
	return func(s *settings) { s.mode = mode }
}

// WithPath sets the directory profiles are written to.
func WithPath(path string) Option {
	return func(s *settings) { s.path = path }
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(s *settings) { s.quiet = quiet }
}

// Start begins profiling as configured by opts. Stop is always safe to call
// on the result, including when profiling is disabled.
func Start(opts ...Option) Stopper {
	var s settings

	for _, opt := range opts {
		opt(&s)
	}

	if s.mode == "" {
		return ignore{}
	}

	return start(s)
}

type ignore struct{}

func (ignore) Stop() {}
