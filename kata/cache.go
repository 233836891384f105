package kata

import (
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores compiled templates keyed by source hash.
var globalCache sync.Map

// entry holds the result of compiling one source text.
type entry struct {
	once   sync.Once
	source string
	tmpl   *Template
	err    error
}

// CompileReader reads all of r and compiles it with [CompileCached].
func CompileReader(r io.Reader, opts ...Option) (*Template, error) {
	// Wrap reader with async read-ahead so reads overlap with buffering.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return CompileCached(string(data), opts...)
}

// CompileCached is like [Compile] but remembers the result for each distinct
// input, including parse errors. Templates returned for the same input share
// one instruction tree; each carries the options it was requested with.
func CompileCached(input string, opts ...Option) (*Template, error) {
	key := sourceKey(input)

	value, hit := globalCache.LoadOrStore(key, &entry{source: input})

	cached, ok := value.(*entry)
	if !ok || cached.source != input {
		// Hash collision: compile without caching.
		return Compile(input, opts...)
	}

	cached.once.Do(func() {
		cached.tmpl, cached.err = Compile(input)
	})

	t := new(Template)
	applyOptions(t, opts...)

	t.logger.Trace("cache lookup",
		slog.String("source_key", key),
		slog.Bool("cache_hit", hit))

	if cached.err != nil {
		return nil, cached.err
	}

	return cached.tmpl.with(opts...), nil
}

// ClearCache removes all templates remembered by [CompileCached].
func ClearCache() {
	globalCache.Clear()
}

func sourceKey(source string) string {
	return strconv.FormatUint(xxh3.HashString(source), 36)
}
