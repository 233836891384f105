package kata

import (
	"log/slog"

	"github.com/ardnew/kata/log"
)

// Template is a compiled template. It is immutable and may be rendered any
// number of times, also concurrently, against different contexts.
type Template struct {
	source string
	instrs []Instruction
	logger log.Logger
}

// Compile parses input into a [Template].
//
// The error, if any, is a [*ParseError] locating the failure by byte offset.
func Compile(input string, opts ...Option) (*Template, error) {
	t := &Template{source: input}

	applyOptions(t, opts...)

	p := &parser{
		scan:   newScanner(input),
		source: input,
	}

	instrs, err := p.parse(0)
	if err != nil {
		t.logger.Trace("compile failed",
			slog.Int("source_bytes", len(input)),
			slog.Any("error", err))

		return nil, err
	}

	t.instrs = instrs

	t.logger.Trace("compile complete",
		slog.Int("source_bytes", len(input)),
		slog.Int("instruction_count", len(instrs)))

	return t, nil
}

// MustCompile is like [Compile] but panics if input cannot be compiled.
// It is intended for templates embedded in programs.
func MustCompile(input string, opts ...Option) *Template {
	t, err := Compile(input, opts...)
	if err != nil {
		panic("kata: Compile(" + input + "): " + err.Error())
	}

	return t
}

// Source returns the text t was compiled from.
func (t *Template) Source() string { return t.source }

// Instructions returns the top-level compiled instructions. The slice is
// shared with t and must not be modified.
func (t *Template) Instructions() []Instruction { return t.instrs }

// with returns a copy of t sharing its instructions, configured by opts.
func (t *Template) with(opts ...Option) *Template {
	c := &Template{
		source: t.source,
		instrs: t.instrs,
	}

	applyOptions(c, opts...)

	return c
}
